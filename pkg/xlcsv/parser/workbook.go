package parser

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet whose sheets can be streamed to a Sink.
type Workbook interface {
	// Container reports the physical format the workbook was read from.
	Container() Container
	// SheetList returns the sheet names in workbook order.
	SheetList() []string
	// StreamCells feeds the named sheet's cells to sink.
	StreamCells(sheetName string, sink Sink) error
	Close() error
}

// Open sniffs the file at path and opens it with the matching reader:
// excelize for xlsx/xlsm, the BIFF reader for xls. Filesystem errors are
// returned unwrapped; anything that cannot be decoded wraps ErrDecode.
func Open(path string) (Workbook, error) {
	container, err := Sniff(path)
	if err != nil {
		return nil, err
	}

	switch container {
	case ContainerOOXML:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, decodeError("opening %s: %w", path, err)
		}
		return &ooxmlWorkbook{f: f}, nil
	case ContainerBIFF:
		return openBIFF(path)
	}
	return nil, unsupportedContainer(container)
}

type ooxmlWorkbook struct {
	f *excelize.File
}

func (w *ooxmlWorkbook) Container() Container { return ContainerOOXML }

func (w *ooxmlWorkbook) SheetList() []string { return w.f.GetSheetList() }

func (w *ooxmlWorkbook) StreamCells(sheetName string, sink Sink) error {
	return StreamCells(w.f, sheetName, sink)
}

func (w *ooxmlWorkbook) Close() error { return w.f.Close() }

// ResolveSheet finds the sheet named by selector. A selector that parses
// as an integer is a zero-based sheet index; anything else is matched
// against sheet names exactly.
func ResolveSheet(wb Workbook, selector string) (models.SheetRef, error) {
	sheets := wb.SheetList()

	if idx, err := strconv.Atoi(selector); err == nil {
		if idx < 0 || idx >= len(sheets) {
			return models.SheetRef{}, fmt.Errorf("%w: index %d (workbook has %d sheets)", ErrSheetNotFound, idx, len(sheets))
		}
		return models.SheetRef{Index: idx, Name: sheets[idx]}, nil
	}

	for i, name := range sheets {
		if name == selector {
			return models.SheetRef{Index: i, Name: name}, nil
		}
	}
	return models.SheetRef{}, fmt.Errorf("%w: %q", ErrSheetNotFound, selector)
}
