package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
)

// biffWorkbook reads legacy xls workbooks. The reader hands out cell text
// only, so values are classified from their text.
type biffWorkbook struct {
	file *os.File
	wb   *xls.WorkBook
}

func openBIFF(path string) (wb Workbook, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			file.Close()
			wb, err = nil, decodeError("opening %s: %v", path, r)
		}
	}()

	book, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		file.Close()
		return nil, decodeError("opening %s: %w", path, err)
	}
	return &biffWorkbook{file: file, wb: book}, nil
}

func (w *biffWorkbook) Container() Container { return ContainerBIFF }

func (w *biffWorkbook) SheetList() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if ws := w.wb.GetSheet(i); ws != nil {
			names = append(names, ws.Name)
		}
	}
	return names
}

func (w *biffWorkbook) StreamCells(sheetName string, sink Sink) (err error) {
	var ws *xls.WorkSheet
	for i := 0; i < w.wb.NumSheets(); i++ {
		if s := w.wb.GetSheet(i); s != nil && s.Name == sheetName {
			ws = s
			break
		}
	}
	if ws == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := readBIFFRows(ws)
	if err != nil {
		return err
	}
	return streamTextRows(rows, sink)
}

func (w *biffWorkbook) Close() error { return w.file.Close() }

// readBIFFRows copies the sheet's cell text into a dense row slice.
func readBIFFRows(ws *xls.WorkSheet) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, decodeError("reading sheet %q: %v", ws.Name, r)
		}
	}()

	rows = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		last := row.LastCol()
		if last <= 0 {
			rows = append(rows, nil)
			continue
		}
		cols := make([]string, last)
		for c := row.FirstCol(); c < last; c++ {
			if c >= 0 {
				cols[c] = row.Col(c)
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

// streamTextRows feeds rows of cell text to sink. The bounding box of the
// non-empty cells is declared first; empty strings are absent cells.
func streamTextRows(rows [][]string, sink Sink) error {
	if dim, ok := textBounds(rows); ok {
		if err := sink.Begin(dim); err != nil {
			return err
		}
	}

	for rowIdx, cols := range rows {
		last := -1
		for colIdx, text := range cols {
			if text == "" {
				continue
			}
			pos := models.CellPosition{Row: rowIdx, Col: colIdx}
			if err := sink.Cell(pos, classifyText(text)); err != nil {
				return err
			}
			last = colIdx
		}
		if last >= 0 {
			if err := sink.EndOfRow(models.CellPosition{Row: rowIdx, Col: last}); err != nil {
				return err
			}
		}
	}
	return nil
}

func textBounds(rows [][]string) (models.Dimension, bool) {
	dim := models.Dimension{
		Start: models.CellPosition{Row: -1, Col: -1},
		End:   models.CellPosition{Row: -1, Col: -1},
	}
	for r, cols := range rows {
		for c, text := range cols {
			if text == "" {
				continue
			}
			if dim.Start.Row < 0 {
				dim.Start.Row = r
			}
			if dim.Start.Col < 0 || c < dim.Start.Col {
				dim.Start.Col = c
			}
			dim.End.Row = r
			if c > dim.End.Col {
				dim.End.Col = c
			}
		}
	}
	return dim, dim.Start.Row >= 0
}

// classifyText types a value known only by its display text: error
// literals, TRUE/FALSE, then numbers, then text.
func classifyText(s string) models.CellValue {
	if code, ok := models.ParseErrorCode(s); ok {
		return models.NewError(code)
	}
	switch strings.ToUpper(s) {
	case "TRUE":
		return models.NewBool(true)
	case "FALSE":
		return models.NewBool(false)
	}
	return parseValue(s)
}
