package parser

import (
	"fmt"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/xuri/excelize/v2"
)

// Sink receives a sheet's cells as they are decoded.
//
// Begin is called at most once, before any Cell. Cell is called for every
// non-empty cell, row-ascending and column-ascending within a row. EndOfRow
// follows the last cell of each row that delivered at least one cell.
// There is no end-of-stream call; StreamCells returning marks the end.
type Sink interface {
	Begin(dim models.Dimension) error
	Cell(pos models.CellPosition, value models.CellValue) error
	EndOfRow(pos models.CellPosition) error
}

// StreamCells decodes a sheet and feeds its cells to sink. Errors returned
// by sink abort the stream and are returned unchanged; decoding errors
// wrap ErrDecode.
func StreamCells(f *excelize.File, sheetName string, sink Sink) error {
	ref, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return decodeError("reading dimension of sheet %q: %w", sheetName, err)
	}
	if dim, ok := ParseDimension(ref); ok {
		if err := sink.Begin(dim); err != nil {
			return err
		}
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return decodeError("opening rows of sheet %q: %w", sheetName, err)
	}
	defer rows.Close()

	r := newValueReader(f, sheetName)
	rowIdx := -1
	for rows.Next() {
		rowIdx++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return decodeError("reading row %d of sheet %q: %w", rowIdx+1, sheetName, err)
		}

		last := -1
		for colIdx, raw := range cols {
			if raw == "" {
				continue
			}
			pos := models.CellPosition{Row: rowIdx, Col: colIdx}
			value, err := r.read(pos, raw)
			if err != nil {
				return err
			}
			if err := sink.Cell(pos, value); err != nil {
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
	if err := rows.Error(); err != nil {
		return decodeError("iterating rows of sheet %q: %w", sheetName, err)
	}

	return nil
}

// valueReader classifies raw cell text using the cell's stored type and
// number format. Number formats are cached per style.
type valueReader struct {
	f       *excelize.File
	sheet   string
	formats map[int]numFmtClass
}

func newValueReader(f *excelize.File, sheet string) *valueReader {
	return &valueReader{
		f:       f,
		sheet:   sheet,
		formats: make(map[int]numFmtClass),
	}
}

func (r *valueReader) read(pos models.CellPosition, raw string) (models.CellValue, error) {
	cellName, err := excelize.CoordinatesToCellName(pos.Col+1, pos.Row+1)
	if err != nil {
		return models.Empty, decodeError("cell at row %d col %d: %w", pos.Row, pos.Col, err)
	}

	cellType, err := r.f.GetCellType(r.sheet, cellName)
	if err != nil {
		return models.Empty, decodeError("type of cell %s: %w", cellName, err)
	}

	class := numFmtGeneral
	if isNumericType(cellType) {
		if class, err = r.numFmtClass(cellName); err != nil {
			return models.Empty, err
		}
	}

	return classifyValue(cellType, raw, class), nil
}

func (r *valueReader) numFmtClass(cellName string) (numFmtClass, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cellName)
	if err != nil {
		return numFmtGeneral, decodeError("style of cell %s: %w", cellName, err)
	}
	if class, ok := r.formats[styleID]; ok {
		return class, nil
	}

	class := numFmtGeneral
	if styleID > 0 {
		style, err := r.f.GetStyle(styleID)
		if err != nil {
			return numFmtGeneral, decodeError("style %d: %w", styleID, err)
		}
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		class = classifyNumFmt(style.NumFmt, custom)
	}
	r.formats[styleID] = class
	return class, nil
}

func decodeError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w", ErrDecode, fmt.Errorf(format, args...))
}
