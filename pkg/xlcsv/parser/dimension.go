package parser

import (
	"strings"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/xuri/excelize/v2"
)

// ParseDimension parses a sheet dimension reference such as A1:D10,
// $A$1:$D$10 or Sheet1!A1:D10 into a zero-based Dimension. A single cell
// reference yields a one-cell box. It reports false for anything else.
func ParseDimension(ref string) (models.Dimension, bool) {
	ref = strings.TrimSpace(ref)

	// Drop a sheet qualifier
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}

	// Remove $ signs
	ref = strings.ReplaceAll(ref, "$", "")
	if ref == "" {
		return models.Dimension{}, false
	}

	// Split by :
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return models.Dimension{}, false
	}

	start, ok := parseCellRef(parts[0])
	if !ok {
		return models.Dimension{}, false
	}
	end := start
	if len(parts) == 2 {
		if end, ok = parseCellRef(parts[1]); !ok {
			return models.Dimension{}, false
		}
	}

	// Normalise reversed references such as D10:A1
	if end.Row < start.Row {
		start.Row, end.Row = end.Row, start.Row
	}
	if end.Col < start.Col {
		start.Col, end.Col = end.Col, start.Col
	}

	return models.Dimension{Start: start, End: end}, true
}

func parseCellRef(s string) (models.CellPosition, bool) {
	col, row, err := excelize.CellNameToCoordinates(s)
	if err != nil {
		return models.CellPosition{}, false
	}
	return models.CellPosition{Row: row - 1, Col: col - 1}, true
}
