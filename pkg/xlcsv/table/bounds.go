package table

import "github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"

// Bounds describes where the non-empty cells of a table lie.
type Bounds struct {
	// Dimension is the tight bounding box of non-empty cells.
	Dimension models.Dimension
	// NonEmpty is the number of non-empty cells.
	NonEmpty int
	// Density is NonEmpty divided by the area of Dimension.
	Density float64
}

// DataBounds finds the bounding box of non-empty cells. It reports false
// when the table holds no non-empty cell.
func (t *Table) DataBounds() (Bounds, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(t)
	if minRow < 0 {
		return Bounds{}, false
	}

	dim := models.Dimension{
		Start: models.CellPosition{Row: minRow, Col: minCol},
		End:   models.CellPosition{Row: maxRow, Col: maxCol},
	}
	nonEmpty := countNonEmptyCells(t, dim)
	area := dim.Width() * dim.Height()

	return Bounds{
		Dimension: dim,
		NonEmpty:  nonEmpty,
		Density:   float64(nonEmpty) / float64(area),
	}, true
}

// findDataBounds returns -1 indices when there is no non-empty cell.
func findDataBounds(t *Table) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for colIdx, col := range t.columns {
		for rowIdx, v := range col.values {
			if v.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 {
				minCol = colIdx
			}
			maxCol = colIdx
		}
	}

	return
}

func countNonEmptyCells(t *Table, dim models.Dimension) int {
	count := 0
	for colIdx := dim.Start.Col; colIdx <= dim.End.Col; colIdx++ {
		col := t.columns[colIdx]
		for rowIdx := dim.Start.Row; rowIdx <= dim.End.Row && rowIdx < len(col.values); rowIdx++ {
			if !col.values[rowIdx].IsEmpty() {
				count++
			}
		}
	}
	return count
}
