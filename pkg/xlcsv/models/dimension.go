package models

// CellPosition addresses a single cell.
type CellPosition struct {
	// Row is the row index (0-based).
	Row int `json:"row"`
	// Col is the column index (0-based).
	Col int `json:"col"`
}

// Dimension represents the bounding box of a sheet's cells.
// A producer-declared dimension is best-effort and may not be tight.
type Dimension struct {
	// Start is the top-left cell (inclusive).
	Start CellPosition `json:"start"`
	// End is the bottom-right cell (inclusive).
	End CellPosition `json:"end"`
}

// Width returns the number of columns covered.
func (d Dimension) Width() int {
	return d.End.Col - d.Start.Col + 1
}

// Height returns the number of rows covered.
func (d Dimension) Height() int {
	return d.End.Row - d.Start.Row + 1
}

// Contains reports whether pos lies inside the box.
func (d Dimension) Contains(pos CellPosition) bool {
	return pos.Row >= d.Start.Row && pos.Row <= d.End.Row &&
		pos.Col >= d.Start.Col && pos.Col <= d.End.Col
}
