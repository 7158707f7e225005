// Package table provides the sparse columnar store cells are materialized into.
package table

import "github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"

// Column is an ordered sequence of cell values indexed by row, together
// with the row indices where the value kind changes.
type Column struct {
	values []models.CellValue
	runs   []int
}

// Len returns the column's current length.
func (c *Column) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// At returns the value at row, or Empty beyond the column's length.
func (c *Column) At(row int) models.CellValue {
	if c == nil || row < 0 || row >= len(c.values) {
		return models.Empty
	}
	return c.values[row]
}

// Runs returns a copy of the type-run start indices. Empty padding is a
// value like any other, so a gap opens its own run.
func (c *Column) Runs() []int {
	if c == nil {
		return nil
	}
	return append([]int(nil), c.runs...)
}

// push appends v and records a run start when its kind differs from the
// previous entry, or when it is the first entry.
func (c *Column) push(v models.CellValue) {
	n := len(c.values)
	if n == 0 || !c.values[n-1].SameKind(v) {
		c.runs = append(c.runs, n)
	}
	c.values = append(c.values, v)
}

// Table is an ordered sequence of columns. Columns may end at different
// lengths; nothing equalizes them.
//
// A Table is owned by a single writer. Once ingestion is finished it may be
// shared for reading.
type Table struct {
	columns []*Column
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// EnsureWidth grows the table so that column col exists. Newly created
// columns are empty. Calling it again with the same index has no effect.
func (t *Table) EnsureWidth(col int) {
	for len(t.columns) <= col {
		t.columns = append(t.columns, &Column{})
	}
}

// Append stores value at (col, row). The column is padded with Empty from
// its current length up to row, then value is appended. The table is grown
// if col does not exist yet.
//
// Rows are expected in ascending order per column; a row below the column's
// current length is appended at the end rather than rejected.
func (t *Table) Append(col, row int, value models.CellValue) {
	t.EnsureWidth(col)
	c := t.columns[col]
	for len(c.values) < row {
		c.push(models.Empty)
	}
	c.push(value)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Height returns the length of column col, or 0 if it does not exist.
func (t *Table) Height(col int) int {
	return t.Column(col).Len()
}

// MaxHeight returns the length of the longest column.
func (t *Table) MaxHeight() int {
	h := 0
	for _, c := range t.columns {
		if len(c.values) > h {
			h = len(c.values)
		}
	}
	return h
}

// Get returns the value at (col, row), or Empty when either index is out
// of range.
func (t *Table) Get(col, row int) models.CellValue {
	return t.Column(col).At(row)
}

// Column returns a read-only view of column col, or nil if it does not exist.
func (t *Table) Column(col int) *Column {
	if col < 0 || col >= len(t.columns) {
		return nil
	}
	return t.columns[col]
}

// Runs returns the type-run start indices of column col.
func (t *Table) Runs(col int) []int {
	return t.Column(col).Runs()
}

// Row reconstructs row across every column, filling gaps with Empty.
func (t *Table) Row(row int) []models.CellValue {
	return t.AppendRow(make([]models.CellValue, 0, len(t.columns)), row)
}

// AppendRow appends row's values across every column to dst.
func (t *Table) AppendRow(dst []models.CellValue, row int) []models.CellValue {
	for _, c := range t.columns {
		dst = append(dst, c.At(row))
	}
	return dst
}

// Len returns the total number of stored values, padding included.
func (t *Table) Len() int {
	n := 0
	for _, c := range t.columns {
		n += len(c.values)
	}
	return n
}
