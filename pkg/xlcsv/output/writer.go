package output

import (
	"bufio"
	"io"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

// RowWriter writes formatted rows through a buffer.
type RowWriter struct {
	w       *bufio.Writer
	dialect Dialect
	buf     []byte
	lines   int
}

// NewRowWriter returns a RowWriter writing to w.
func NewRowWriter(w io.Writer, d Dialect) *RowWriter {
	return &RowWriter{
		w:       bufio.NewWriterSize(w, 64*1024),
		dialect: d,
	}
}

// Dialect returns the writer's dialect.
func (rw *RowWriter) Dialect() Dialect {
	return rw.dialect
}

// WriteRow formats values and writes them as one line.
func (rw *RowWriter) WriteRow(values []models.CellValue) error {
	rw.buf = AppendRow(rw.buf[:0], values, rw.dialect)
	if _, err := rw.w.Write(rw.buf); err != nil {
		return err
	}
	rw.lines++
	return nil
}

// WriteBlank writes a line with no fields.
func (rw *RowWriter) WriteBlank() error {
	if _, err := rw.w.WriteString(rw.dialect.LineEnding); err != nil {
		return err
	}
	rw.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (rw *RowWriter) Lines() int {
	return rw.lines
}

// Flush writes any buffered data to the underlying writer.
func (rw *RowWriter) Flush() error {
	return rw.w.Flush()
}

// WriteTable writes every row of t, from row 0 to the longest column's
// end, across all columns. Short columns contribute empty fields.
func WriteTable(rw *RowWriter, t *table.Table) error {
	if t.Width() == 0 {
		return nil
	}
	row := make([]models.CellValue, 0, t.Width())
	for r := 0; r < t.MaxHeight(); r++ {
		row = t.AppendRow(row[:0], r)
		if err := rw.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}
