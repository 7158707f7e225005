package output

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/profile"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

// ArrowSchema derives an Arrow schema from a table profile. A column whose
// non-empty values all share one numeric or boolean kind gets that physical
// type; everything else is stored as text. Every field is nullable and
// Empty cells become nulls.
func ArrowSchema(report *profile.Report) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(report.Columns))
	for _, c := range report.Columns {
		name, err := excelize.ColumnNumberToName(c.Index + 1)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c.Index, err)
		}
		fields = append(fields, arrow.Field{
			Name:     name,
			Type:     arrowType(c.Counts),
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil), nil
}

func arrowType(c profile.Counts) arrow.DataType {
	kind, ok := c.Dominant()
	if !ok {
		return arrow.BinaryTypes.String
	}
	switch kind {
	case models.KindInt:
		return arrow.PrimitiveTypes.Int64
	case models.KindFloat, models.KindDateTime, models.KindDuration:
		return arrow.PrimitiveTypes.Float64
	case models.KindBool:
		return arrow.FixedWidthTypes.Boolean
	}
	return arrow.BinaryTypes.String
}

// WriteArrow writes t as a single-batch Arrow IPC file. Rows run from 0 to
// the longest column's end.
func WriteArrow(w io.Writer, t *table.Table, report *profile.Report) error {
	schema, err := ArrowSchema(report)
	if err != nil {
		return err
	}

	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	rows := t.MaxHeight()
	for i := 0; i < t.Width(); i++ {
		col := t.Column(i)
		if err := appendColumn(b.Field(i), col, rows); err != nil {
			return fmt.Errorf("column %s: %w", schema.Field(i).Name, err)
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to create Arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write Arrow record: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close Arrow writer: %w", err)
	}
	return nil
}

func appendColumn(fb array.Builder, col *table.Column, rows int) error {
	for row := 0; row < rows; row++ {
		v := col.At(row)
		if v.IsEmpty() {
			fb.AppendNull()
			continue
		}
		switch bld := fb.(type) {
		case *array.Int64Builder:
			bld.Append(v.Int())
		case *array.Float64Builder:
			if v.Kind() == models.KindInt {
				bld.Append(float64(v.Int()))
			} else {
				bld.Append(v.Float())
			}
		case *array.BooleanBuilder:
			bld.Append(v.Bool())
		case *array.StringBuilder:
			bld.Append(FieldText(v))
		default:
			return fmt.Errorf("unsupported builder %T", fb)
		}
	}
	return nil
}
