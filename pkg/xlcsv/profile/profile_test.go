package profile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

func sampleTable() *table.Table {
	t := table.New()
	t.Append(0, 0, models.NewString("id"))
	t.Append(0, 1, models.NewInt(1))
	t.Append(0, 3, models.NewInt(3))
	t.Append(1, 0, models.NewString("when"))
	t.Append(1, 1, models.NewDateTime(45000.5))
	t.Append(1, 2, models.NewDateTimeISO("2023-03-15T12:00:00"))
	t.Append(2, 2, models.NewError(models.ErrorNA))
	t.Append(3, 0, models.NewBool(true))
	t.Append(3, 1, models.NewFloat(1.5))
	t.Append(3, 2, models.NewDuration(0.25))
	t.Append(3, 3, models.NewDurationISO("PT6H"))
	return t
}

func TestBuildTotalsMatchColumns(t *testing.T) {
	tbl := sampleTable()
	report := Build(tbl)

	require.Len(t, report.Columns, tbl.Width())

	var sum Counts
	for _, c := range report.Columns {
		sum.Add(c.Counts)
		assert.Equal(t, tbl.Height(c.Index), c.Counts.Total())
	}
	assert.Equal(t, sum, report.Total)
	assert.Equal(t, tbl.Len(), report.Total.Total())
}

func TestBuildCountsPadding(t *testing.T) {
	report := Build(sampleTable())

	id := report.Columns[0].Counts
	assert.Equal(t, 1, id.Get(models.KindString))
	assert.Equal(t, 2, id.Get(models.KindInt))
	assert.Equal(t, 1, id.Get(models.KindEmpty))

	assert.Equal(t, 2, report.Columns[2].Counts.Get(models.KindEmpty))
	assert.Equal(t, 1, report.Columns[2].Counts.Get(models.KindError))
}

func TestBuildLabelsAndRuns(t *testing.T) {
	report := Build(sampleTable())

	assert.Equal(t, "id", report.Columns[0].Label)
	assert.Equal(t, "when", report.Columns[1].Label)
	assert.Equal(t, "Unknown", report.Columns[2].Label)
	assert.Equal(t, "true", report.Columns[3].Label)

	// id: String, Int, Empty, Int
	assert.Equal(t, 4, report.Columns[0].Runs)
	// four distinct kinds in a row
	assert.Equal(t, 4, report.Columns[3].Runs)
}

func TestCountsString(t *testing.T) {
	var c Counts
	c.Inc(models.NewInt(1))
	c.Inc(models.NewInt(2))
	c.Inc(models.Empty)
	c.Inc(models.NewString("x"))
	c.Inc(models.NewBool(false))
	c.Inc(models.NewDurationISO("PT1H"))

	want := "Empty: 1\n" +
		"Booleans: 1\n" +
		"Strings: 1\n" +
		"Ints: 2\n" +
		"ISO Durations: 1\n"
	assert.Equal(t, want, c.String())
}

func TestEmptyTableReport(t *testing.T) {
	report := Build(table.New())

	assert.Empty(t, report.Columns)
	assert.Equal(t, Counts{}, report.Total)
	assert.Equal(t, 0, report.Total.Total())
	assert.Equal(t, "Total:\n", report.String())
}

func TestReportString(t *testing.T) {
	tbl := table.New()
	tbl.Append(0, 0, models.NewString("n"))
	tbl.Append(0, 1, models.NewInt(5))

	want := "Column 0 (n):\n" +
		"Type runs: 2\n" +
		"Strings: 1\n" +
		"Ints: 1\n" +
		"\n" +
		"Total:\n" +
		"Strings: 1\n" +
		"Ints: 1\n"
	assert.Equal(t, want, Build(tbl).String())
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name   string
		values []models.CellValue
		want   models.Kind
		ok     bool
	}{
		{"no values", nil, models.KindEmpty, false},
		{"only empty", []models.CellValue{models.Empty}, models.KindEmpty, false},
		{"ints", []models.CellValue{models.NewInt(1), models.Empty, models.NewInt(2)}, models.KindInt, true},
		{"ints and floats", []models.CellValue{models.NewInt(1), models.NewFloat(2.5)}, models.KindFloat, true},
		{"bools", []models.CellValue{models.NewBool(true)}, models.KindBool, true},
		{"mixed", []models.CellValue{models.NewString("a"), models.NewInt(1)}, models.KindEmpty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Counts
			for _, v := range tt.values {
				c.Inc(v)
			}
			got, ok := c.Dominant()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestBuildConcurrentReaders(t *testing.T) {
	tbl := sampleTable()
	want := Build(tbl)

	var wg sync.WaitGroup
	reports := make([]*Report, 8)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = Build(tbl)
		}(i)
	}
	wg.Wait()

	for _, r := range reports {
		assert.Equal(t, want, r)
	}
}
