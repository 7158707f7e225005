// Package profile tallies the value kinds stored in a table.
package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

// Counts holds one counter per value kind.
type Counts [models.NumKinds]int

// category fixes the order and labels of rendered counts.
type category struct {
	kind  models.Kind
	label string
}

var categories = []category{
	{models.KindEmpty, "Empty"},
	{models.KindBool, "Booleans"},
	{models.KindError, "Errors"},
	{models.KindDateTime, "Datetimes"},
	{models.KindDateTimeISO, "ISO Datetimes"},
	{models.KindString, "Strings"},
	{models.KindInt, "Ints"},
	{models.KindFloat, "Floats"},
	{models.KindDuration, "Durations"},
	{models.KindDurationISO, "ISO Durations"},
}

// Inc counts one value.
func (c *Counts) Inc(v models.CellValue) {
	c[v.Kind()]++
}

// Get returns the count for kind k.
func (c *Counts) Get(k models.Kind) int {
	return c[k]
}

// Add adds other's counts to c.
func (c *Counts) Add(other Counts) {
	for i, n := range other {
		c[i] += n
	}
}

// Total returns the sum over all kinds.
func (c *Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// String renders one "<Label>: <count>" line per non-zero kind.
func (c Counts) String() string {
	var sb strings.Builder
	for _, cat := range categories {
		if n := c[cat.kind]; n > 0 {
			fmt.Fprintf(&sb, "%s: %d\n", cat.label, n)
		}
	}
	return sb.String()
}

// Dominant returns the kind shared by every non-empty value. Ints are
// widened to Float when both occur. It reports false when the values are
// mixed or there are none.
func (c Counts) Dominant() (models.Kind, bool) {
	if c[models.KindInt] > 0 && c[models.KindFloat] > 0 {
		c[models.KindFloat] += c[models.KindInt]
		c[models.KindInt] = 0
	}
	found := models.KindEmpty
	for k, n := range c {
		if models.Kind(k) == models.KindEmpty || n == 0 {
			continue
		}
		if found != models.KindEmpty {
			return models.KindEmpty, false
		}
		found = models.Kind(k)
	}
	return found, found != models.KindEmpty
}

// Column is the profile of a single column.
type Column struct {
	// Index is the column position (0-based).
	Index int
	// Label is the column's first value, or "Unknown" when it is empty.
	Label string
	// Runs is the number of type runs in the column.
	Runs int
	// Counts holds the per-kind tally.
	Counts Counts
}

// Report is the profile of a whole table.
type Report struct {
	Columns []Column
	Total   Counts
}

// Build tallies every stored value of t, including Empty padding. It only
// reads t.
func Build(t *table.Table) *Report {
	report := &Report{
		Columns: make([]Column, 0, t.Width()),
	}
	for i := 0; i < t.Width(); i++ {
		col := t.Column(i)
		p := Column{
			Index: i,
			Label: label(col.At(0)),
			Runs:  len(col.Runs()),
		}
		for row := 0; row < col.Len(); row++ {
			p.Counts.Inc(col.At(row))
		}
		report.Total.Add(p.Counts)
		report.Columns = append(report.Columns, p)
	}
	return report
}

func label(v models.CellValue) string {
	switch v.Kind() {
	case models.KindEmpty:
		return "Unknown"
	case models.KindString, models.KindDateTimeISO, models.KindDurationISO:
		return v.Text()
	case models.KindBool:
		return strconv.FormatBool(v.Bool())
	case models.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case models.KindError:
		return v.ErrorCode().String()
	}
	return strconv.FormatFloat(v.Float(), 'f', -1, 64)
}

// String renders every column block followed by the total.
func (r *Report) String() string {
	var sb strings.Builder
	for _, c := range r.Columns {
		fmt.Fprintf(&sb, "Column %d (%s):\n", c.Index, c.Label)
		fmt.Fprintf(&sb, "Type runs: %d\n", c.Runs)
		sb.WriteString(c.Counts.String())
		sb.WriteString("\n")
	}
	sb.WriteString("Total:\n")
	sb.WriteString(r.Total.String())
	return sb.String()
}
