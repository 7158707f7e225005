// Package ingest routes a sheet's cell stream into a table or straight to
// delimited output.
package ingest

import (
	"go.uber.org/zap"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

// Mode selects where cells go.
type Mode int

const (
	// ModeBuffered materializes every cell into a table.
	ModeBuffered Mode = iota
	// ModeStreaming formats each row as soon as it ends.
	ModeStreaming
)

func (m Mode) String() string {
	if m == ModeStreaming {
		return "streaming"
	}
	return "buffered"
}

// State is the coordinator's position in the cell stream.
type State int

const (
	StateStart State = iota
	StateAwaitingDimension
	StateStreaming
	StateRowBoundary
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAwaitingDimension:
		return "awaiting_dimension"
	case StateStreaming:
		return "streaming"
	case StateRowBoundary:
		return "row_boundary"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Coordinator receives the producer's callbacks and dispatches them on its
// mode. It is used by a single goroutine for one sheet conversion.
type Coordinator struct {
	mode  Mode
	state State
	log   *zap.Logger

	dim        models.Dimension
	hasDim     bool
	beginCalls int
	cells      int
	outside    bool

	// buffered
	table *table.Table

	// streaming
	w       *output.RowWriter
	row     []models.CellValue
	nextRow int
}

// NewBuffered returns a coordinator that materializes cells into a table.
func NewBuffered(log *zap.Logger) *Coordinator {
	return &Coordinator{
		mode:  ModeBuffered,
		state: StateAwaitingDimension,
		log:   orNop(log),
		table: table.New(),
	}
}

// NewStreaming returns a coordinator that writes each row to w when the
// row ends.
func NewStreaming(w *output.RowWriter, log *zap.Logger) *Coordinator {
	return &Coordinator{
		mode:  ModeStreaming,
		state: StateAwaitingDimension,
		log:   orNop(log),
		w:     w,
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Begin records the producer's declared bounding box. It never creates
// columns: the box may undercount the columns actually touched, so columns
// appear as cells arrive. A repeated call replaces the recorded box.
func (c *Coordinator) Begin(dim models.Dimension) error {
	c.beginCalls++
	if c.beginCalls > 1 || c.state != StateAwaitingDimension {
		c.log.Warn("dimension declared again",
			zap.Int("calls", c.beginCalls),
			zap.Stringer("state", c.state))
	}
	c.dim = dim
	c.hasDim = true
	c.log.Debug("declared dimension",
		zap.Int("rows", dim.Height()),
		zap.Int("cols", dim.Width()))
	return nil
}

// Cell stores or buffers one cell value.
func (c *Coordinator) Cell(pos models.CellPosition, value models.CellValue) error {
	c.state = StateStreaming
	c.cells++
	if c.hasDim && !c.outside && !c.dim.Contains(pos) {
		c.outside = true
		c.log.Warn("cell outside declared dimension",
			zap.Int("row", pos.Row),
			zap.Int("col", pos.Col))
	}

	switch c.mode {
	case ModeBuffered:
		c.table.EnsureWidth(pos.Col)
		c.table.Append(pos.Col, pos.Row, value)
	case ModeStreaming:
		for len(c.row) < pos.Col {
			c.row = append(c.row, models.Empty)
		}
		c.row = append(c.row, value)
	}
	return nil
}

// EndOfRow closes the current row. In streaming mode the row is written,
// preceded by an empty row for every row skipped since the last boundary.
// Streamed rows are padded to the declared width when Begin supplied one;
// without it a row ends at its last cell and a skipped row is a blank line.
func (c *Coordinator) EndOfRow(pos models.CellPosition) error {
	c.state = StateRowBoundary

	if c.mode != ModeStreaming {
		return nil
	}
	for ; c.nextRow < pos.Row; c.nextRow++ {
		if err := c.writeRow(nil); err != nil {
			return err
		}
	}
	if err := c.writeRow(c.row); err != nil {
		return err
	}
	c.row = c.row[:0]
	c.nextRow = pos.Row + 1
	return nil
}

func (c *Coordinator) writeRow(row []models.CellValue) error {
	width := 0
	if c.hasDim {
		width = c.dim.End.Col + 1
	}
	for len(row) < width {
		row = append(row, models.Empty)
	}
	if len(row) == 0 {
		return c.w.WriteBlank()
	}
	return c.w.WriteRow(row)
}

// Finish marks the end of the stream and flushes any buffered output.
func (c *Coordinator) Finish() error {
	c.state = StateDone

	if c.mode != ModeStreaming {
		return nil
	}
	if len(c.row) > 0 {
		c.log.Warn("discarding cells without a row boundary", zap.Int("cells", len(c.row)))
		c.row = c.row[:0]
	}
	return c.w.Flush()
}

// Mode returns the coordinator's mode.
func (c *Coordinator) Mode() Mode { return c.mode }

// State returns the coordinator's current state.
func (c *Coordinator) State() State { return c.state }

// Table returns the materialized table. It is nil in streaming mode.
func (c *Coordinator) Table() *table.Table { return c.table }

// Dimension returns the last declared bounding box, if any.
func (c *Coordinator) Dimension() (models.Dimension, bool) { return c.dim, c.hasDim }

// Cells returns the number of cells received.
func (c *Coordinator) Cells() int { return c.cells }
