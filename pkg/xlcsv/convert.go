package xlcsv

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/ingest"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/parser"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/profile"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/table"
)

// Result describes a finished conversion.
type Result struct {
	Source      string
	Destination string
	Sheet       models.SheetRef
	Mode        Mode
	// Declared is the bounding box the sheet declared, if HasDeclared.
	Declared    models.Dimension
	HasDeclared bool
	// Bounds covers the non-empty cells. Buffered mode only.
	Bounds    *table.Bounds
	Width     int
	Lines     int
	Cells     int
	Profile   *profile.Report
	ArrowPath string
	Elapsed   time.Duration
}

// Convert writes one sheet of the workbook at path to a sibling delimited
// text file. The destination is created before ingestion starts and is
// left in place when a later step fails.
func Convert(path string, opts Options) (*Result, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := checkPath(path); err != nil {
		return nil, NewConversionError(ErrInvalidArgument, path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, NewConversionError(ErrInvalidArgument, path, err)
	}
	mode, _ := opts.ingestMode()
	compression, _ := output.ParseCompression(string(opts.Compression))

	f, err := parser.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer f.Close()

	selector := opts.Sheet
	if selector == "" {
		selector = "0"
	}
	sheet, err := parser.ResolveSheet(f, selector)
	if err != nil {
		return nil, classify(path, err)
	}
	log = log.With(zap.String("source", path), zap.String("sheet", sheet.Name),
		zap.Stringer("container", f.Container()))

	dest := Destination(path, compression)
	out, err := os.Create(dest)
	if err != nil {
		return nil, NewConversionError(ErrIO, dest, err)
	}
	defer out.Close()

	cw, err := output.NewCompressedWriter(out, compression)
	if err != nil {
		return nil, NewConversionError(ErrIO, dest, err)
	}
	rw := output.NewRowWriter(cw, opts.Dialect())

	var c *ingest.Coordinator
	if mode == ingest.ModeStreaming {
		c = ingest.NewStreaming(rw, log)
	} else {
		c = ingest.NewBuffered(log)
	}

	log.Debug("ingesting sheet", zap.Stringer("mode", mode), zap.String("destination", dest))
	if err := f.StreamCells(sheet.Name, c); err != nil {
		return nil, classify(path, err)
	}
	if err := c.Finish(); err != nil {
		return nil, NewConversionError(ErrIO, dest, err)
	}

	result := &Result{
		Source:      path,
		Destination: dest,
		Sheet:       sheet,
		Mode:        opts.Mode,
		Cells:       c.Cells(),
	}
	if result.Mode == "" {
		result.Mode = ModeBuffered
	}
	result.Declared, result.HasDeclared = c.Dimension()

	if t := c.Table(); t != nil {
		if err := output.WriteTable(rw, t); err != nil {
			return nil, NewConversionError(ErrIO, dest, err)
		}
		if err := rw.Flush(); err != nil {
			return nil, NewConversionError(ErrIO, dest, err)
		}
		result.Width = t.Width()
		if b, ok := t.DataBounds(); ok {
			result.Bounds = &b
		}
	}
	if err := cw.Close(); err != nil {
		return nil, NewConversionError(ErrIO, dest, err)
	}
	if err := out.Close(); err != nil {
		return nil, NewConversionError(ErrIO, dest, err)
	}
	result.Lines = rw.Lines()

	if t := c.Table(); t != nil && (opts.Profile || opts.Arrow) {
		report := profile.Build(t)
		if opts.Profile {
			result.Profile = report
		}
		if opts.Arrow {
			arrowPath := ArrowDestination(path)
			if err := writeArrowFile(arrowPath, t, report); err != nil {
				return nil, NewConversionError(ErrIO, arrowPath, err)
			}
			result.ArrowPath = arrowPath
		}
	}

	result.Elapsed = time.Since(start)
	log.Info("conversion complete",
		zap.String("destination", dest),
		zap.Int("lines", result.Lines),
		zap.Int("cells", result.Cells),
		zap.Duration("elapsed", result.Elapsed))
	if result.HasDeclared && result.Width > result.Declared.End.Col+1 {
		log.Warn("sheet wider than its declared dimension",
			zap.Int("declared_width", result.Declared.End.Col+1),
			zap.Int("width", result.Width))
	}
	return result, nil
}

func writeArrowFile(path string, t *table.Table, report *profile.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteArrow(out, t, report); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// classify maps reader failures onto the error taxonomy.
func classify(path string, err error) error {
	switch {
	case errors.Is(err, parser.ErrSheetNotFound):
		return NewConversionError(ErrSheetNotFound, path, err)
	case errors.Is(err, parser.ErrDecode):
		return NewConversionError(ErrFormat, path, err)
	}
	return NewConversionError(ErrIO, path, err)
}

// String renders a one-line summary of r.
func (r *Result) String() string {
	return fmt.Sprintf("%s -> %s (sheet %d %q, %s, %d lines)",
		r.Source, r.Destination, r.Sheet.Index, r.Sheet.Name, r.Mode, r.Lines)
}
