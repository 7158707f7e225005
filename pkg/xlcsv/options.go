// Package xlcsv converts one worksheet of a spreadsheet into delimited text.
package xlcsv

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/ingest"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
)

// Mode selects how cells reach the output.
type Mode string

const (
	// ModeBuffered materializes the sheet into a table before writing it.
	ModeBuffered Mode = "buffered"
	// ModeStreaming writes each row as soon as it ends.
	ModeStreaming Mode = "streaming"
)

// Extensions accepted as input, compared case-insensitively.
var supportedExtensions = []string{".xlsx", ".xlsm", ".xlsb", ".xls"}

// Options configures a conversion.
type Options struct {
	// Sheet selects the worksheet: a zero-based index or an exact name.
	// Empty means the first sheet.
	Sheet string
	// Delimiter separates fields. Only ',' and ';' are accepted.
	Delimiter byte
	// Quote enables quoting of fields containing the delimiter or a
	// double quote. If nil, defaults to true.
	Quote *bool
	// LineEnding terminates every line. Empty means LF.
	LineEnding string
	// Mode selects buffered or streaming ingestion.
	Mode Mode
	// Compression encodes the destination file.
	Compression output.Compression
	// Profile builds the per-column type report. Buffered mode only.
	Profile bool
	// Arrow writes a sibling Arrow IPC file. Buffered mode only.
	Arrow bool
	// Logger receives progress and warnings. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Sheet:       "0",
		Delimiter:   ',',
		LineEnding:  output.LF,
		Mode:        ModeBuffered,
		Compression: output.CompressionNone,
	}
}

// ShouldQuote returns whether quoting is enabled.
func (o Options) ShouldQuote() bool {
	if o.Quote != nil {
		return *o.Quote
	}
	return true
}

// Dialect returns the output dialect for o.
func (o Options) Dialect() output.Dialect {
	le := o.LineEnding
	if le == "" {
		le = output.LF
	}
	return output.Dialect{
		Delimiter:  o.Delimiter,
		Quote:      o.ShouldQuote(),
		LineEnding: le,
	}
}

// Validate checks o before any file is touched.
func (o Options) Validate() error {
	if o.Delimiter != ',' && o.Delimiter != ';' {
		return fmt.Errorf("unsupported delimiter %q (must be ',' or ';')", o.Delimiter)
	}
	if o.LineEnding != "" && o.LineEnding != output.LF && o.LineEnding != output.CRLF {
		return fmt.Errorf("unsupported line ending %q", o.LineEnding)
	}
	if _, err := o.ingestMode(); err != nil {
		return err
	}
	if _, err := output.ParseCompression(string(o.Compression)); err != nil {
		return err
	}
	if o.Mode == ModeStreaming {
		if o.Profile {
			return fmt.Errorf("profiling requires buffered mode")
		}
		if o.Arrow {
			return fmt.Errorf("arrow export requires buffered mode")
		}
	}
	return nil
}

func (o Options) ingestMode() (ingest.Mode, error) {
	switch o.Mode {
	case "", ModeBuffered:
		return ingest.ModeBuffered, nil
	case ModeStreaming:
		return ingest.ModeStreaming, nil
	}
	return 0, fmt.Errorf("unknown mode %q (must be buffered or streaming)", string(o.Mode))
}

// ParseDelimiter accepts a one-character delimiter string.
func ParseDelimiter(s string) (byte, error) {
	if s != "," && s != ";" {
		return 0, fmt.Errorf("unsupported delimiter %q (must be ',' or ';')", s)
	}
	return s[0], nil
}

// ParseLineEnding maps "lf" or "crlf" to the terminator.
func ParseLineEnding(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "lf":
		return output.LF, nil
	case "crlf":
		return output.CRLF, nil
	}
	return "", fmt.Errorf("unknown line ending %q (must be lf or crlf)", s)
}

func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("no input path given")
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supportedExtensions {
		if ext == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported extension %q (must be one of %s)", filepath.Ext(path), strings.Join(supportedExtensions, ", "))
}

// Destination returns the sibling output path for path: the extension is
// replaced by .csv and the compression suffix is appended.
func Destination(path string, c output.Compression) string {
	return siblingPath(path, ".csv") + c.Extension()
}

// ArrowDestination returns the sibling Arrow IPC path for path.
func ArrowDestination(path string) string {
	return siblingPath(path, ".arrow")
}

func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
