// Package output serializes cell values as delimited text and other formats.
package output

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
)

// Line terminators.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Dialect controls how rows are rendered.
type Dialect struct {
	// Delimiter separates fields.
	Delimiter byte
	// Quote wraps text fields containing the delimiter or a double quote
	// in double quotes, doubling the inner quotes.
	Quote bool
	// LineEnding terminates every line.
	LineEnding string
}

// DefaultDialect returns comma-separated, quoted, LF-terminated output.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter:  ',',
		Quote:      true,
		LineEnding: LF,
	}
}

// FormatRow renders values as one delimited line, terminator included.
func FormatRow(values []models.CellValue, d Dialect) string {
	return string(AppendRow(nil, values, d))
}

// AppendRow appends the rendered line for values to dst.
// The last field is never followed by a delimiter.
func AppendRow(dst []byte, values []models.CellValue, d Dialect) []byte {
	for i, v := range values {
		if i > 0 {
			dst = append(dst, d.Delimiter)
		}
		dst = AppendField(dst, v, d)
	}
	return append(dst, d.LineEnding...)
}

// AppendField appends a single rendered field to dst.
func AppendField(dst []byte, v models.CellValue, d Dialect) []byte {
	switch v.Kind() {
	case models.KindString, models.KindDateTimeISO, models.KindDurationISO:
		s := v.Text()
		if d.Quote && needsQuote(s, d.Delimiter) {
			return appendQuoted(dst, s)
		}
		return append(dst, s...)
	default:
		return appendPlain(dst, v)
	}
}

// FieldText renders v without any quoting.
func FieldText(v models.CellValue) string {
	switch v.Kind() {
	case models.KindString, models.KindDateTimeISO, models.KindDurationISO:
		return v.Text()
	}
	return string(appendPlain(nil, v))
}

func appendPlain(dst []byte, v models.CellValue) []byte {
	switch v.Kind() {
	case models.KindEmpty:
		return dst
	case models.KindBool:
		return strconv.AppendBool(dst, v.Bool())
	case models.KindInt:
		return strconv.AppendInt(dst, v.Int(), 10)
	case models.KindFloat, models.KindDateTime, models.KindDuration:
		return strconv.AppendFloat(dst, v.Float(), 'f', -1, 64)
	case models.KindError:
		return append(dst, v.ErrorCode().String()...)
	default:
		return append(dst, v.Text()...)
	}
}

func needsQuote(s string, delim byte) bool {
	return strings.IndexByte(s, delim) >= 0 || strings.IndexByte(s, '"') >= 0
}

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			dst = append(dst, '"')
		}
		dst = append(dst, s[i])
	}
	return append(dst, '"')
}
