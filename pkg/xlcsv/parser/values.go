package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/xuri/excelize/v2"
)

// numFmtClass says how a numeric cell's number format should be read.
type numFmtClass int

const (
	numFmtGeneral numFmtClass = iota
	numFmtDate
	numFmtDuration
)

// isNumericType reports whether cells of type t store numbers.
func isNumericType(t excelize.CellType) bool {
	return t == excelize.CellTypeUnset || t == excelize.CellTypeNumber
}

// classifyValue turns raw cell text into a typed value.
func classifyValue(t excelize.CellType, raw string, class numFmtClass) models.CellValue {
	switch t {
	case excelize.CellTypeBool:
		return models.NewBool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		code, _ := models.ParseErrorCode(raw)
		return models.NewError(code)
	case excelize.CellTypeDate:
		return models.NewDateTimeISO(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.NewString(raw)
	}

	switch class {
	case numFmtDate:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.NewDateTime(f)
		}
	case numFmtDuration:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.NewDuration(f)
		}
	}
	return parseValue(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns Int for integers, Float for decimals, or String.
func parseValue(s string) models.CellValue {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NewInt(i)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NewFloat(f)
	}
	return models.NewString(s)
}

// classifyNumFmt decides whether a number format displays dates or elapsed
// time. id is the built-in format id; custom is the format code, if any.
func classifyNumFmt(id int, custom string) numFmtClass {
	if custom != "" {
		return classifyFormatCode(custom)
	}
	switch {
	case id == 46:
		return numFmtDuration
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return numFmtDate
	}
	return numFmtGeneral
}

// classifyFormatCode scans a custom format code, ignoring quoted literals,
// escaped characters and bracketed colour/locale/condition sections.
// Elapsed-time tokens such as [h] make it a duration; otherwise any of the
// date/time letters d, m, y, h, s makes it a date.
func classifyFormatCode(code string) numFmtClass {
	// Only the first section (positive numbers) matters.
	if i := sectionEnd(code); i >= 0 {
		code = code[:i]
	}

	isDate := false
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '"':
			if j := strings.IndexByte(code[i+1:], '"'); j >= 0 {
				i += j + 1
			} else {
				i = len(code)
			}
		case '\\', '_', '*':
			i++
		case '[':
			j := strings.IndexByte(code[i:], ']')
			if j < 0 {
				return numFmtGeneral
			}
			switch strings.ToLower(code[i+1 : i+j]) {
			case "h", "hh", "m", "mm", "s", "ss":
				return numFmtDuration
			}
			i += j
		default:
			switch c | 0x20 {
			case 'd', 'm', 'y', 'h', 's':
				isDate = true
			}
		}
	}

	if isDate {
		return numFmtDate
	}
	return numFmtGeneral
}

// sectionEnd returns the index of the first unquoted ';', or -1.
func sectionEnd(code string) int {
	quoted := false
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '"':
			quoted = !quoted
		case '\\':
			i++
		case ';':
			if !quoted {
				return i
			}
		}
	}
	return -1
}
