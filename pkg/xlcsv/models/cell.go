// Package models defines data structures for spreadsheet conversion.
package models

import "strconv"

// Kind identifies the active variant of a CellValue.
type Kind uint8

const (
	// KindEmpty is an absent or blank cell.
	KindEmpty Kind = iota
	// KindBool is a boolean cell.
	KindBool
	// KindInt is an integral number.
	KindInt
	// KindFloat is a non-integral number.
	KindFloat
	// KindString is a text cell.
	KindString
	// KindDateTime is a date/time stored as a spreadsheet serial number.
	KindDateTime
	// KindDateTimeISO is a date/time stored as ISO 8601 text.
	KindDateTimeISO
	// KindDuration is an elapsed time stored as a serial number of days.
	KindDuration
	// KindDurationISO is an elapsed time stored as ISO 8601 text.
	KindDurationISO
	// KindError is a spreadsheet error value such as #DIV/0!.
	KindError
)

// NumKinds is the number of distinct kinds.
const NumKinds = int(KindError) + 1

var kindNames = [NumKinds]string{
	KindEmpty:       "Empty",
	KindBool:        "Bool",
	KindInt:         "Int",
	KindFloat:       "Float",
	KindString:      "String",
	KindDateTime:    "DateTime",
	KindDateTimeISO: "DateTimeISO",
	KindDuration:    "Duration",
	KindDurationISO: "DurationISO",
	KindError:       "Error",
}

func (k Kind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// CellValue is a typed spreadsheet cell value. Exactly one variant is
// active, identified by Kind. The zero value is Empty.
//
// CellValue is comparable, so two values are equal with == when they have
// the same kind and payload.
type CellValue struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	e    ErrorCode
}

// Empty is the empty cell value.
var Empty = CellValue{}

// NewBool returns a Bool value.
func NewBool(b bool) CellValue { return CellValue{kind: KindBool, b: b} }

// NewInt returns an Int value.
func NewInt(i int64) CellValue { return CellValue{kind: KindInt, i: i} }

// NewFloat returns a Float value.
func NewFloat(f float64) CellValue { return CellValue{kind: KindFloat, f: f} }

// NewString returns a String value.
func NewString(s string) CellValue { return CellValue{kind: KindString, s: s} }

// NewDateTime returns a DateTime value holding a spreadsheet serial.
func NewDateTime(serial float64) CellValue { return CellValue{kind: KindDateTime, f: serial} }

// NewDateTimeISO returns a DateTimeISO value.
func NewDateTimeISO(s string) CellValue { return CellValue{kind: KindDateTimeISO, s: s} }

// NewDuration returns a Duration value holding a serial number of days.
func NewDuration(days float64) CellValue { return CellValue{kind: KindDuration, f: days} }

// NewDurationISO returns a DurationISO value.
func NewDurationISO(s string) CellValue { return CellValue{kind: KindDurationISO, s: s} }

// NewError returns an Error value.
func NewError(code ErrorCode) CellValue { return CellValue{kind: KindError, e: code} }

// Kind returns the active variant.
func (v CellValue) Kind() Kind { return v.kind }

// IsEmpty reports whether v is Empty.
func (v CellValue) IsEmpty() bool { return v.kind == KindEmpty }

// SameKind reports whether v and other have the same active variant.
func (v CellValue) SameKind(other CellValue) bool { return v.kind == other.kind }

// Bool returns the payload of a Bool value.
func (v CellValue) Bool() bool { return v.b }

// Int returns the payload of an Int value.
func (v CellValue) Int() int64 { return v.i }

// Float returns the payload of Float, DateTime and Duration values.
func (v CellValue) Float() float64 { return v.f }

// Text returns the payload of String, DateTimeISO and DurationISO values.
func (v CellValue) Text() string { return v.s }

// ErrorCode returns the payload of an Error value.
func (v CellValue) ErrorCode() ErrorCode { return v.e }

// String renders the value for diagnostics, e.g. Int(5) or String("a").
func (v CellValue) String() string {
	switch v.kind {
	case KindEmpty:
		return "Empty"
	case KindBool:
		return "Bool(" + strconv.FormatBool(v.b) + ")"
	case KindInt:
		return "Int(" + strconv.FormatInt(v.i, 10) + ")"
	case KindFloat, KindDateTime, KindDuration:
		return v.kind.String() + "(" + strconv.FormatFloat(v.f, 'g', -1, 64) + ")"
	case KindString, KindDateTimeISO, KindDurationISO:
		return v.kind.String() + "(" + strconv.Quote(v.s) + ")"
	case KindError:
		return "Error(" + v.e.String() + ")"
	}
	return v.kind.String()
}
