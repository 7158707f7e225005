package models

// ErrorCode is the kind of a spreadsheet error cell.
type ErrorCode uint8

const (
	// ErrorDiv0 is #DIV/0!.
	ErrorDiv0 ErrorCode = iota
	// ErrorNA is #N/A.
	ErrorNA
	// ErrorName is #NAME?.
	ErrorName
	// ErrorNull is #NULL!.
	ErrorNull
	// ErrorNum is #NUM!.
	ErrorNum
	// ErrorRef is #REF!.
	ErrorRef
	// ErrorValue is #VALUE!.
	ErrorValue
	// ErrorGettingData is #GETTING_DATA.
	ErrorGettingData
)

var errorCodeTags = map[ErrorCode]string{
	ErrorDiv0:        "#DIV/0!",
	ErrorNA:          "#N/A",
	ErrorName:        "#NAME?",
	ErrorNull:        "#NULL!",
	ErrorNum:         "#NUM!",
	ErrorRef:         "#REF!",
	ErrorValue:       "#VALUE!",
	ErrorGettingData: "#GETTING_DATA",
}

// String returns the stable tag written to delimited output.
func (c ErrorCode) String() string {
	if tag, ok := errorCodeTags[c]; ok {
		return tag
	}
	return "#UNKNOWN!"
}

// ParseErrorCode maps an error literal as stored in a workbook to its code.
func ParseErrorCode(s string) (ErrorCode, bool) {
	for code, tag := range errorCodeTags {
		if tag == s {
			return code, true
		}
	}
	return ErrorValue, false
}
