package models

// SheetRef identifies the sheet selected for conversion.
type SheetRef struct {
	// Index is the sheet position in the workbook (0-based).
	Index int `json:"index"`
	// Name is the sheet display name.
	Name string `json:"name"`
}
