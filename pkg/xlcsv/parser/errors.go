// Package parser reads spreadsheet workbooks and streams their cells.
package parser

import "errors"

// ErrDecode indicates the workbook could not be decoded.
var ErrDecode = errors.New("cannot decode workbook")

// ErrSheetNotFound indicates the sheet selector matched no sheet.
var ErrSheetNotFound = errors.New("sheet not found")
