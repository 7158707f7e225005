package xlcsv

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Convert matches exactly one of them
// with errors.Is.
var (
	// ErrInvalidArgument indicates a missing path, an unsupported extension
	// or a bad option value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIO indicates a failure opening the input or writing the output.
	ErrIO = errors.New("i/o error")
	// ErrFormat indicates the container could not be decoded.
	ErrFormat = errors.New("format error")
	// ErrSheetNotFound indicates the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// ConversionError represents a failed conversion.
type ConversionError struct {
	Kind error
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *ConversionError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewConversionError creates a new ConversionError.
func NewConversionError(kind error, path string, err error) *ConversionError {
	return &ConversionError{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}
