package config

import (
	"errors"
	"fmt"

	"github.com/dshills/x5/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value it cannot take.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownSetting indicates the file names a setting x5 does not have.
	ErrUnknownSetting = errors.New("unknown setting")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a setting that failed decoding or validation.
type ValidationError struct {
	// Path is the setting path, e.g. "editor.wrap_width".
	Path string
	// Message describes the problem.
	Message string
	// Value is the offending value.
	Value any
	// Err is ErrInvalidValue or ErrUnknownSetting.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(path, message string, value any) error {
	return &ValidationError{Path: path, Message: message, Value: value, Err: ErrInvalidValue}
}

func unknown(path string) error {
	return &ValidationError{Path: path, Message: "unknown setting", Err: ErrUnknownSetting}
}
