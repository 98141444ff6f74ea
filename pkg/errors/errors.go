package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Container format errors
	ErrFormatUnknown ErrorCode = "FORMAT_UNKNOWN"
	ErrFormatInvalid ErrorCode = "FORMAT_INVALID"
	ErrSymbolTable   ErrorCode = "SYMBOL_TABLE"

	// Annotation map errors
	ErrAnnotationParse ErrorCode = "ANNOTATION_PARSE"

	// Output errors
	ErrRender ErrorCode = "RENDER"
)

// HexmapError represents a structured error with code and details
type HexmapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HexmapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HexmapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HexmapError) Is(target error) bool {
	var targetErr *HexmapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HexmapError with the given code and message
func New(code ErrorCode, message string) *HexmapError {
	return &HexmapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HexmapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HexmapError {
	return &HexmapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HexmapError
func Wrap(err error, code ErrorCode, message string) *HexmapError {
	if err == nil {
		return nil
	}
	return &HexmapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HexmapError {
	if err == nil {
		return nil
	}
	return &HexmapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HexmapError) WithDetail(key string, value interface{}) *HexmapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hexErr *HexmapError
	if errors.As(err, &hexErr) {
		return hexErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HexmapError
func GetErrorCode(err error) ErrorCode {
	var hexErr *HexmapError
	if errors.As(err, &hexErr) {
		return hexErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HexmapError
func GetErrorDetails(err error) map[string]interface{} {
	var hexErr *HexmapError
	if errors.As(err, &hexErr) {
		return hexErr.Details
	}
	return nil
}
