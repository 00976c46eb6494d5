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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Reference errors
	ErrReferenceCreation ErrorCode = "REFERENCE_CREATION"
	ErrResolution        ErrorCode = "RESOLUTION_FAILURE"
	ErrAccessDenied      ErrorCode = "ACCESS_DENIED"

	// Document errors
	ErrCorruptDocument ErrorCode = "CORRUPT_DOCUMENT"
	ErrEncoding        ErrorCode = "ENCODING"
	ErrUnsavedChanges  ErrorCode = "UNSAVED_CHANGES"
	ErrNoSourcePath    ErrorCode = "NO_SOURCE_PATH"

	// Shell errors
	ErrLaunch ErrorCode = "LAUNCH"
	ErrReveal ErrorCode = "REVEAL"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// StaplerError represents a structured error with code and details
type StaplerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StaplerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StaplerError) Unwrap() error {
	return e.Wrapped
}

// Is matches any StaplerError carrying the same code
func (e *StaplerError) Is(target error) bool {
	var targetErr *StaplerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StaplerError with the given code and message
func New(code ErrorCode, message string) *StaplerError {
	return &StaplerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StaplerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StaplerError {
	return &StaplerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StaplerError
func Wrap(err error, code ErrorCode, message string) *StaplerError {
	if err == nil {
		return nil
	}
	return &StaplerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StaplerError {
	if err == nil {
		return nil
	}
	return &StaplerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StaplerError) WithDetail(key string, value interface{}) *StaplerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var staplerErr *StaplerError
	if errors.As(err, &staplerErr) {
		return staplerErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StaplerError
func GetErrorCode(err error) ErrorCode {
	var staplerErr *StaplerError
	if errors.As(err, &staplerErr) {
		return staplerErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StaplerError
func GetErrorDetails(err error) map[string]interface{} {
	var staplerErr *StaplerError
	if errors.As(err, &staplerErr) {
		return staplerErr.Details
	}
	return nil
}

// Join combines several errors into one, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}
