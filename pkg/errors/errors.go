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

	// Workspace errors
	ErrProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	ErrProjectInvalid  ErrorCode = "PROJECT_INVALID"

	// Central store errors
	ErrStoreLoad         ErrorCode = "STORE_LOAD"
	ErrStoreInconsistent ErrorCode = "STORE_INCONSISTENT"
	ErrMissingDependency ErrorCode = "MISSING_DEPENDENCY"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrDirRemove     ErrorCode = "DIR_REMOVE"

	// Manifest errors
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
)

// MonolinkError represents a structured error with code and details
type MonolinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MonolinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MonolinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MonolinkError) Is(target error) bool {
	var targetErr *MonolinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MonolinkError with the given code and message
func New(code ErrorCode, message string) *MonolinkError {
	return &MonolinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MonolinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MonolinkError {
	return &MonolinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MonolinkError
func Wrap(err error, code ErrorCode, message string) *MonolinkError {
	if err == nil {
		return nil
	}
	return &MonolinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MonolinkError {
	if err == nil {
		return nil
	}
	return &MonolinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MonolinkError) WithDetail(key string, value interface{}) *MonolinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var linkErr *MonolinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MonolinkError
func GetErrorCode(err error) ErrorCode {
	var linkErr *MonolinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code
	}
	return ErrUnknown
}
