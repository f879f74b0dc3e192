package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnknownType indicates a requested record type code is not registered
	UnknownType ErrorCode = "UNKNOWN_TYPE"
	// UnknownRegion indicates a region token is neither an alias nor an area code
	UnknownRegion ErrorCode = "UNKNOWN_REGION"
	// ConfigInvalid indicates the configuration file failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SchemaInvalid indicates a schema overlay file is malformed
	SchemaInvalid ErrorCode = "SCHEMA_INVALID"
	// SnapshotRead indicates a snapshot file could not be read
	SnapshotRead ErrorCode = "SNAPSHOT_READ"
	// OutputWrite indicates an output artifact could not be written
	OutputWrite ErrorCode = "OUTPUT_WRITE"
	// HistoryWrite indicates the run-history database rejected a write
	HistoryWrite ErrorCode = "HISTORY_WRITE"
)

// CompareError is the error type carried across package boundaries.
// Configuration errors are non-retryable and reported before any
// processing; I/O errors are fatal for the whole run.
type CompareError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *CompareError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CompareError) Unwrap() error {
	return e.Cause
}

// New creates a CompareError without an underlying cause
func New(code ErrorCode, format string, args ...interface{}) *CompareError {
	return &CompareError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a CompareError wrapping an underlying cause
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) *CompareError {
	return &CompareError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the error code from err, or "" if err carries none
func CodeOf(err error) ErrorCode {
	var ce *CompareError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
