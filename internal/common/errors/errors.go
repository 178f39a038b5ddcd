// Package errors provides the standardized error taxonomy shared by the
// generator and validator commands.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Structural failures abort the command.
const (
	ErrCodeFileNotFound      ErrorCode = "FILE_NOT_FOUND"
	ErrCodeFileReadFailed    ErrorCode = "FILE_READ_FAILED"
	ErrCodeParseError        ErrorCode = "PARSE_ERROR"
	ErrCodeSchemaInvalid     ErrorCode = "SCHEMA_INVALID"
	ErrCodeRegistryInvalid   ErrorCode = "REGISTRY_INVALID"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrCodeOutputWriteFailed ErrorCode = "OUTPUT_WRITE_FAILED"
	ErrCodeMetricsExport     ErrorCode = "METRICS_EXPORT_FAILED"
)

// Controlled failures that were already reported to the user.
const (
	ErrCodeUsage          ErrorCode = "USAGE"
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitStructural = 2
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewFileNotFoundError reports a path that does not exist.
func NewFileNotFoundError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileNotFound,
		Message:   "File not found",
		Details:   fmt.Sprintf("path: %s", path),
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewFileReadFailedError reports any other IO failure on read.
func NewFileReadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileReadFailed,
		Message:   "File could not be read",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewParseError reports malformed JSON.
func NewParseError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Malformed JSON document",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewSchemaInvalidError reports a schema document the validator cannot compile.
func NewSchemaInvalidError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaInvalid,
		Message:   "Invalid JSON schema",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewRegistryInvalidError reports a lookup registry violating its schema or invariants.
func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Lookup registry is invalid",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError wraps a configuration load or validation failure.
func NewConfigInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewOutputWriteFailedError reports a failed write to stdout.
func NewOutputWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutputWriteFailed,
		Message:   "Failed to write output",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewMetricsExportError reports a failed textfile export.
func NewMetricsExportError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMetricsExport,
		Message:   "Failed to export metrics",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewUsageError marks a command invoked with wrong arguments. The usage line
// is printed by the caller.
func NewUsageError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUsage,
		Message:   "Invalid invocation",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError summarizes a batch in which at least one catalog failed.
func NewCatalogInvalidError(failed, total int) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "One or more catalogs failed validation",
		Details:   fmt.Sprintf("failed: %d of %d", failed, total),
		Metadata:  map[string]interface{}{"failed": failed, "total": total},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err to the first StandardError in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsStructural reports whether the code aborts a run noisily rather than
// being reported through the regular output.
func IsStructural(code ErrorCode) bool {
	switch code {
	case ErrCodeUsage, ErrCodeCatalogInvalid:
		return false
	default:
		return true
	}
}

// GetExitCode maps an error code to the process exit status.
func GetExitCode(code ErrorCode) int {
	if IsStructural(code) {
		return ExitStructural
	}
	return ExitFailure
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "FILE"):
		return "IO"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "SCHEMA"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "CONFIG") || strings.Contains(codeStr, "REGISTRY"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "OUTPUT") || strings.Contains(codeStr, "METRICS"):
		return "OUTPUT"
	case strings.Contains(codeStr, "USAGE") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
