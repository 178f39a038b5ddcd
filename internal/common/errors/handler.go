// internal/common/errors/handler.go
package errors

import (
	"fmt"
	"io"
	"time"
)

// ErrorHandler turns command errors into exit codes.
type ErrorHandler struct {
	logger Logger
	stderr io.Writer
}

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger, stderr io.Writer) *ErrorHandler {
	return &ErrorHandler{logger: logger, stderr: stderr}
}

// Handle logs err and returns the exit code the process should end with.
// Structural errors also get a plain diagnostic on stderr, independent of the
// configured log level.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return ExitOK
	}

	stdErr := h.normalizeError(err)
	if !IsStructural(stdErr.Code) {
		h.logger.Debug("run finished with failures", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		return GetExitCode(stdErr.Code)
	}

	h.logError(stdErr)
	if h.stderr != nil {
		fmt.Fprintf(h.stderr, "error: %v\n", stdErr)
		if stdErr.Cause != nil {
			fmt.Fprintf(h.stderr, "caused by: %v\n", stdErr.Cause)
		}
	}
	return GetExitCode(stdErr.Code)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func (h *ErrorHandler) logError(stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	h.logger.Error("run aborted", fields)
}
