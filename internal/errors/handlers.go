package errors

import (
	"fmt"
	"os"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the command-line interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError prints the error to stderr and returns it for exit-code handling
func (h *CLIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(os.Stderr, h.FormatError(err))
	return err
}

// FormatError formats an error for terminal display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	prefix := "Error"
	switch appErr.Severity {
	case SeverityInfo:
		prefix = "Info"
	case SeverityWarning:
		prefix = "Warning"
	case SeverityCritical:
		prefix = "Critical"
	}

	msg := fmt.Sprintf("%s: %s", prefix, appErr.Message)
	if h.Verbose {
		msg = fmt.Sprintf("%s: [%s] %s", prefix, appErr.Code, appErr.Message)
		if appErr.Details != "" {
			msg += fmt.Sprintf("\n  details: %s", appErr.Details)
		}
		if appErr.Cause != nil {
			msg += fmt.Sprintf("\n  cause: %v", appErr.Cause)
		}
	}
	return msg
}
