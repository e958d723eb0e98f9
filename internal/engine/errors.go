package engine

import "fmt"

// Error codes surfaced at the run boundary.
const (
	CodeInvalidConfig  = "INVALID_CONFIG"
	CodeNoHistory      = "NO_HISTORY"
	CodeSynthesisError = "SYNTHESIS_ERROR"
)

// RunError is the single structured error shape a run surfaces to callers.
// Nothing escapes Engine.Run without being converted into one.
type RunError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func configErr(format string, args ...interface{}) *RunError {
	return &RunError{Code: CodeInvalidConfig, Message: fmt.Sprintf(format, args...)}
}

func wrapErr(code string, err error) *RunError {
	if re, ok := err.(*RunError); ok {
		return re
	}
	return &RunError{Code: code, Message: err.Error()}
}
