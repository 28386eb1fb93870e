package errors

import (
	stderrors "errors"
)

// ErrorReport is the structured form of an AppError written to the log.
type ErrorReport struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     string         `json:"cause,omitempty"`
}

// ToReport converts an AppError to an ErrorReport.
func (e *AppError) ToReport() ErrorReport {
	r := ErrorReport{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}
	if e.Cause != nil {
		r.Cause = e.Cause.Error()
	}
	return r
}

// Fields flattens the report into log fields.
func (r ErrorReport) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"code":      string(r.Code),
		"message":   r.Message,
		"retryable": r.Retryable,
	}
	if len(r.Details) > 0 {
		f["details"] = r.Details
	}
	if r.Cause != "" {
		f["cause"] = r.Cause
	}
	return f
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
