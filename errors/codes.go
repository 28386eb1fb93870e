package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeEmptyInput indicates an operation received no items where at least one is required.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
)

// Run errors
const (
	// ErrCodeConfig indicates configuration could not be loaded or is invalid.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrCodeCanceled indicates the run was canceled before completion.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeOutput indicates the report could not be written.
	ErrCodeOutput ErrorCode = "OUTPUT_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeCanceled: true,
	ErrCodeOutput:   true,
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if re-running the program may succeed.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

var exitCodes = map[ErrorCode]int{
	ErrCodeConfig:        2,
	ErrCodeInvalidInput:  2,
	ErrCodeMissingField:  2,
	ErrCodeInvalidFormat: 2,
	ErrCodeCanceled:      130,
}

// ExitCode maps an error code to a process exit status. Codes without a
// dedicated status exit with 1.
func ExitCode(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}
