// Package errors provides the structured error type used across catalogq.
// Errors carry a machine-readable code, a retryable flag, optional details
// and a cause, and map to a process exit status.
package errors
