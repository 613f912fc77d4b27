// Package errs provides standardized error types for the shopfloor service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrValueIsInvalid)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Handlers and adapters match on the sentinels to translate domain failures
// into transport responses without inspecting error strings.
package errs
