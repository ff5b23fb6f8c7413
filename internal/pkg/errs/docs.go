// Package errs provides standardized error types for the factory application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an order or other object cannot be found
//   - InvalidStateTransitionError: For when an action does not fit the current order status
//   - ConfigurationInvariantError: For states that indicate a bug elsewhere in dispatch
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Adapters classify errors by sentinel with errors.Is; the HTTP layer maps
// ErrObjectNotFound to 404, ErrInvalidStateTransition and the validation sentinels
// to 400 and everything else to 500.
package errs
