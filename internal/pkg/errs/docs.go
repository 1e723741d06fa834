// Package errs provides standardized error types for the freightdesk application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity is absent
//   - UnauthorizedError, ForbiddenError: caller identity and permission failures
//   - InvalidStateError: an entity exists but its status does not permit the action
//   - ConflictError: a prior or concurrent operation already satisfied or blocked the request
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf maps any error chain onto the stable Kind taxonomy used by the HTTP adapter.
package errs
