/*
errors.go - Centralized error types for the vacation engine

PURPOSE:
  All engine-level errors in one place. Rule violations are NOT errors:
  they come back as messages inside a Result so the caller can show every
  failed rule at once. Errors here are for malformed primitive input and
  missing reference data, the cases where no Result can be produced at all.

SEE ALSO:
  - calendar/date.go: ParseError for unparseable date strings
  - validate.go: Result carrying rule-violation messages
*/
package vacation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee is not in
	// the supplied snapshot.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrMissingAcquisitionYear is returned by operations that cannot run
	// without an acquisition year. Its absence is never defaulted.
	ErrMissingAcquisitionYear = errors.New("acquisition year is required")

	// ErrUnknownMonth is returned when a month label cannot be parsed.
	ErrUnknownMonth = errors.New("unrecognized month label")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// EmployeeNotFoundError carries the id that failed to resolve.
type EmployeeNotFoundError struct {
	EmployeeID string
}

func (e *EmployeeNotFoundError) Error() string {
	return fmt.Sprintf("employee %q not found", e.EmployeeID)
}

func (e *EmployeeNotFoundError) Unwrap() error { return ErrEmployeeNotFound }
