package domain

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("%w: ...") and handlers map them onto HTTP status codes with
// errors.Is.
var (
	// ErrValidation marks malformed input: empty item list, non-positive
	// quantity, bad date range, missing required fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied marks a write without seller membership or a read
	// of another customer's order.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict marks a state conflict, e.g. deleting a category that
	// still has products, or a duplicate unique value.
	ErrConflict = errors.New("conflict")
)
