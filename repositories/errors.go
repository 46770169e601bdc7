package repositories

import "errors"

// Sentinel errors returned across the repository boundary. Handlers switch on
// these with errors.Is instead of inspecting gorm errors directly.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate indicates a unique constraint was violated
	ErrDuplicate = errors.New("repository: duplicate entry")
	// ErrValidation indicates the input failed a model-level constraint
	ErrValidation = errors.New("repository: invalid input")
	// ErrForbidden indicates the requesting user does not own the resource
	ErrForbidden = errors.New("repository: operation not permitted")
)
