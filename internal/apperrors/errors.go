package apperrors

import "errors"

// Sentinel errors shared across services and repositories. Handlers map them
// to HTTP status codes; repositories translate driver errors into them so the
// rest of the code never inspects SQLSTATE values directly.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNotFound        = errors.New("not found")
	ErrForeignKey      = errors.New("foreign key violation")
	ErrPersistence     = errors.New("persistence failure")
)
