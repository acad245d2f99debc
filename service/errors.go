package service

import (
	"errors"
	"fmt"

	"food-marketplace-api/repository"
)

// Error kinds. Services wrap one of these with %w; handlers map them to
// HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
)

// notFound converts a repository miss into ErrNotFound and passes every
// other error through untouched
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
