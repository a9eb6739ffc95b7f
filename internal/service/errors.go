// Package service holds the business rules that sit between HTTP handlers and
// repositories: account registration and login, and the catalog rules that
// keep a movie's embedded genre snapshot tied to an existing genre at write
// time.
package service

import (
	"errors"

	"github.com/iliyamo/movie-rental-api/internal/validation"
)

var (
	// ErrUnknownGenre is returned when a movie payload references a genre id
	// that does not resolve to a genre.  It is a client error.
	ErrUnknownGenre = errors.New("invalid genre")
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the field violations for a rejected payload.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + validation.Result{Violations: e.Violations}.Error()
}

func check(schema validation.Schema, payload any) error {
	if res := validation.Validate(schema, payload); !res.OK() {
		return &ValidationError{Violations: res.Violations}
	}
	return nil
}
