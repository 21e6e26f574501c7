package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scoring-api/internal/domain"
	"github.com/phrazzld/scoring-api/internal/service/auth"
)

// ErrUnknownMethod is returned when the envelope names a method that has no
// handler.
var ErrUnknownMethod = errors.New("unknown method")

// MapErrorToStatusCode maps internal errors to the status codes of the
// response envelope. Anything unrecognized is an internal error.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, ErrUnknownMethod):
		return http.StatusUnprocessableEntity

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}
