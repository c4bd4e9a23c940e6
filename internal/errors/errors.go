package errors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation             = errors.New("invalid input")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenExpired           = errors.New("token expired")
	ErrStoryNotFound          = errors.New("story not found")
	ErrUserNotFound           = errors.New("user not found")
)

// Kind returns the stable machine-readable kind handlers report to clients.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUsernameTaken):
		return "conflict_error"
	case errors.Is(err, ErrAuthenticationRequired),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return "authentication_error"
	case errors.Is(err, ErrStoryNotFound), errors.Is(err, ErrUserNotFound):
		return "not_found_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps an error to the status its kind surfaces as. A taken
// username reports 400 rather than 409: it is user-correctable input,
// same as a missing field.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "validation_error", "conflict_error":
		return http.StatusBadRequest
	case "authentication_error":
		return http.StatusUnauthorized
	case "not_found_error":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
