package apperror

import (
	"errors"
	"net/http"
)

// Classified reports whether err (or anything it wraps) is one of the kinds
// defined in this package.
func Classified(err error) bool {
	var (
		ve *ValidationError
		ce *ConflictError
		ae *AuthenticationError
		ze *AuthorizationError
		ne *NotFoundError
		ie *InternalError
	)
	return errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ae) ||
		errors.As(err, &ze) || errors.As(err, &ne) || errors.As(err, &ie)
}

// HTTPStatus maps an error kind to its response status. Conflicts share 400
// with validation failures.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ce *ConflictError
		ae *AuthenticationError
		ze *AuthorizationError
		ne *NotFoundError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve), errors.As(err, &ce):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &ze):
		return http.StatusForbidden
	case errors.As(err, &ne):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing message for err. Unclassified
// errors never leak their text.
func PublicMessage(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Message != "" {
			return ie.Message
		}
		return "internal server error"
	}
	if Classified(err) {
		return err.Error()
	}
	return "internal server error"
}
