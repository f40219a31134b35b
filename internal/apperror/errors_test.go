package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation("name is required"), http.StatusBadRequest},
		{"conflict", ErrConflict("user already exists"), http.StatusBadRequest},
		{"authentication", ErrAuthentication("invalid credentials"), http.StatusUnauthorized},
		{"authorization", ErrAuthorization("forbidden"), http.StatusForbidden},
		{"not found", ErrNotFound("cab request not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("accept: %w", ErrNotFound("gone")), http.StatusNotFound},
		{"internal", ErrInternal(errors.New("boom"), "failed"), http.StatusInternalServerError},
		{"unclassified", errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesCause(t *testing.T) {
	err := ErrInternal(errors.New("pq: relation \"users\" does not exist"), "failed to fetch cab requests")
	assert.Equal(t, "failed to fetch cab requests", PublicMessage(err))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("secret detail")))
	assert.Equal(t, "email is required", PublicMessage(ErrValidation("email is required")))
}

func TestInternal_PassesThroughClassified(t *testing.T) {
	nf := ErrNotFound("missing")
	assert.Same(t, nf, Internal(nf, "ignored"))

	cause := errors.New("io")
	err := Internal(cause, "failed to save")
	var ie *InternalError
	assert.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Internal(nil, "unused"))
}
