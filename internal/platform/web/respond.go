// Package web holds the JSON response helpers and HTTP middleware shared by
// the module handlers.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Kumarvenka/ship-app/internal/apperror"
)

// Message is the body of every non-resource response.
type Message struct {
	Message string `json:"message"`
}

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Fail writes a message body with the given status.
func Fail(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, Message{Message: msg})
}

// Error maps err to its status and writes the public message. Server-side
// failures are logged with the request id; their cause never reaches the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	Fail(w, status, apperror.PublicMessage(err))
}

// Decode reads a JSON request body into v. A malformed body is a validation error.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// DecodeOptional is Decode for endpoints whose body may be omitted: an empty
// body leaves v at its zero value.
func DecodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperror.ErrValidation("invalid request body: %v", err)
}
