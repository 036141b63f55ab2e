// Package rest provides the JSON response envelope and shared HTTP middleware
// for the API surface.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fmoreno/arbitrage-api/internal/apperror"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a 200 response with the envelope.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Response{Message: message, Data: data})
}

// Fail maps err onto its transport status and writes the error envelope.
// Unclassified errors surface as 500 with a generic message.
func Fail(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		write(w, appErr.StatusCode, Response{Message: appErr.Message})
		return
	}
	write(w, http.StatusInternalServerError, Response{Message: "Internal server error"})
}

// Decode reads the request body into v, returning an INVALID_FORMAT error on
// malformed JSON.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.New(apperror.CodeInvalidFormat,
			apperror.WithMessage("Malformed request body"),
			apperror.WithCause(err),
			apperror.WithStatusCode(http.StatusBadRequest))
	}
	return nil
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
