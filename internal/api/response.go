package api

import (
	"encoding/json"
	"errors"
	"net/http"

	kanerr "github.com/amterp/kanboard/internal/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusFor(err), ErrorResponse{Error: err.Error()})
}

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	var notFound *kanerr.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case kanerr.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
