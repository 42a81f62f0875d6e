// Package render writes JSON responses and maps service errors to HTTP statuses.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Message writes {"error": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Error writes err with the status matching its cause.
func Error(w http.ResponseWriter, err error) {
	Message(w, StatusOf(err), err.Error())
}

// StatusOf returns 422 for unknown coffee types and missing settings, 500 otherwise.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, serviceerr.ErrCoffeeTypeNotFound),
		errors.Is(err, serviceerr.ErrConfigurationMissing):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
