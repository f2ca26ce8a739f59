package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/Dan9191/finance-dashboard/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// statusFor maps service and repository errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrUnknownSource),
		errors.Is(err, repository.ErrInvalidAccount):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
