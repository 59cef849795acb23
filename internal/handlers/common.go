package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/services"
)

// ErrorResponse is the error body shape: a message field plus the HTTP
// status class.
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Message: message})
}

// respondServiceError maps service errors onto HTTP statuses. Unmapped
// errors become a generic 500 that does not leak internals.
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Internal error")
		respondError(w, "Internal Server Error", status)
		return
	}
	respondError(w, err.Error(), status)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingUserID),
		errors.Is(err, services.ErrMissingFriendID),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyRequested),
		errors.Is(err, services.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotChatSender):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
