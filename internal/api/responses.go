package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/stream"
)

// Shared response DTOs and helpers for consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to return.
type StatusResponse struct {
	Status string `json:"status"`
}

// ReindexResponse reports what a re-index changed.
type ReindexResponse struct {
	DocumentID string `json:"document_id"`
	Removed    int    `json:"removed"`
	Inserted   int    `json:"inserted"`
	Skipped    int    `json:"skipped"`
}

// SearchResponse wraps the results of a direct semantic search.
type SearchResponse struct {
	Query   string               `json:"query"`
	Results []model.SearchResult `json:"results"`
}

// respondWithError maps business-layer errors to HTTP status codes and writes
// a standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages from the service layer are already user-facing.
		message = err.Error()
	case errors.Is(err, app_errors.ErrExtraction):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrExternalService):
		statusCode = http.StatusBadGateway
		message = "An upstream service is currently unavailable. Please try again later."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError ends an open event stream with an error event.
func sendStreamError(sink stream.Sink, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := sink.Send(model.Error(message)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
	_ = sink.Close()
}
