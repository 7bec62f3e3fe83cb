package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hairizuan-noorazman/suitegen/logger"
)

// TestStore is the write side of the rendered-test directory consumed by the
// generation handlers.
type TestStore interface {
	Write(ctx context.Context, name string, content io.Reader) error
}

// ErrorResponse represents an error response. Only a generic human-readable
// message is returned synchronously; diagnostic detail goes to the broadcast
// hub.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response with a message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// parseJSON parses JSON from the request body into the given destination.
func parseJSON(r *http.Request, dest interface{}, log logger.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Error(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
