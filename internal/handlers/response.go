package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the JSON envelope every API endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes the generic success envelope
func WriteSuccess(w http.ResponseWriter, logger *slog.Logger) {
	WriteJSON(w, http.StatusOK, Response{Success: true}, logger)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, Response{Success: false, Error: message}, logger)
}
