// Package api provides HTTP handlers for the command API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handler provides common handler utilities.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// log returns the handler logger tagged with the request id, if any.
func (h *Handler) log(r *http.Request) *slog.Logger {
	if id := chiMiddleware.GetReqID(r.Context()); id != "" {
		return h.logger.With("request_id", id)
	}
	return h.logger
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
