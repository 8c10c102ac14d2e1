package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/service"
)

// Banner is the root endpoint greeting.
const Banner = "Mini Heart X API - Cyber Operations Backend"

// maxBodyBytes caps translate request bodies.
const maxBodyBytes = 64 << 10

// CommandService is the subset of service.Service the handlers call.
type CommandService interface {
	Translate(ctx context.Context, input, mode string) service.Response
	History(ctx context.Context, limit int) ([]domain.CommandRecord, error)
	Tools() domain.ToolCatalog
	DiscoverNetwork(ctx context.Context) ([]domain.Host, error)
}

// CommandHandler serves the translate, tools, discovery and history endpoints.
type CommandHandler struct {
	*Handler
	svc CommandService
}

// NewCommandHandler creates a command handler backed by svc.
func NewCommandHandler(base *Handler, svc CommandService) *CommandHandler {
	return &CommandHandler{Handler: base, svc: svc}
}

// RegisterRoutes registers command routes.
func (h *CommandHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Route("/api", func(r chi.Router) {
		r.Post("/translate", h.Translate)
		r.Get("/tools", h.Tools)
		r.Get("/network/discover", h.Discover)
		r.Get("/history", h.History)
	})
}

// Root returns the API banner.
func (h *CommandHandler) Root(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"message": Banner})
}

type translateRequest struct {
	Input *string `json:"input"`
	Mode  string  `json:"mode"`
}

// Translate resolves, executes and records one natural-language request.
func (h *CommandHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			Error(w, http.StatusBadRequest, "request body is required")
			return
		}
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Input == nil {
		Error(w, http.StatusBadRequest, "input is required")
		return
	}

	resp := h.svc.Translate(r.Context(), *req.Input, req.Mode)
	h.log(r).Info("Translate request served", "id", resp.ID, "type", resp.Type)
	JSON(w, http.StatusOK, resp)
}

// Tools returns the tool catalog.
func (h *CommandHandler) Tools(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, h.svc.Tools())
}

// Discover sweeps the local network. Failures are reported in the body with
// an empty host list, not as an HTTP error.
func (h *CommandHandler) Discover(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.svc.DiscoverNetwork(r.Context())
	if err != nil {
		h.log(r).Warn("Network discovery failed", "error", err)
		JSON(w, http.StatusOK, map[string]interface{}{
			"error": err.Error(),
			"hosts": []domain.Host{},
		})
		return
	}
	if hosts == nil {
		hosts = []domain.Host{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"hosts": hosts})
}

// History lists the most recent records, newest first.
func (h *CommandHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.log(r).Error("Failed to list history", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if records == nil {
		records = []domain.CommandRecord{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"history": records})
}
