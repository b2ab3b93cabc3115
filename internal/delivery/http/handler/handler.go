package handler

import (
	"encoding/json"
	"net/http"

	"github.com/user/snap-site/internal/delivery/http/response"
	"github.com/user/snap-site/internal/repository"
	"go.uber.org/zap"
)

type Handler struct {
	captures repository.CaptureLister
	logger   *zap.Logger
}

func NewHandler(captures repository.CaptureLister, logger *zap.Logger) *Handler {
	return &Handler{
		captures: captures,
		logger:   logger.With(zap.String("component", "status-handler")),
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleListCaptures(w http.ResponseWriter, r *http.Request) {
	records, err := h.captures.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list captures", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewCapturesResponse(records))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
