package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/roberrrrrr/App-Activo-Entrena/internal/models"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves GET /api/health.
type Handler struct {
	store Pinger
	log   *logrus.Logger
}

func NewHandler(store Pinger, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Check answers 200/connected when the store responds to a ping and
// 503/disconnected when it does not.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := models.HealthResponse{Status: "ok", Database: "connected"}

	if err := h.store.Ping(r.Context()); err != nil {
		h.log.WithError(err).Warn("health: database unreachable")
		status = http.StatusServiceUnavailable
		resp = models.HealthResponse{Status: "degraded", Database: "disconnected"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
