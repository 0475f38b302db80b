package handlers

import (
	"net/http"
	"time"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}

// HealthHandler reports process liveness
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a health handler; uptime counts from started.
func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

// GetHealth handles GET /healthz and GET /api/health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    now.Sub(h.started).Seconds(),
		Timestamp: now.UnixMilli(),
	})
}
