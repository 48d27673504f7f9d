package handlers

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(ctx); err != nil {
		logRequest(ctx, "error", "Database ping failed", zap.Error(err))
		writeJSON(ctx, w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "service": "blog-api"})
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "healthy", "service": "blog-api"})
}
