package handler

import (
	"net/http"
	"time"

	"vote-be/pkg/database"
	"vote-be/pkg/logger"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	db     *database.MongoDB
	logger *logger.Logger
}

func NewHealthHandler(db *database.MongoDB, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "connected"
	status := "healthy"
	if err := h.db.Health(ctx); err != nil {
		h.logger.WithError(err).Warn("database health check failed")
		dbStatus = "disconnected"
		status = "degraded"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]interface{}{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC(),
	})
}
