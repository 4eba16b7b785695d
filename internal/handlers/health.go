package handlers

import (
	"github.com/gofiber/fiber/v3"

	"credscore/internal/models"
	"credscore/internal/scoring"
)

// HealthHandler reports whether the scoring artifact is loaded.
type HealthHandler struct {
	scorer scoring.Scorer
}

// NewHealthHandler creates a new health handler. scorer is nil when the
// artifact failed to load at startup.
func NewHealthHandler(scorer scoring.Scorer) *HealthHandler {
	return &HealthHandler{scorer: scorer}
}

// Health handles GET /health. Always 200; the body carries the artifact
// state so orchestration can hold traffic without treating the check itself
// as failed.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	loaded := h.scorer != nil
	status := "healthy"
	if !loaded {
		status = "degraded"
	}
	return c.JSON(models.HealthResponse{
		Status:      status,
		ModelLoaded: loaded,
	})
}
