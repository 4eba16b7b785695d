package handlers

import (
	"github.com/gofiber/fiber/v3"

	"credscore/internal/scoring"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	scorer scoring.Scorer
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(scorer scoring.Scorer) *ProbeHandler {
	return &ProbeHandler{scorer: scorer}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK only once the scoring artifact is loaded, so orchestration
// holds traffic after a failed artifact load instead of crash-looping the
// process.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.scorer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "model not loaded",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
