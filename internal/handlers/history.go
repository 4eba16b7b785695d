package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"credscore/internal/db"
	"credscore/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// HistoryHandler serves the logged prediction history. Only available in
// database mode; the JSONL fallback has no meaningful read path for clients.
type HistoryHandler struct {
	db *db.DB
}

// NewHistoryHandler creates a new history handler. database is nil in
// fallback-only mode.
func NewHistoryHandler(database *db.DB) *HistoryHandler {
	return &HistoryHandler{db: database}
}

// List handles GET /predictions, newest-first. Responds 503 rather than an
// empty result when the database sink is not active.
func (h *HistoryHandler) List(c fiber.Ctx) error {
	if h.db == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "prediction history requires the database sink")
	}

	limit := queryInt(c, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, err := h.db.ListPredictions(c.Context(), limit, offset)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list predictions")
	}
	if entries == nil {
		entries = []models.PredictionLogEntry{}
	}

	return jsonSuccess(c, entries)
}

func queryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
