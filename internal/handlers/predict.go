package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"credscore/internal/metrics"
	"credscore/internal/models"
	"credscore/internal/predlog"
	"credscore/internal/schema"
	"credscore/internal/scoring"
)

// PredictHandler runs the validate → infer → decide → log pipeline.
type PredictHandler struct {
	scorer scoring.Scorer
	plog   *predlog.Logger
	log    zerolog.Logger
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(scorer scoring.Scorer, plog *predlog.Logger, log zerolog.Logger) *PredictHandler {
	return &PredictHandler{scorer: scorer, plog: plog, log: log}
}

// Predict handles POST /predict. Validation failures never reach the scorer;
// logging failures never reach the caller.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	if h.scorer == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "model not loaded")
	}

	fv, err := schema.ParseAndValidate(c.Body())
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Fields {
				metrics.ValidationFailures.WithLabelValues(string(fe.Kind)).Inc()
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status":  "error",
				"error":   "validation failed",
				"details": verr.Fields,
			})
		}
		return jsonError(c, fiber.StatusBadRequest, "malformed JSON body")
	}

	probability, err := h.scorer.PredictDefault(*fv)
	if err != nil {
		h.log.Error().Err(err).Msg("inference failed")
		return jsonError(c, fiber.StatusInternalServerError, "inference failed")
	}

	class, decision := scoring.Decide(probability)
	result := models.PredictionResult{
		Prediction:         class,
		ProbabilityDefault: scoring.RoundProbability(probability),
		CreditDecision:     decision,
	}

	metrics.PredictionsServed.WithLabelValues(decision).Inc()
	metrics.ProbabilityDefault.Observe(probability)

	h.plog.Record(*fv, result)

	return c.JSON(result)
}
