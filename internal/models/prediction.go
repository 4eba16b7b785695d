// Package models holds the shared data types of the scoring service.
package models

import (
	"time"

	"github.com/google/uuid"

	"credscore/internal/schema"
)

// PredictionResult is the response body of POST /predict. Derived once per
// request, never mutated afterwards.
type PredictionResult struct {
	Prediction         int     `json:"prediction"`
	ProbabilityDefault float64 `json:"probability_default"`
	CreditDecision     string  `json:"credit_decision"`
}

// PredictionLogEntry is one append-only record of a served (or synthesized)
// prediction. Each served request produces exactly one entry.
type PredictionLogEntry struct {
	ID                 uuid.UUID            `json:"id"`
	Timestamp          time.Time            `json:"timestamp"`
	InputFeatures      schema.FeatureVector `json:"input_features"`
	Prediction         int                  `json:"prediction"`
	ProbabilityDefault float64              `json:"probability_default"`
	CreditDecision     string               `json:"credit_decision"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// DecisionCount is one row of the per-decision prediction count used by the
// metrics collector.
type DecisionCount struct {
	Decision string
	Count    int64
}

// ReferenceRow is one labeled row of the reference dataset the traffic
// generator samples from.
type ReferenceRow struct {
	Target   int
	Features schema.FeatureVector
}
