package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"credscore/internal/models"
)

// predictionColumns is the standard column list for prediction queries.
const predictionColumns = `id, timestamp, input_features, prediction, probability_default, credit_decision`

// scanPredictions scans rows into a slice of log entries. The input_features
// JSONB column is decoded back into the feature schema.
func scanPredictions(rows pgx.Rows) ([]models.PredictionLogEntry, error) {
	defer rows.Close()

	var entries []models.PredictionLogEntry
	for rows.Next() {
		var (
			entry    models.PredictionLogEntry
			features []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&features,
			&entry.Prediction,
			&entry.ProbabilityDefault,
			&entry.CreditDecision,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(features, &entry.InputFeatures); err != nil {
			return nil, fmt.Errorf("decode input_features for %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// InsertPrediction appends one prediction log entry.
func (d *DB) InsertPrediction(ctx context.Context, entry models.PredictionLogEntry) error {
	features, err := json.Marshal(entry.InputFeatures)
	if err != nil {
		return fmt.Errorf("encode input_features: %w", err)
	}

	query := `
		INSERT INTO predictions (id, timestamp, input_features, prediction, probability_default, credit_decision)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := d.Pool.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		features,
		entry.Prediction,
		entry.ProbabilityDefault,
		entry.CreditDecision,
	); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// ListPredictions returns logged predictions ordered newest-first.
func (d *DB) ListPredictions(ctx context.Context, limit, offset int) ([]models.PredictionLogEntry, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := d.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return scanPredictions(rows)
}

// CountPredictionsByDecision returns per-decision prediction counts for
// metrics export.
func (d *DB) CountPredictionsByDecision(ctx context.Context) ([]models.DecisionCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT credit_decision, COUNT(*)
		FROM predictions
		GROUP BY credit_decision
	`)
	if err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}
	defer rows.Close()

	var counts []models.DecisionCount
	for rows.Next() {
		var dc models.DecisionCount
		if err := rows.Scan(&dc.Decision, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
