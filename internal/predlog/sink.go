// Package predlog persists prediction log entries to a durable sink, with a
// local file fallback when the primary sink is unavailable.
package predlog

import (
	"context"

	"credscore/internal/db"
	"credscore/internal/models"
)

// Sink appends prediction log entries to durable storage.
type Sink interface {
	Append(ctx context.Context, entry models.PredictionLogEntry) error
}

// DatabaseSink writes entries to the predictions table.
type DatabaseSink struct {
	db *db.DB
}

// NewDatabaseSink creates a sink over an injected database connection. The
// sink does not own the connection.
func NewDatabaseSink(database *db.DB) *DatabaseSink {
	return &DatabaseSink{db: database}
}

// Append inserts one entry.
func (s *DatabaseSink) Append(ctx context.Context, entry models.PredictionLogEntry) error {
	return s.db.InsertPrediction(ctx, entry)
}
