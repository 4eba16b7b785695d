package predlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credscore/internal/metrics"
	"credscore/internal/models"
	"credscore/internal/schema"
)

const appendTimeout = 5 * time.Second

// Logger records prediction log entries without ever blocking or failing the
// prediction response. The primary sink is chosen once at startup; a failed
// primary write falls through to the fallback file immediately, with a
// warning, and is not retried.
type Logger struct {
	primary  Sink
	fallback Sink
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// New creates a logger. fallback may be nil when the primary sink is already
// the local file.
func New(primary, fallback Sink, log zerolog.Logger) *Logger {
	return &Logger{primary: primary, fallback: fallback, log: log}
}

// Record builds an entry for one served prediction and dispatches the write
// on its own goroutine. Fire-and-forget: the caller returns the prediction
// result regardless of logging outcome.
func (l *Logger) Record(fv schema.FeatureVector, result models.PredictionResult) {
	entry := models.PredictionLogEntry{
		ID:                 uuid.New(),
		Timestamp:          time.Now().UTC(),
		InputFeatures:      fv,
		Prediction:         result.Prediction,
		ProbabilityDefault: result.ProbabilityDefault,
		CreditDecision:     result.CreditDecision,
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.persist(entry)
	}()
}

func (l *Logger) persist(entry models.PredictionLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	err := l.primary.Append(ctx, entry)
	if err == nil {
		return
	}

	if l.fallback == nil {
		l.log.Error().Err(err).Stringer("entry_id", entry.ID).Msg("prediction log write failed")
		return
	}

	l.log.Warn().Err(err).Stringer("entry_id", entry.ID).Msg("primary prediction sink unavailable, writing fallback file")
	metrics.FallbackWrites.Inc()

	if ferr := l.fallback.Append(ctx, entry); ferr != nil {
		l.log.Error().Err(ferr).Stringer("entry_id", entry.ID).Msg("fallback prediction log write failed")
	}
}

// Wait blocks until all in-flight log writes have finished. Called during
// shutdown so pending entries are not lost.
func (l *Logger) Wait() {
	l.wg.Wait()
}
