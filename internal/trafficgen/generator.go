// Package trafficgen synthesizes a multi-day window of drifted prediction
// traffic for monitoring exercises. One-shot and single-threaded: a mid-run
// failure is fatal and the job is rerun from scratch.
package trafficgen

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"credscore/internal/models"
	"credscore/internal/predlog"
	"credscore/internal/scoring"
)

// Config controls one generation run.
type Config struct {
	Requests      int      // entries to generate
	Days          int      // trailing window the timestamps span
	DriftFraction float64  // trailing fraction of the sequence that drifts, in [0, 1]
	DriftFeatures []string // subset of DriftableFeatures to shift
	Seed          int64    // rng seed; a fixed seed makes the run reproducible
}

// Generator lazily produces synthetic prediction log entries. Entries are
// sampled from the reference dataset, optionally drifted, and scored with the
// real artifact so synthetic and production entries are indistinguishable
// downstream.
type Generator struct {
	cfg        Config
	scorer     scoring.Scorer
	ref        []models.ReferenceRow
	rng        *rand.Rand
	times      []time.Time
	driftStart int
	i          int
}

// Stats summarizes a completed run.
type Stats struct {
	Generated int
	Denied    int
	Drifted   int
}

// New validates the config and prepares a generator.
func New(cfg Config, scorer scoring.Scorer, ref []models.ReferenceRow) (*Generator, error) {
	if cfg.Requests <= 0 {
		return nil, fmt.Errorf("requests must be positive, got %d", cfg.Requests)
	}
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", cfg.Days)
	}
	if cfg.DriftFraction < 0 || cfg.DriftFraction > 1 {
		return nil, fmt.Errorf("drift fraction must be in [0, 1], got %g", cfg.DriftFraction)
	}
	for _, f := range cfg.DriftFeatures {
		if !isDriftable(f) {
			return nil, fmt.Errorf("no drift transform defined for feature %q", f)
		}
	}
	if len(ref) == 0 {
		return nil, fmt.Errorf("reference dataset is empty")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	g := &Generator{
		cfg:        cfg,
		scorer:     scorer,
		ref:        ref,
		rng:        rng,
		times:      generateTimestamps(cfg.Requests, cfg.Days, rng),
		driftStart: cfg.Requests - int(float64(cfg.Requests)*cfg.DriftFraction),
	}
	return g, nil
}

// generateTimestamps spreads n sorted timestamps uniformly over the trailing
// days window.
func generateTimestamps(n, days int, rng *rand.Rand) []time.Time {
	span := time.Duration(days) * 24 * time.Hour
	start := time.Now().UTC().Add(-span)

	offsets := make([]float64, n)
	for i := range offsets {
		offsets[i] = rng.Float64() * span.Seconds()
	}
	sort.Float64s(offsets)

	times := make([]time.Time, n)
	for i, s := range offsets {
		times[i] = start.Add(time.Duration(s * float64(time.Second)))
	}
	return times
}

// Next produces the next entry, or nil when the sequence is exhausted.
// A scoring failure aborts the run.
func (g *Generator) Next() (*models.PredictionLogEntry, error) {
	if g.i >= len(g.times) {
		return nil, nil
	}

	fv := g.ref[g.rng.Intn(len(g.ref))].Features
	if g.i >= g.driftStart {
		for _, feature := range g.cfg.DriftFeatures {
			applyDrift(&fv, feature)
		}
	}

	probability, err := g.scorer.PredictDefault(fv)
	if err != nil {
		return nil, fmt.Errorf("score synthetic entry %d: %w", g.i, err)
	}
	class, decision := scoring.Decide(probability)

	entry := &models.PredictionLogEntry{
		ID:                 uuid.New(),
		Timestamp:          g.times[g.i],
		InputFeatures:      fv,
		Prediction:         class,
		ProbabilityDefault: scoring.RoundProbability(probability),
		CreditDecision:     decision,
	}
	g.i++
	return entry, nil
}

// Run drains the generator into sink, one entry at a time. The sink is the
// same one the prediction logger uses, so downstream drift analysis treats
// synthetic and real predictions uniformly.
func (g *Generator) Run(ctx context.Context, sink predlog.Sink) (Stats, error) {
	var stats Stats
	for {
		entry, err := g.Next()
		if err != nil {
			return stats, err
		}
		if entry == nil {
			return stats, nil
		}

		if err := sink.Append(ctx, *entry); err != nil {
			return stats, fmt.Errorf("append synthetic entry %s: %w", entry.ID, err)
		}

		stats.Generated++
		if entry.CreditDecision == scoring.DecisionDenied {
			stats.Denied++
		}
		if stats.Generated > g.driftStart {
			stats.Drifted++
		}
	}
}
