package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"credscore/internal/db"
)

var (
	// PredictionsServed counts predictions served by the API, by decision.
	PredictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credscore_predictions_served_total",
		Help: "Predictions served by decision outcome.",
	}, []string{"decision"})

	// ProbabilityDefault observes the raw default probability per prediction.
	ProbabilityDefault = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credscore_probability_default",
		Help:    "Distribution of predicted default probabilities.",
		Buckets: prometheus.LinearBuckets(0, 0.05, 21),
	})

	// ValidationFailures counts rejected requests by violation kind.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credscore_validation_failures_total",
		Help: "Feature validation failures by violation kind.",
	}, []string{"kind"})

	// FallbackWrites counts prediction log entries diverted to the fallback file.
	FallbackWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credscore_log_fallback_writes_total",
		Help: "Prediction log writes diverted to the JSONL fallback file.",
	})
)

var loggedPredictionsDesc = prometheus.NewDesc(
	"credscore_logged_predictions",
	"Logged prediction count by decision, read from the database on each scrape.",
	[]string{"decision"},
	nil,
)

// LoggedPredictionCollector is a custom Prometheus collector that counts rows
// in the predictions table on each scrape. Registered only in database mode.
type LoggedPredictionCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *LoggedPredictionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- loggedPredictionsDesc
}

// Collect queries the per-decision counts and emits them as gauges.
func (c *LoggedPredictionCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountPredictionsByDecision(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("failed to collect logged prediction metrics")
		return
	}
	for _, dc := range counts {
		ch <- prometheus.MustNewConstMetric(
			loggedPredictionsDesc,
			prometheus.GaugeValue,
			float64(dc.Count),
			dc.Decision,
		)
	}
}

var initOnce sync.Once

// Init registers the database-backed collector. Must be called once at
// startup, and only when the database sink is active.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&LoggedPredictionCollector{db: database})
	})
}
