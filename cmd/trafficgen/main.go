// Command trafficgen is a one-shot batch job that writes synthetic drifted
// predictions to the same sink the API's prediction logger uses, emulating a
// multi-day window of production traffic for drift monitoring exercises.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"credscore/internal/config"
	"credscore/internal/db"
	"credscore/internal/predlog"
	"credscore/internal/scoring"
	"credscore/internal/trafficgen"
)

func main() {
	requests := flag.Int("n", 1000, "number of synthetic predictions to generate")
	days := flag.Int("days", 7, "trailing window of days the timestamps span")
	driftFraction := flag.Float64("drift-fraction", 1.0, "trailing fraction of the sequence to drift, in [0,1]")
	driftFeatures := flag.String("drift", strings.Join(trafficgen.DriftableFeatures, ","), "comma-separated features to drift")
	seed := flag.Int64("seed", 42, "rng seed")
	seedReference := flag.Bool("seed-reference", false, "also load the reference CSV into the reference_data table")
	flag.Parse()

	cfg := config.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()

	model, err := scoring.Load(cfg.ModelPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("scoring artifact load failed")
	}

	ref, err := trafficgen.LoadReferenceCSV(cfg.ReferenceDataPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("reference data load failed")
	}
	logger.Info().Int("rows", len(ref)).Str("path", cfg.ReferenceDataPath).Msg("reference data loaded")

	var sink predlog.Sink
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connection failed")
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}

		if *seedReference {
			if err := database.ReplaceReferenceData(ctx, ref); err != nil {
				logger.Fatal().Err(err).Msg("reference data seeding failed")
			}
			logger.Info().Int("rows", len(ref)).Msg("reference_data table seeded")
		}

		sink = predlog.NewDatabaseSink(database)
	} else {
		if *seedReference {
			logger.Fatal().Msg("-seed-reference requires DATABASE_URL")
		}
		fileSink, err := predlog.NewFileSink(cfg.FallbackLogPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot open prediction log file")
		}
		defer fileSink.Close()
		logger.Info().Str("path", fileSink.Path()).Msg("DATABASE_URL not set, writing to JSONL log")
		sink = fileSink
	}

	gen, err := trafficgen.New(trafficgen.Config{
		Requests:      *requests,
		Days:          *days,
		DriftFraction: *driftFraction,
		DriftFeatures: splitFeatures(*driftFeatures),
		Seed:          *seed,
	}, model, ref)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid generator config")
	}

	stats, err := gen.Run(ctx, sink)
	if err != nil {
		// One-shot job: a mid-run failure is fatal and the run is repeated
		// from scratch.
		logger.Fatal().Err(err).Int("written", stats.Generated).Msg("traffic generation aborted")
	}

	logger.Info().
		Int("generated", stats.Generated).
		Int("denied", stats.Denied).
		Int("drifted", stats.Drifted).
		Msg("traffic generation complete")
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	features := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			features = append(features, p)
		}
	}
	return features
}
