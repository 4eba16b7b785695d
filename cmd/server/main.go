package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"credscore/internal/config"
	"credscore/internal/db"
	"credscore/internal/metrics"
	"credscore/internal/predlog"
	"credscore/internal/scoring"
	"credscore/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := newLogger(cfg)

	// Load the scoring artifact once. On failure the server still starts and
	// reports itself unhealthy so orchestration holds traffic until an
	// operator intervenes.
	var scorer scoring.Scorer
	model, err := scoring.Load(cfg.ModelPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.ModelPath).Msg("scoring artifact load failed, serving degraded")
	} else {
		scorer = model
		logger.Info().Str("path", cfg.ModelPath).Int("trees", model.NumTrees()).Msg("scoring artifact loaded")
	}

	// Durable sink: database when configured and reachable, JSONL otherwise.
	// Prediction serving never depends on the sink being up.
	var database *db.DB
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("DATABASE_URL not set, prediction logging uses the JSONL fallback file")
	} else if database, err = db.New(ctx, cfg.DatabaseURL); err != nil {
		logger.Warn().Err(err).Msg("database unreachable, prediction logging falls back to JSONL")
		database = nil
	} else if err = database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Warn().Err(err).Msg("migrations failed, prediction logging falls back to JSONL")
		database.Close()
		database = nil
	} else {
		logger.Info().Msg("database prediction logging initialized")
		metrics.Init(database)
		defer database.Close()
	}

	fileSink, err := predlog.NewFileSink(cfg.FallbackLogPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.FallbackLogPath).Msg("cannot open fallback prediction log")
	}
	defer fileSink.Close()

	var plog *predlog.Logger
	if database != nil {
		plog = predlog.New(predlog.NewDatabaseSink(database), fileSink, logger)
	} else {
		plog = predlog.New(fileSink, nil, logger)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, scorer, plog, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("addr", cfg.ServerAddr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	plog.Wait()
	logger.Info().Msg("server exited")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
