package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"credscore/internal/db"
	"credscore/internal/handlers"
	"credscore/internal/predlog"
	"credscore/internal/scoring"
)

// RegisterRoutes registers all application routes. database is nil in
// fallback-only mode; scorer is nil when the artifact failed to load.
func (s *Server) RegisterRoutes(database *db.DB, scorer scoring.Scorer, plog *predlog.Logger, log zerolog.Logger) {
	healthHandler := handlers.NewHealthHandler(scorer)
	predictHandler := handlers.NewPredictHandler(scorer, plog, log)
	historyHandler := handlers.NewHistoryHandler(database)
	probeHandler := handlers.NewProbeHandler(scorer)

	s.App.Get("/health", healthHandler.Health)
	s.App.Post("/predict", predictHandler.Predict)
	s.App.Get("/predictions", historyHandler.List)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
