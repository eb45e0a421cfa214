// internal/routes/optimization_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/handlers"
	"adpulse/internal/optimizer"
)

func RegisterOptimizationRoutes(router chi.Router, engine *optimizer.Engine, logger *zap.Logger) {
	optimizationHandler := handlers.NewOptimizationHandler(engine, logger)

	router.Route("/optimization", func(r chi.Router) {
		r.Get("/insights", optimizationHandler.GetInsights)
		r.Post("/run", optimizationHandler.OptimizeAllCampaigns)
	})
}
