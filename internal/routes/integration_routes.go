// internal/routes/integration_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/handlers"
)

func RegisterIntegrationRoutes(router chi.Router, deps Deps, logger *zap.Logger) {
	if deps.CopyGen == nil {
		return
	}
	integrationHandler := handlers.NewIntegrationHandler(deps.Store, deps.Publisher, deps.Payments, deps.CopyGen, logger)

	router.Route("/copy", func(r chi.Router) {
		r.Post("/generate", integrationHandler.GenerateAdCopy)
		r.Post("/optimize", integrationHandler.OptimizeAdCopy)
	})
}
