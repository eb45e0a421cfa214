// internal/routes/campaign_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/handlers"
)

// RegisterCampaignRoutes wires the whole /campaigns tree. Everything scoped
// to a campaign id must register here: chi rejects a second mount on the
// same subtree.
func RegisterCampaignRoutes(router chi.Router, deps Deps, logger *zap.Logger) {
	campaignHandler := handlers.NewCampaignHandler(deps.Store, logger)
	metricHandler := handlers.NewMetricHandler(deps.Store, logger)
	optimizationHandler := handlers.NewOptimizationHandler(deps.Engine, logger)

	var integrationHandler *handlers.IntegrationHandler
	if deps.Publisher != nil || deps.Payments != nil {
		integrationHandler = handlers.NewIntegrationHandler(deps.Store, deps.Publisher, deps.Payments, deps.CopyGen, logger)
	}

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListCampaigns)
		r.Post("/", campaignHandler.CreateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", campaignHandler.GetCampaign)
			r.Put("/", campaignHandler.UpdateCampaign)
			r.Delete("/", campaignHandler.DeleteCampaign)

			r.Post("/metrics", metricHandler.AddMetricSample)
			r.Get("/metrics", metricHandler.ListMetricSamples)

			r.Get("/performance", optimizationHandler.GetPerformance)
			r.Post("/auto-optimize", optimizationHandler.AutoOptimize)
			r.Post("/optimize", optimizationHandler.OptimizeCampaign)
			r.Get("/recommendations", optimizationHandler.ListRecommendations)
			r.Post("/recommendations/apply", optimizationHandler.ApplyRecommendation)

			if integrationHandler != nil {
				if deps.Publisher != nil {
					r.Post("/publish", integrationHandler.PublishCampaign)
				}
				if deps.Payments != nil {
					r.Post("/fund", integrationHandler.FundCampaign)
				}
			}
		})
	})

	router.Get("/dashboard/stats", metricHandler.DashboardStats)
}
