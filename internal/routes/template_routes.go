// internal/routes/template_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"adpulse/internal/handlers"
	"adpulse/internal/interfaces"
)

func RegisterTemplateRoutes(router chi.Router, store interfaces.TemplateStore, logger *zap.Logger) {
	templateHandler := handlers.NewTemplateHandler(store, logger)

	router.Route("/templates", func(r chi.Router) {
		r.Get("/", templateHandler.ListAdTemplates)
		r.Get("/{id}", templateHandler.GetAdTemplate)
	})
}
