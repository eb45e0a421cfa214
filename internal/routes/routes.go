// internal/routes/routes.go
package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"adpulse/internal/handlers"
	"adpulse/internal/interfaces"
	"adpulse/internal/metrics"
	appmw "adpulse/internal/middleware"
	"adpulse/internal/optimizer"
)

// Deps is everything the router needs. DB is nil when the API runs on the
// in-memory store; /health then reports the store as "memory" instead of
// pinging postgres.
type Deps struct {
	Store     interfaces.Store
	DB        *sql.DB
	Engine    *optimizer.Engine
	Publisher handlers.CampaignPublisher
	Payments  handlers.PaymentProvider
	CopyGen   handlers.CopyGenerator
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

func SetupRoutes(deps Deps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.Logging(logger))
	r.Use(appmw.Recovery(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "adpulse campaign api",
		})
	})

	r.Get("/health", healthHandler(deps.DB))

	if deps.Metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		RegisterCampaignRoutes(r, deps, logger)
		RegisterTemplateRoutes(r, deps.Store, logger)
		RegisterOptimizationRoutes(r, deps.Engine, logger)
		RegisterIntegrationRoutes(r, deps, logger)
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	type dbStatus struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}
	type healthResponse struct {
		Status string   `json:"status"`
		DB     dbStatus `json:"db"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK

		if db == nil {
			resp.DB.Status = "memory"
		} else if err := db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.DB.Status = "down"
			resp.DB.Error = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.DB.Status = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
