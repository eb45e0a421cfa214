// cmd/api/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"adpulse/internal/config"
	"adpulse/internal/db"
	"adpulse/internal/db/migrations"
	"adpulse/internal/interfaces"
	"adpulse/internal/metrics"
	"adpulse/internal/middleware"
	"adpulse/internal/optimizer"
	"adpulse/internal/repository"
	"adpulse/internal/routes"
	"adpulse/internal/services"
	"adpulse/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := middleware.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var store interfaces.Store
	var sqlDB *sql.DB
	if cfg.Database.URL != "" {
		if err := db.CreateDatabaseIfNotExists(cfg.Database.URL); err != nil {
			logger.Fatal("ensuring database exists", zap.Error(err))
		}
		database, err := db.New(cfg.Database.URL)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer database.Close()

		if err := migrations.RunMigrations(database.DB, logger); err != nil {
			logger.Fatal("running migrations", zap.Error(err))
		}

		sqlDB = database.DB
		store = repository.NewStore(sqlDB)
		logger.Info("using postgres store")
	} else {
		store = storage.NewMemoryStore()
		logger.Info("no DATABASE_URL set, using in-memory store")
	}

	var recLog optimizer.RecommendationLog
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("connecting to redis", zap.Error(err))
		}
		defer client.Close()
		recLog = storage.NewRedisRecommendationLog(client)
		logger.Info("using redis recommendation log", zap.String("addr", cfg.Redis.Addr))
	}

	engine := optimizer.NewEngine(store, recLog, logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(cfg.Metrics.Namespace)
		engine.Instrument(m)
	}

	deps := routes.Deps{
		Store:   store,
		DB:      sqlDB,
		Engine:  engine,
		Logger:  logger,
		Metrics: m,
	}
	if cfg.Facebook.AccessToken != "" {
		deps.Publisher = services.NewFacebookClient(cfg.Facebook.BaseURL, cfg.Facebook.AccessToken, cfg.Facebook.AdAccountID, cfg.Facebook.Timeout)
	}
	if cfg.Payments.SecretKey != "" {
		deps.Payments = services.NewPaymentsClient(cfg.Payments.BaseURL, cfg.Payments.SecretKey, cfg.Payments.Timeout)
	}
	if cfg.CopyGen.APIKey != "" {
		deps.CopyGen = services.NewCopyClient(cfg.CopyGen.BaseURL, cfg.CopyGen.APIKey, cfg.CopyGen.Model, cfg.CopyGen.Timeout)
	}

	router := routes.SetupRoutes(deps)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
