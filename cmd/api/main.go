package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justsurfingit/job-seeker-api/internal/config"
	"github.com/justsurfingit/job-seeker-api/internal/database"
	"github.com/justsurfingit/job-seeker-api/internal/handlers"
	"github.com/justsurfingit/job-seeker-api/internal/logger"
	"github.com/justsurfingit/job-seeker-api/internal/middleware"
	"github.com/justsurfingit/job-seeker-api/internal/server"
	"github.com/justsurfingit/job-seeker-api/internal/services"
	"github.com/justsurfingit/job-seeker-api/internal/store"
	"github.com/justsurfingit/job-seeker-api/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

func main() {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Logging
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	// 3. Tracing
	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:  cfg.ServiceName,
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}, log)
	if err != nil {
		log.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}

	// 4. Store
	repos := openStore(ctx, cfg, log)

	// 5. Services
	jobService := services.NewJobService(repos.jobs)
	applicationService := services.NewApplicationService(repos.apps, repos.jobs)

	var extractor handlers.JobExtractor
	if cfg.GeminiAPIKey != "" {
		llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("Job extraction disabled", "error", err)
		} else {
			extractor = llmService
		}
	}

	// 6. Handlers & router
	router := server.NewRouter(server.RouterConfig{
		JobHandler:         handlers.NewJobHandler(jobService, extractor),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		AllowOrigins:       cfg.CORSAllowOrigins,
		Metrics:            middleware.NewMetrics(),
		Tracer:             otel.Tracer(cfg.ServiceName),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 7. Serve until interrupted
	go func() {
		log.Info("Server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", "error", err)
	}
	if repos.mongo != nil {
		if err := repos.mongo.Disconnect(shutdownCtx); err != nil {
			log.Error("Mongo disconnect failed", "error", err)
		}
	}
	log.Info("Server exited")
}

type repositories struct {
	jobs  store.JobRepository
	apps  store.ApplicationRepository
	mongo *mongo.Client
}

// openStore picks the backend named by STORE_DRIVER. A backend that cannot
// be opened is replaced by the unavailable repositories so the listener
// still comes up and every data route answers 500.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) repositories {
	unavailable := repositories{jobs: store.Unavailable{}, apps: store.UnavailableApplications{}}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.PostgresDSN, log)
		if err != nil {
			log.Error("Postgres unavailable", "error", err)
			return unavailable
		}
		gs := store.NewGormStore(db)
		migrateCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
		defer cancel()
		if err := gs.Migrate(migrateCtx); err != nil {
			log.Error("Postgres migration failed", "error", err)
			return unavailable
		}
		return repositories{jobs: gs.Jobs(), apps: gs.Applications()}

	case config.StoreMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		ms := store.NewMemoryStore()
		return repositories{jobs: ms.Jobs(), apps: ms.Applications()}

	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.ConnectTimeout(), log)
		if err != nil {
			log.Error("MongoDB unavailable", "error", err)
			return unavailable
		}
		db := client.Database(cfg.MongoDatabase)
		return repositories{
			jobs:  store.NewMongoJobRepository(db),
			apps:  store.NewMongoApplicationRepository(db),
			mongo: client,
		}
	}
}
