package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	catalogHTTP "github.com/tair/smart-inventory/internal/catalog/delivery/http"
	catalogRepo "github.com/tair/smart-inventory/internal/catalog/repository"
	identityHTTP "github.com/tair/smart-inventory/internal/identity/delivery/http"
	identityRepo "github.com/tair/smart-inventory/internal/identity/repository"
	"github.com/tair/smart-inventory/pkg/logger"
	"github.com/tair/smart-inventory/pkg/storage"
	"github.com/tair/smart-inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "smart-inventory")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting smart inventory service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Open the snapshot store
	dataDir := getEnv("DATA_DIR", "./data")
	store, err := storage.NewBlobStore(dataDir)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("data_dir", dataDir).Msg("Failed to open snapshot store")
	}

	catalogRepository, err := catalogRepo.NewSnapshotRepository(store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load catalog snapshot")
	}
	identityRepository, err := identityRepo.NewSnapshotRepository(store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load identity snapshot")
	}

	logger.Logger.Info().
		Str("data_dir", dataDir).
		Msg("Snapshot store initialized")

	catalogHandler := catalogHTTP.NewCatalogHandler(
		catalogRepo.NewSnapshotRepositoryWithTracing(catalogRepository),
	)
	identityHandler := identityHTTP.NewIdentityHandler(identityRepository)

	// Setup router
	router := mux.NewRouter()
	catalogHandler.RegisterRoutes(router)
	catalogHandler.RegisterHealthCheck(router)
	identityHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      otelhttp.NewHandler(c.Handler(router), "http.server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
