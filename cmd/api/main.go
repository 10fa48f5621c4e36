package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"painel/internal/celebration"
	"painel/internal/config"
	"painel/internal/logger"
	"painel/internal/progress"
	"painel/internal/server"
	"painel/internal/services"
	"painel/internal/storage"
	"painel/internal/validator"

	_ "painel/internal/docs" // Import swagger docs
	_ "time/tzdata"          // Timezone data for hosts without a zoneinfo database
)

// @title           Painel API
// @version         1.0
// @description     Sales dashboard for an auto-service shop: record services, track monthly goals per service type, and export monthly reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Required on mutating routes when the server is started with API_KEY.

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	backendConfig, err := storage.FromAppConfig(appConfig)
	if err != nil {
		return err
	}
	backend, err := storage.NewFactory(logger.Named("storage")).Create(ctx, backendConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", backendConfig.Type, err)
	}
	defer func() {
		if err := backend.Cleanup(); err != nil {
			log.Warnw("failed to close storage", "error", err)
		}
	}()

	// Celebrations
	broker := celebration.NewBroker(celebration.Options{
		Interval: appConfig.CelebrationInterval,
		Duration: appConfig.CelebrationDuration,
	}, logger.Named("celebration"))
	defer broker.Close()
	tracker := progress.NewTracker(backend.Celebrations, broker, logger.Named("progress"))

	// Initialize services
	goalService := services.NewGoalService(backend.Adapter)
	router := server.NewRouter(server.Deps{
		Transactions:   services.NewTransactionService(backend.Adapter),
		Goals:          goalService,
		Dashboard:      services.NewDashboardService(backend.Adapter, goalService, tracker, appConfig.Location),
		Reports:        services.NewReportService(backend.Adapter, appConfig.Location),
		Celebrations:   broker,
		APIKey:         appConfig.APIKey,
		RequestLogging: true,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting painel server on port %s (storage: %s, timezone: %s)",
			appConfig.Port, backendConfig.Type, appConfig.Timezone)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("Shutting down server",
			"celebration_subscribers", broker.Subscribers(),
			"active_celebrations", broker.Active())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Celebration streams stay open until the broker closes them.
		broker.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
