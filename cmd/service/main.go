// Package main is the entry point for the proverb service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/proverb-service/internal/adapters/http"
	"github.com/jsamuelsen/proverb-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/proverb-service/internal/app"
	"github.com/jsamuelsen/proverb-service/internal/bootstrap"
	"github.com/jsamuelsen/proverb-service/internal/platform/telemetry"
	"github.com/jsamuelsen/proverb-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load and validate configuration (fail fast)
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logging
	logger := bootstrap.NewLogger(cfg)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Stores: the Mongo client is opened on first use and then reused
	stores, err := bootstrap.OpenStores(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()

		if closeErr := stores.Close(closeCtx); closeErr != nil {
			logger.Error("closing stores", slog.Any("error", closeErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()
	if err := stores.RegisterHealth(healthRegistry); err != nil {
		return err
	}

	// 6. Application service and handlers
	proverbService := app.NewProverbService(stores.ServiceConfig(cfg, logger))

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, nil)
	proverbHandler := handlers.NewProverbHandler(proverbService)

	// 7. Create HTTP server
	if cfg.App.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := http.New(&cfg.Server, logger)

	// 8. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.NewRouterConfig(logger, cfg, healthHandler, proverbHandler))

	// 9. Start server (non-blocking)
	serverErr := server.Start()

	// 10. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	// Stop accepting new requests, drain in-flight. Shutdown applies the
	// configured timeout.
	if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
