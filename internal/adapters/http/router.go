package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/proverb-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/proverb-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/proverb-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/proverb-service/internal/platform/config"
	"github.com/jsamuelsen/proverb-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig contains authentication header configuration.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// ProverbHandler handles the /api endpoints.
	ProverbHandler *handlers.ProverbHandler

	// Tracing enables otelgin spans for every request.
	Tracing bool

	// Timeout bounds each /api request.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. CORS - answers preflight requests before anything else runs
//  2. Recovery - panics become a 500 envelope
//  3. Request ID and Correlation ID
//  4. OpenTelemetry - metrics, plus spans when tracing is enabled
//  5. Logging - request logging (skips /-/ endpoints)
//  6. ExposeErrors - 500 detail outside prod
//
// Route groups:
//   - /-/ (internal): probes, build info and metrics
//   - /api/ (public API): proverbs and vocabulary, with a request deadline
//
// Unknown paths and unsupported methods answer with the standard error envelope.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	serviceName := config.DefaultServiceName
	if cfg.AppConfig != nil {
		serviceName = cfg.AppConfig.Name
	}

	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.CORS(),
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.Tracing {
		engine.Use(telemetry.TracingMiddleware(serviceName))
	}

	engine.Use(
		telemetry.Middleware(serviceName),
		middleware.Logging(cfg.Logger),
		dto.ExposeErrors(!cfg.AppConfig.IsProduction()),
	)

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeNotFound, "route "+c.Request.URL.Path+" not found")
	})

	engine.NoMethod(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed,
			"method "+c.Request.Method+" not allowed on "+c.Request.URL.Path)
	})

	// Probes get no timeout; readiness bounds its own pings.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api.Use(middleware.Timeout(timeout))

	if cfg.ProverbHandler != nil {
		cfg.ProverbHandler.RegisterProverbRoutes(api, cfg.AuthConfig)
	}
}

// NewRouterConfig builds a RouterConfig from the loaded configuration.
func NewRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	proverbHandler *handlers.ProverbHandler,
) RouterConfig {
	return RouterConfig{
		Logger:         logger,
		AuthConfig:     &cfg.Auth,
		AppConfig:      &cfg.App,
		HealthHandler:  healthHandler,
		ProverbHandler: proverbHandler,
		Tracing:        cfg.Telemetry.Enabled,
		Timeout:        cfg.Server.RequestTimeout,
	}
}
