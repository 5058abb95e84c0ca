package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/silkmarket/core/docs"
	httpHandlers "github.com/silkmarket/core/internal/adapters/http"
	"github.com/silkmarket/core/internal/adapters/repository"
	"github.com/silkmarket/core/internal/application/services"
	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/database"
	"github.com/silkmarket/core/internal/infrastructure/logger"
)

// Dependencies are the long-lived components the server is built around
type Dependencies struct {
	Store    *repository.Store
	Verifier services.CredentialVerifier
	// Registry receives the HTTP and store metrics. It may already hold
	// snapshot metrics registered by the caller.
	Registry *prometheus.Registry
	// DB is set when the snapshot sink is database backed.
	DB *database.DB
}

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	deps   Dependencies
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) *Server {
	e := echo.New()

	e.Validator = httpHandlers.NewValidator()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpHandlers.NewErrorHandler(appLogger)

	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	// Initialize repositories
	cocoonRepo := repository.NewCocoonRepository(deps.Store)
	silkRepo := repository.NewSilkRepository(deps.Store)

	// Initialize services
	authService := services.NewAuthService(deps.Verifier, appLogger)
	cocoonService := services.NewCocoonService(cocoonRepo, appLogger)
	silkService := services.NewSilkService(silkRepo, appLogger)
	calculatorService := services.NewCalculatorService()

	handlers := &httpHandlers.Handlers{
		Cocoon:     httpHandlers.NewCocoonHandler(cocoonService, appLogger),
		Silk:       httpHandlers.NewSilkHandler(silkService, appLogger),
		Admin:      httpHandlers.NewAdminHandler(authService, appLogger),
		Calculator: httpHandlers.NewCalculatorHandler(calculatorService),
	}

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		deps:   deps,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupRoutes(handlers)

	return server
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(handlers *httpHandlers.Handlers) {
	api := s.echo.Group("/api")
	api.GET("/health", s.healthCheck)
	api.GET("/health/detailed", s.detailedHealthCheck)

	handlers.Register(api)

	docs.SwaggerInfo.Version = s.config.App.Version
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := s.deps.Registry
	store := s.deps.Store

	registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "silkmarket_cocoon_rates",
			Help: "Number of cocoon rate records held in memory",
		}, func() float64 {
			return float64(repository.NewCocoonRepository(store).Count(context.Background()))
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "silkmarket_silk_prices",
			Help: "Number of silk price records held in memory",
		}, func() float64 {
			return float64(repository.NewSilkRepository(store).Count(context.Background()))
		}),
	)

	s.echo.Use(metricsMiddleware(registry))

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Silk Market API is running",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	snap := s.deps.Store.Snapshot()
	checks["store"] = map[string]interface{}{
		"status":       "ok",
		"backend":      s.config.Storage.Backend,
		"cocoon_rates": len(snap.CocoonRates),
		"silk_prices":  len(snap.SilkPrices),
	}

	if s.deps.DB != nil {
		if err := s.deps.DB.HealthCheck(c.Request().Context()); err != nil {
			status = "error"
			checks["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "ok",
				"stats":  s.deps.DB.GetConnectionInfo(),
			}
		}
	}

	response := map[string]interface{}{
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"checks":  checks,
		"version": s.config.App.Version,
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

// Handler exposes the router for in-process use
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.GetAddr(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	s.logger.Infow("Starting server", "address", srv.Addr)
	return s.echo.StartServer(srv)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
