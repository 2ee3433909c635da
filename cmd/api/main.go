package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/api/handlers"
	"github.com/mustang75/ukrposhta-international-shipping/internal/application"
	"github.com/mustang75/ukrposhta-international-shipping/internal/config"
	"github.com/mustang75/ukrposhta-international-shipping/internal/infrastructure/upstream"
	"github.com/mustang75/ukrposhta-international-shipping/internal/payload"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/middleware"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/resilience"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/tracing"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
	"github.com/mustang75/ukrposhta-international-shipping/internal/search"
	"github.com/mustang75/ukrposhta-international-shipping/internal/store"
)

const serviceName = "shipping-portal"

func main() {
	// Setup logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting shipping-portal API")

	// Load configuration
	cfg, err := config.Load(getEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}
	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	tracingConfig.Environment = cfg.Environment
	tracingConfig.SampleRate = cfg.Tracing.SampleRate
	tracingConfig.Enabled = cfg.Tracing.Enabled

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	// Reference tables, search engine and form builder
	tables, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		logger.WithError(err).Error("Failed to load reference data")
		os.Exit(1)
	}
	engine := search.NewEngine(tables.Codes)
	builder := payload.NewBuilder(tables)

	// Local shipment store
	shipmentStore, err := store.New(cfg.Store.Path, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to open shipment store")
		os.Exit(1)
	}

	// Upstream Ukrposhta clients behind circuit breakers
	breakers := resilience.NewCircuitBreakerRegistry(logger.Logger)
	endpoint := cfg.Endpoint()

	ecomClient := upstream.NewEcomClient(
		endpoint.BaseURL,
		endpoint.BearerEcom,
		endpoint.CounterpartyToken,
		endpoint.CounterpartyUUID,
		logger, m, breakers.Get("ecom"),
	)
	trackingClient := upstream.NewTrackingClient(
		endpoint.BaseURL,
		endpoint.BearerStatus,
		logger, m, breakers.Get("status-tracking"),
	)

	var tariffClient application.TariffAPI
	if cfg.Tariff.URL != "" {
		tariffClient = upstream.NewTariffClient(cfg.Tariff.URL, logger, m, breakers.Get("tariff"))
	}
	logger.Info("Upstream clients initialized",
		"environment", cfg.Environment,
		"base_url", endpoint.BaseURL,
		"tariff_enabled", cfg.Tariff.URL != "",
	)

	// Application services
	senderService := application.NewSenderService(ecomClient, cfg.Sender, logger)
	shipmentService := application.NewShipmentService(
		ecomClient, trackingClient, senderService, shipmentStore, builder, tables, logger, m,
	)
	trackingService := application.NewTrackingService(trackingClient, logger, m)
	quoteService := application.NewQuoteService(tables, tariffClient, logger, m)

	// Handlers
	shipmentHandler := handlers.NewShipmentHandler(shipmentService, logger, m)
	trackingHandler := handlers.NewTrackingHandler(trackingService, logger)
	quoteHandler := handlers.NewQuoteHandler(quoteService, logger)
	refDataHandler := handlers.NewRefDataHandler(tables, engine, logger, m)

	// Setup Gin router with middleware
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.TracingMiddleware(middleware.DefaultTracingConfig(serviceName)))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health and observability endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return nil
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API routes
	api := router.Group("/api")
	shipmentHandler.RegisterRoutes(api)
	trackingHandler.RegisterRoutes(api)
	quoteHandler.RegisterRoutes(api)
	refDataHandler.RegisterRoutes(api)

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("Server started", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
