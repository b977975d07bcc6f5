package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"sedash/internal/config"
	"sedash/internal/errors"
	"sedash/internal/exporter"
	"sedash/internal/infrastructure"
	customMiddleware "sedash/internal/middleware"
	"sedash/internal/services"
	"sedash/internal/store"
	handlers "sedash/internal/transport/http"
)

const (
	// Version is stamped into health responses and startup logs.
	Version = "1.0.0"
	AppName = "sedash - socio-economic indicator analytics"
)

// Application is the dependency container for the API server.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Store         *store.Store
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Registry      *prometheus.Registry

	Analytics *services.AnalyticsService
	Catalog   *services.CatalogService
	Health    *services.HealthService
}

// NewApplication loads configuration and wires every layer together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Store:         st,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	a.initServices()
	a.setupRouter()
	a.createServer()

	return a, nil
}

// initServices builds the service layer on top of the store.
func (a *Application) initServices() {
	a.Analytics = services.NewAnalyticsService(a.Store, a.Config.Analytics.BatchConcurrency, a.Logger)
	a.Catalog = services.NewCatalogService(a.Store, a.Logger)
	a.Health = services.NewHealthService(a.Store, Version, a.Logger)
}

// setupRouter builds the middleware chain and mounts every route.
func (a *Application) setupRouter() {
	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	httpMetrics := customMiddleware.NewHTTPMetrics(a.Registry)

	errorHandler := errors.NewErrorHandler(a.Logger)
	validator := customMiddleware.NewValidator(errorHandler)

	analyticsHandler := handlers.NewAnalyticsHandler(
		a.Analytics, a.Config.Analytics.MaxHorizon, validator, errorHandler, a.Logger)
	catalogHandler := handlers.NewCatalogHandler(a.Catalog, errorHandler, a.Logger)
	exportHandler := handlers.NewExportHandler(
		a.Analytics, exporter.New(a.Logger), validator, errorHandler, a.Logger)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
	metricsHandler := handlers.NewMetricsHandler(a.Registry)

	r := chi.NewRouter()
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Scrape and probe endpoints skip the heavy middleware.
	r.Handle("/metrics", metricsHandler.Handler())
	r.Get("/healthz", healthHandler.Check)

	r.Group(func(r chi.Router) {
		if a.OTelProviders != nil {
			r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders).Handler)
		}
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(httpMetrics.Handler)
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
			}))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Compress(5))

		r.Route("/api", func(api chi.Router) {
			api.Use(render.SetContentType(render.ContentTypeJSON))
			api.Use(chimiddleware.Timeout(a.Config.Server.RequestTimeout))

			api.Get("/indicators", catalogHandler.ListIndicators)
			api.Get("/geographies", catalogHandler.ListGeographies)

			api.Route("/indicators/{indicator}", func(ir chi.Router) {
				ir.Use(analyticsHandler.IndicatorCtx)
				ir.Get("/summary", analyticsHandler.GetSummary)
				ir.Get("/chart", analyticsHandler.GetChart)
				ir.Get("/forecast", analyticsHandler.GetForecast)
			})

			api.Get("/compare", analyticsHandler.GetCompare)
			api.Post("/summaries", analyticsHandler.BatchSummaries)
			api.Post("/export/summary", exportHandler.ExportSummary)
		})
	})

	a.Router = r
}

// createServer builds the HTTP server around the router.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.ListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start brings the server up. A listen failure cancels the supplied
// context so Run can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.String("addr", a.Server.Addr),
		slog.String("store", a.Config.Store.Path),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop shuts the application down gracefully.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := a.Store.Close(); err != nil {
		a.Logger.ErrorContext(ctx, "store close failed", slog.String("error", err.Error()))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "log file close failed", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
