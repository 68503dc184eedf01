// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ImamJamdar/CGPA/internal/buildinfo"
	"github.com/ImamJamdar/CGPA/internal/config"
	"github.com/ImamJamdar/CGPA/internal/httpapi"
	"github.com/ImamJamdar/CGPA/internal/logger"
	"github.com/ImamJamdar/CGPA/internal/metrics"
	"github.com/ImamJamdar/CGPA/internal/ratelimit"
	"github.com/ImamJamdar/CGPA/internal/sentry"
	"github.com/ImamJamdar/CGPA/internal/transcript"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg      *config.Config
	logger   *logger.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	handler  *httpapi.Handler
	limiter  *ratelimit.PerKeyLimiter
	server   *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "cgpa-calculator")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:     cfg.SentryDSN,
		Release: buildinfo.Version,
	}); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	processor := transcript.NewProcessor(log, m, transcript.MatcherParams{
		FuzzyThreshold: cfg.FuzzyMatchThreshold,
		MinNameLength:  cfg.MinNameMatchLength,
	})
	handler := httpapi.NewHandler(log, m, processor, cfg.MaxUploadBytes)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log, m))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	app := &Application{
		cfg:      cfg,
		logger:   log,
		metrics:  m,
		registry: registry,
		handler:  handler,
	}

	if cfg.UploadRateBurst > 0 {
		app.limiter = ratelimit.NewPerKeyLimiter(ratelimit.PerKeyConfig{
			Burst:      cfg.UploadRateBurst,
			RefillRate: cfg.UploadRateRefill,
		})
		app.limiter.OnDrop(m.RecordRateLimited)
		log.WithField("burst", cfg.UploadRateBurst).
			WithField("refill_per_sec", cfg.UploadRateRefill).
			Info("Upload rate limiting enabled")
	}

	router.GET("/", app.redirectToRepo)
	router.GET("/healthz", app.healthCheck)
	router.HEAD("/healthz", app.healthCheck)
	router.POST("/upload", rateLimitMiddleware(app.limiter), handler.Upload)
	router.POST("/calculate_cgpa", rateLimitMiddleware(app.limiter), handler.CalculateCGPA)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.HTTPReadHeaderTimeout,
		ReadTimeout:       config.HTTPReadTimeout,
		WriteTimeout:      config.HTTPWriteTimeout,
		IdleTimeout:       config.HTTPIdleTimeout,
	}

	log.Info("Initialization complete")
	return app, nil
}

func (a *Application) redirectToRepo(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "https://github.com/ImamJamdar/CGPA")
}

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": buildinfo.Version,
	})
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests and flushes observability buffers.
func (a *Application) Run() error {
	a.startHTTPServer()

	sig := a.waitForShutdownSignal()
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	return a.shutdown()
}

// startHTTPServer starts the HTTP server in a goroutine.
func (a *Application) startHTTPServer() {
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()
}

// waitForShutdownSignal blocks until SIGINT/SIGTERM is received.
func (a *Application) waitForShutdownSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

// shutdown performs graceful shutdown of the HTTP server and resources.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}

	if sentry.IsEnabled() && !sentry.Flush(2*time.Second) {
		a.logger.Warn("Sentry flush timed out")
	}

	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	a.logger.Info("Shutdown complete")
	return nil
}
