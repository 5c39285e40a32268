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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/leadform/internal/api/router"
	"github.com/wolfman30/leadform/internal/app/bootstrap"
	appconfig "github.com/wolfman30/leadform/internal/config"
	"github.com/wolfman30/leadform/internal/form"
	httpmiddleware "github.com/wolfman30/leadform/internal/http/middleware"
	"github.com/wolfman30/leadform/internal/observability/metrics"
	"github.com/wolfman30/leadform/internal/origin"
	"github.com/wolfman30/leadform/pkg/logging"
)

func main() {
	// Local development reads .env; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadform server",
		"env", cfg.Env,
		"port", cfg.Port,
		"collector", cfg.CollectorURL,
	)

	ctx := context.Background()

	metricsHandler, formMetrics := setupMetrics()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	guard := bootstrap.BuildGuard(redisClient, cfg, logger)

	emailSender, err := bootstrap.BuildEmailSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure lead alerts", "error", err)
		os.Exit(1)
	}
	dispatcher := bootstrap.BuildDispatcher(cfg, emailSender, formMetrics, logger)

	formHandler := form.NewHandler(form.Config{
		Targeter:   setupTargeter(cfg, logger),
		Guard:      guard,
		Dispatcher: dispatcher,
		Metrics:    formMetrics,
		Logger:     logger,
	})

	limiter := setupRateLimiter(cfg)

	routerCfg := &router.Config{
		Logger:         logger,
		FormHandler:    formHandler,
		MetricsHandler: metricsHandler,
		FrameAncestors: cfg.FrameAncestors,
		RateLimiter:    limiter,
	}
	if redisClient != nil {
		routerCfg.HealthCheck = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopEviction := make(chan struct{})
	if limiter != nil {
		go evictIdleLimiters(limiter, time.Minute, stopEviction, logger)
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	close(stopEviction)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	// Submissions already redirected may still be posting to the collector.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("collector sends still in flight at shutdown", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func setupMetrics() (http.Handler, *metrics.FormMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), metrics.NewFormMetrics(registry)
}

func setupTargeter(cfg *appconfig.Config, logger *logging.Logger) *origin.Targeter {
	classifier := origin.Classifier{
		StagingMarker:    cfg.StagingMarker,
		ProductionDomain: cfg.ProductionDomain,
		StagingDomain:    cfg.StagingDomain,
	}
	return origin.NewTargeter(classifier, func(err error) {
		logger.Debug("parent location unavailable, using referrer", "error", err)
	})
}

func setupRateLimiter(cfg *appconfig.Config) *httpmiddleware.RateLimiter {
	if cfg.RateLimitPerSecond <= 0 {
		return nil
	}
	return httpmiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
}

func evictIdleLimiters(limiter *httpmiddleware.RateLimiter, every time.Duration, stop <-chan struct{}, logger *logging.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := limiter.Evict(10 * every); n > 0 {
				logger.Debug("evicted idle rate limiters", "count", n)
			}
		case <-stop:
			return
		}
	}
}
