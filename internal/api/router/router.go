package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/leadform/internal/form"
	httpmiddleware "github.com/wolfman30/leadform/internal/http/middleware"
	"github.com/wolfman30/leadform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	FormHandler    *form.Handler
	MetricsHandler http.Handler
	// FrameAncestors lists origins allowed to embed the form.
	FrameAncestors []string
	// RateLimiter throttles submissions per client IP when set.
	RateLimiter *httpmiddleware.RateLimiter
	// HealthCheck reports dependency health (e.g. Redis) when set.
	HealthCheck func(ctx context.Context) error
}

// New creates a Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthHandler(cfg.HealthCheck))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Get("/widget.js", cfg.FormHandler.WidgetJS)

	var submit []func(http.Handler) http.Handler
	if cfg.RateLimiter != nil {
		submit = append(submit, httpmiddleware.RateLimit(cfg.RateLimiter))
	}
	r.With(httpmiddleware.FrameAncestors(cfg.FrameAncestors)).Mount("/form", cfg.FormHandler.Routes(submit...))

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
