package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/leadform/internal/form"
	httpmiddleware "github.com/wolfman30/leadform/internal/http/middleware"
	"github.com/wolfman30/leadform/internal/observability/metrics"
	"github.com/wolfman30/leadform/pkg/logging"
)

func newTestRouter(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()

	logger := logging.Default()
	reg := prometheus.NewRegistry()
	cfg := &Config{
		Logger: logger,
		FormHandler: form.NewHandler(form.Config{
			Logger:  logger,
			Metrics: metrics.NewFormMetrics(reg),
		}),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		FrameAncestors: []string{"https://logeix.com"},
	}
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterHealthDegraded(t *testing.T) {
	router := newTestRouter(t, func(cfg *Config) {
		cfg.HealthCheck = func(context.Context) error { return errors.New("redis down") }
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestRouterServesFormWithFramePolicy(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/form?isUK=true", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Content-Security-Policy"); got != "frame-ancestors 'self' https://logeix.com" {
		t.Fatalf("unexpected frame policy %q", got)
	}
	if !strings.Contains(rr.Body.String(), `action="/form"`) {
		t.Fatalf("expected form to post back to /form")
	}
}

func TestRouterSubmitRedirects(t *testing.T) {
	router := newTestRouter(t, nil)

	values := url.Values{
		"token":           {"tok"},
		"name":            {"Jane"},
		"email":           {"jane@example.com"},
		"phone":           {"+1 555"},
		"websiteUrl":      {"shop.example.com"},
		"Business-Model":  {"Dropshipping"},
		"Monthly-Revenue": {"$150,000+"},
		"Monthly-Spend":   {"$15,000+"},
	}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d: %s", http.StatusSeeOther, rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != "https://logeix.com/thank-you" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestRouterRateLimitsSubmissions(t *testing.T) {
	router := newTestRouter(t, func(cfg *Config) {
		cfg.RateLimiter = httpmiddleware.NewRateLimiter(0.001, 1)
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected second submission to be limited, got %v", codes)
	}
}

func TestRouterWidgetAndMetrics(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/widget.js", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected widget status %d, got %d", http.StatusOK, rr.Code)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/form", nil))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "leadform_form_renders_total") {
		t.Fatalf("expected form metrics to be exported")
	}
}

func TestRouterRateLimitLeavesRendersAlone(t *testing.T) {
	router := newTestRouter(t, func(cfg *Config) {
		cfg.RateLimiter = httpmiddleware.NewRateLimiter(0.001, 1)
	})

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/form/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("render %d: expected status %d, got %d", i, http.StatusOK, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("expected frame policy on submissions")
	}
}
