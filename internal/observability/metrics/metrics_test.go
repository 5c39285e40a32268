package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFormMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFormMetrics(reg)
	m.ObserveRender("uk")
	m.ObserveSubmission("accepted", true)
	m.ObserveSubmission("accepted", true)
	m.ObserveSubmission("invalid", false)
	m.ObserveDispatch("sent", 0.2)
	m.ObserveDispatch("dropped", 0)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("accepted", "true")); got != 2 {
		t.Fatalf("expected 2 accepted qualified submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("uk")); got != 1 {
		t.Fatalf("expected 1 uk render, got %v", got)
	}
	if got := testutil.CollectAndCount(m.dispatchLatency); got != 1 {
		t.Fatalf("expected latency histogram to be collected once, got %d", got)
	}
	if got := testutil.ToFloat64(m.dispatchTotal.WithLabelValues("dropped")); got != 1 {
		t.Fatalf("expected 1 dropped dispatch, got %v", got)
	}
}

func TestFormMetricsNilSafe(t *testing.T) {
	var m *FormMetrics
	m.ObserveRender("us")
	m.ObserveSubmission("accepted", false)
	m.ObserveDispatch("sent", 0.1)
}
