package metrics

import "github.com/prometheus/client_golang/prometheus"

// FormMetrics exposes counters/histograms for the lead form.
type FormMetrics struct {
	rendersTotal     *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
	dispatchTotal    *prometheus.CounterVec
	dispatchLatency  prometheus.Histogram
}

func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Subsystem: "form",
			Name:      "renders_total",
			Help:      "Total form renders",
		}, []string{"region"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Subsystem: "form",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"outcome", "qualified"}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Subsystem: "collector",
			Name:      "dispatch_total",
			Help:      "Total collector dispatches by status",
		}, []string{"status"}),
		dispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadform",
			Subsystem: "collector",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of collector posts",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.rendersTotal, m.submissionsTotal, m.dispatchTotal, m.dispatchLatency)
	return m
}

func (m *FormMetrics) ObserveRender(region string) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(region).Inc()
}

// ObserveSubmission counts a POST by outcome (accepted, invalid, duplicate).
func (m *FormMetrics) ObserveSubmission(outcome string, qualified bool) {
	if m == nil {
		return
	}
	label := "false"
	if qualified {
		label = "true"
	}
	m.submissionsTotal.WithLabelValues(outcome, label).Inc()
}

// ObserveDispatch records a collector send; seconds is skipped for drops.
func (m *FormMetrics) ObserveDispatch(status string, seconds float64) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(status).Inc()
	if seconds > 0 {
		m.dispatchLatency.Observe(seconds)
	}
}
