package bot

import (
	"github.com/prometheus/client_golang/prometheus"

	"cryptosocialbot/pkg/monitoring"
)

// Metrics holds the posting metrics exported by the agent.
type Metrics struct {
	CyclesTotal   *prometheus.CounterVec
	CycleDuration *prometheus.HistogramVec
	LastPostUnix  *prometheus.GaugeVec
}

// NewMetrics registers the agent's metrics on the service collector.
func NewMetrics(mc *monitoring.MetricsCollector) *Metrics {
	return &Metrics{
		CyclesTotal:   mc.NewCounter("cycles_total", "Posting cycles by category and outcome", []string{"category", "status"}),
		CycleDuration: mc.NewHistogram("cycle_duration_seconds", "Posting cycle duration", []string{"category"}, nil),
		LastPostUnix:  mc.NewGauge("last_post_timestamp_seconds", "Unix time of the last successful post", []string{"category"}),
	}
}

func (m *Metrics) observe(category Category, status string, seconds float64) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(string(category), status).Inc()
	m.CycleDuration.WithLabelValues(string(category)).Observe(seconds)
}

func (m *Metrics) markPosted(category Category) {
	if m == nil {
		return
	}
	m.LastPostUnix.WithLabelValues(string(category)).SetToCurrentTime()
}
