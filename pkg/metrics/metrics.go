package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK        = "ok"
	ResultNetwork   = "network_error"
	ResultMalformed = "malformed_response"

	ResultInvalidRequest = "invalid_request"
)

type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	RangeDays     prometheus.Histogram
}

// NewMetrics registers every collector on a private registry so that
// several instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "privatbank_fetch_total",
				Help: "Total number of upstream exchange rate fetches by result",
			},
			[]string{"result"},
		),

		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "privatbank_fetch_duration_seconds",
				Help:    "Upstream exchange rate fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		RangeDays: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rates_range_days",
				Help:    "Number of days requested per range collection",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
	}
}

// ObserveFetch is safe to call on a nil *Metrics.
func (m *Metrics) ObserveFetch(result string, started time.Time) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveRange(days int) {
	if m == nil {
		return
	}
	m.RangeDays.Observe(float64(days))
}
