package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := NewMetrics()

	m.ObserveFetch(ResultOK, time.Now())
	m.ObserveFetch(ResultOK, time.Now())
	m.ObserveFetch(ResultNetwork, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues(ResultNetwork)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues(ResultMalformed)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(ResultOK, time.Now())
		m.ObserveRange(3)
	})
}

func TestNewMetrics_Independent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ObserveFetch(ResultOK, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(a.FetchTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FetchTotal.WithLabelValues(ResultOK)))
}
