package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/knowscan-ai/knowscan/pkg/metrics"
)

type Metrics struct {
	apiResponseTime  *prometheus.HistogramVec
	apiErrorCounter  *prometheus.CounterVec
	modelRequestTime *prometheus.HistogramVec
	modelError       *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	return &Metrics{
		apiResponseTime:  metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:  metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		modelRequestTime: metrics.NewHistogramVec("model_request_time", []string{"target"}),
		modelError:       metrics.NewCounterVec("model_error", []string{"target"}),
	}
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

// ModelRequestTimer times one outbound completion or embedding call; target
// names the call site (chunk_summary, combined_summary, ...).
func (m *Metrics) ModelRequestTimer(target string) *prometheus.Timer {
	return prometheus.NewTimer(m.modelRequestTime.WithLabelValues(target))
}

func (m *Metrics) ModelErrorInc(target string) {
	m.modelError.WithLabelValues(target).Inc()
}
