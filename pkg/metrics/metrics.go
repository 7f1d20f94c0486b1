package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

var defaultManager = &manager{
	namespace: "default",
	system:    "default",
	registry:  prometheus.NewRegistry(),
}

func SetupMetricsManager(ns, system string, registry *prometheus.Registry) {
	defaultManager = &manager{
		namespace: ns,
		system:    system,
		registry:  registry,
	}
	registry.Register(collectors.NewGoCollector())
}

func NewHistogramVec(name string, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: defaultManager.namespace,
		Subsystem: defaultManager.system,
		Name:      name,
	}, labels)
	defaultManager.registry.MustRegister(vec)
	return vec
}

func NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: defaultManager.namespace,
		Subsystem: defaultManager.system,
		Name:      name,
	}, labels)
	defaultManager.registry.MustRegister(vec)
	return vec
}

// Export serves the default registry on a gin route.
func Export() gin.HandlerFunc {
	h := promhttp.HandlerFor(defaultManager.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
