// Package metrics exposes Prometheus instrumentation for the extraction
// pipelines and the JSON API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mspro-labs/tapboard/internal/models"
)

// Metrics owns a private registry so tests can build as many as they need.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	extractions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	records     *prometheus.GaugeVec
	emptyTaps   prometheus.Gauge
	requests    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.extractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapboard",
		Name:      "extractions_total",
		Help:      "Fetch and extract runs by page kind and result",
	}, []string{"kind", "result"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tapboard",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent fetching and extracting a page",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
	m.records = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tapboard",
		Name:      "records",
		Help:      "Records produced by the last successful extraction",
	}, []string{"kind"})
	m.emptyTaps = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tapboard",
		Name:      "empty_taps",
		Help:      "Tap slots with nothing on them in the last tap list",
	})
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapboard",
		Name:      "api_requests_total",
		Help:      "JSON API requests by route and status code",
	}, []string{"route", "code"})

	m.registry.MustRegister(m.extractions, m.duration, m.records, m.emptyTaps, m.requests)
	return m
}

// ObserveExtraction records one pipeline run.
func (m *Metrics) ObserveExtraction(kind models.Kind, took time.Duration, n int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.extractions.WithLabelValues(string(kind), result).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(took.Seconds())
	if err == nil {
		m.records.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// ObserveTaps records how many of the slots are empty.
func (m *Metrics) ObserveTaps(taps []models.TapRecord) {
	if m == nil {
		return
	}
	empty := 0
	for _, t := range taps {
		if t.IsEmpty {
			empty++
		}
	}
	m.emptyTaps.Set(float64(empty))
}

// ObserveRequest counts one API response.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
