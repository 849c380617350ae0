package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	classificationsTotal   *prometheus.CounterVec
	classificationDuration *prometheus.HistogramVec
	extractedChars         *prometheus.HistogramVec
	extractionMethodTotal  *prometheus.CounterVec
	documentPages          *prometheus.HistogramVec
	contractSearchesTotal  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radicado",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "radicado",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "radicado",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	classificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radicado",
			Subsystem: "pipeline",
			Name:      "classifications_total",
			Help:      "Total classification attempts by outcome.",
		},
		[]string{"service", "outcome"},
	)
	classificationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "radicado",
			Subsystem: "pipeline",
			Name:      "classification_duration_seconds",
			Help:      "End-to-end classification duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		},
		[]string{"service", "outcome"},
	)
	extractedChars := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "radicado",
			Subsystem: "pipeline",
			Name:      "extracted_chars",
			Help:      "Distribution of extracted text length per petition.",
			Buckets:   []float64{0, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		},
		[]string{"service", "method"},
	)
	extractionMethodTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radicado",
			Subsystem: "pipeline",
			Name:      "extraction_method_total",
			Help:      "Total successful extractions by stage that produced the text.",
		},
		[]string{"service", "method"},
	)
	documentPages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "radicado",
			Subsystem: "pipeline",
			Name:      "document_pages",
			Help:      "Distribution of page counts per classified document.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		},
		[]string{"service", "method"},
	)
	contractSearchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "radicado",
			Subsystem: "contracts",
			Name:      "searches_total",
			Help:      "Total contract searches by result presence.",
		},
		[]string{"service", "hit"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		classificationsTotal,
		classificationDuration,
		extractedChars,
		extractionMethodTotal,
		documentPages,
		contractSearchesTotal,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		classificationsTotal:   classificationsTotal,
		classificationDuration: classificationDuration,
		extractedChars:         extractedChars,
		extractionMethodTotal:  extractionMethodTotal,
		documentPages:          documentPages,
		contractSearchesTotal:  contractSearchesTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/v1/contracts/") {
		return "/v1/contracts/search"
	}
	return path
}

// RecordClassification labels the attempt with a coarse outcome so the
// extraction-exhausted rate is visible next to oracle failures.
func (m *HTTPServerMetrics) RecordClassification(service string, err error, duration time.Duration) {
	outcome := "success"
	switch {
	case domain.IsKind(err, domain.ErrExtractionExhausted):
		outcome = "extraction_exhausted"
	case domain.IsKind(err, domain.ErrOracleTransport):
		outcome = "oracle_transport"
	case domain.IsKind(err, domain.ErrMalformedVerdict):
		outcome = "malformed_verdict"
	case err != nil:
		outcome = "error"
	}
	m.classificationsTotal.WithLabelValues(service, outcome).Inc()
	m.classificationDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordExtraction(service, method string, chars, pages int) {
	if method == "" {
		method = "unknown"
	}
	m.extractionMethodTotal.WithLabelValues(service, method).Inc()
	m.extractedChars.WithLabelValues(service, method).Observe(float64(chars))
	if pages > 0 {
		m.documentPages.WithLabelValues(service, method).Observe(float64(pages))
	}
}

func (m *HTTPServerMetrics) RecordContractSearch(service string, matches int) {
	hit := "false"
	if matches > 0 {
		hit = "true"
	}
	m.contractSearchesTotal.WithLabelValues(service, hit).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
