package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal       *prometheus.CounterVec
	fundraiseRunsTotal *prometheus.CounterVec
	fundraiseFunds     *prometheus.HistogramVec
	summaryFieldsFound *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdp",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdp",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pdp",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdp",
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "Total accepted pitch deck uploads.",
		},
		[]string{"service"},
	)
	fundraiseRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdp",
			Subsystem: "fundraise",
			Name:      "runs_total",
			Help:      "Total completed fundraise workflows by status.",
		},
		[]string{"service", "status"},
	)
	fundraiseFunds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdp",
			Subsystem: "fundraise",
			Name:      "funds_parsed",
			Help:      "Distribution of fund rows parsed per workflow.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"service"},
	)
	summaryFieldsFound := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdp",
			Subsystem: "extract",
			Name:      "summary_fields_found",
			Help:      "Distribution of populated summary fields per extraction.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadsTotal,
		fundraiseRunsTotal,
		fundraiseFunds,
		summaryFieldsFound,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		uploadsTotal:       uploadsTotal,
		fundraiseRunsTotal: fundraiseRunsTotal,
		fundraiseFunds:     fundraiseFunds,
		summaryFieldsFound: summaryFieldsFound,
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
	if !strings.HasPrefix(path, "/v1/decks/") {
		return path
	}
	if strings.HasSuffix(path, "/summary") {
		return "/v1/decks/{deck_id}/summary"
	}
	return "/v1/decks/{deck_id}"
}

func (m *HTTPServerMetrics) RecordUpload(service string) {
	m.uploadsTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordFundraiseRun(service, status string, fundCount int) {
	if status == "" {
		status = "unknown"
	}
	m.fundraiseRunsTotal.WithLabelValues(service, status).Inc()
	if fundCount >= 0 {
		m.fundraiseFunds.WithLabelValues(service).Observe(float64(fundCount))
	}
}

func (m *HTTPServerMetrics) RecordSummaryFields(service string, found int) {
	m.summaryFieldsFound.WithLabelValues(service).Observe(float64(found))
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

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
