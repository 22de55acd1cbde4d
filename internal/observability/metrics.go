package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/etaxql/etaxql/internal/fixtures"
)

// Metrics mengumpulkan metrik Prometheus untuk aplikasi.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	graphqlRequests *prometheus.CounterVec
	resolvesTotal   *prometheus.CounterVec
	fixtureBytes    *prometheus.GaugeVec
}

// NewMetrics menginisialisasi registry dan metrik dasar.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etaxql_http_requests_total",
		Help: "Jumlah permintaan HTTP berdasarkan route dan status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "etaxql_http_request_duration_seconds",
		Help:    "Durasi permintaan HTTP per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	graphqlRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etaxql_graphql_requests_total",
		Help: "Jumlah permintaan GraphQL berdasarkan hasil.",
	}, []string{"outcome"})
	resolves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etaxql_documents_resolved_total",
		Help: "Jumlah dokumen yang dikembalikan per jenis.",
	}, []string{"kind"})
	fixtureBytes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "etaxql_fixture_bytes",
		Help: "Ukuran payload fixture yang dimuat saat startup.",
	}, []string{"kind"})
	registry.MustRegister(requests, duration, graphqlRequests, resolves, fixtureBytes)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		graphqlRequests: graphqlRequests,
		resolvesTotal:   resolves,
		fixtureBytes:    fixtureBytes,
	}
}

// Handler mengembalikan http.Handler untuk endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware mencatat metrik untuk setiap permintaan HTTP.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRequest mencatat hasil satu permintaan GraphQL.
func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.graphqlRequests.WithLabelValues(outcome).Inc()
}

// ObserveResolve mencatat satu dokumen yang dikembalikan resolver.
func (m *Metrics) ObserveResolve(kind fixtures.Kind) {
	if m == nil {
		return
	}
	m.resolvesTotal.WithLabelValues(string(kind)).Inc()
}

// RecordFixtures mencatat ukuran setiap payload yang dimuat.
func (m *Metrics) RecordFixtures(store *fixtures.Store) {
	if m == nil || store == nil {
		return
	}
	for _, kind := range store.Kinds() {
		m.fixtureBytes.WithLabelValues(string(kind)).Set(float64(store.Size(kind)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
