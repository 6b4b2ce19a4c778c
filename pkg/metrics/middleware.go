package metrics

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// EnvLatencyBuckets overrides the latency buckets, formatted like "100,200,300,400".
	EnvLatencyBuckets = "HTTP_LATENCY_BUCKETS"

	httpRequestsTotal   = "http_requests_total"
	httpRequestDuration = "http_request_duration_milliseconds"

	// requests that matched no route share one path label
	unmatchedRoute = "unmatched"
)

var defaultBuckets = []float64{10, 50, 300, 1000, 5000}

// Middleware exposes the number of requests and their latency partitioned by
// status code, method and route pattern.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// latencyBuckets reads EnvLatencyBuckets, falling back to the defaults when
// it is unset or malformed.
func latencyBuckets() []float64 {
	conf, ok := os.LookupEnv(EnvLatencyBuckets)
	if !ok || conf == "" {
		return defaultBuckets
	}
	var buckets []float64
	for _, v := range strings.Split(conf, ",") {
		f64v, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return defaultBuckets
		}
		buckets = append(buckets, f64v)
	}
	return buckets
}

// NewMiddleware returns a prometheus middleware for the provided server name.
func NewMiddleware(name string) *Middleware {
	var m Middleware
	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem:   ecfrAnalyzer,
			Name:        httpRequestsTotal,
			Help:        "Number of HTTP requests partitioned by status code, method and route.",
			ConstLabels: prometheus.Labels{"server": name},
		}, []string{"code", "method", "path"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem:   ecfrAnalyzer,
		Name:        httpRequestDuration,
		Help:        "Time spent on the request partitioned by status code, method and route.",
		ConstLabels: prometheus.Labels{"server": name},
		Buckets:     latencyBuckets(),
	}, []string{"code", "method", "path"})

	return &m
}

// Handler returns a handler for the middleware pattern.
func (m Middleware) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rp := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			rp = rctx.RoutePattern()
		}
		code := strconv.Itoa(ww.Status())
		m.requests.WithLabelValues(code, r.Method, rp).Inc()
		m.latency.WithLabelValues(code, r.Method, rp).Observe(float64(time.Since(start).Milliseconds()))
	}
	return http.HandlerFunc(fn)
}

// Collectors returns the collectors for a custom registry.
func (m Middleware) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.latency}
}

// MustRegisterDefault registers the collectors with the default registerer.
func (m Middleware) MustRegisterDefault() {
	if m.requests == nil || m.latency == nil {
		panic("collectors must be set")
	}
	prometheus.MustRegister(m.requests)
	prometheus.MustRegister(m.latency)
}
