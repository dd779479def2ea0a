package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests by service, method, path and status"},
		[]string{"service", "method", "path", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds", Buckets: prometheus.DefBuckets},
		[]string{"service", "method", "path"},
	)
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_sent_total", Help: "Total notifications processed by type"},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, NotificationsSent)
}

// Middleware records request counts and latency for every route of the named
// service. Counters are safe for concurrent increment, so this is the only
// cross-request state the services hold in process.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			HTTPLatency.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
			HTTPRequests.WithLabelValues(service, r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		})
	}
}

// Exposer serves the standard Prometheus text snapshot.
func Exposer() http.Handler {
	return promhttp.Handler()
}
