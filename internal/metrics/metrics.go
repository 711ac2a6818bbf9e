package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for SignupTotal and LoginTotal.
const (
	ResultSuccess      = "success"
	ResultInvalid      = "invalid"
	ResultDuplicate    = "duplicate"
	ResultUnauthorized = "unauthorized"
	ResultError        = "error"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SignupTotal counts signup attempts by result.
	SignupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Total number of signup attempts by result",
		},
		[]string{"result"},
	)

	// LoginTotal counts login attempts by result. Unauthorized covers unknown
	// login IDs, wrong passwords and disabled accounts alike.
	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, SignupTotal, LoginTotal)
	})
}

// RecordRequest records duration and count for an HTTP request. path must
// be a route pattern, not the raw URL, to keep label cardinality bounded.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

func IncSignup(result string) {
	SignupTotal.WithLabelValues(result).Inc()
}

func IncLogin(result string) {
	LoginTotal.WithLabelValues(result).Inc()
}
