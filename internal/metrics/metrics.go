package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Domain operation metrics
	OrderOperationsCounter *prometheus.CounterVec
	StoreOperationsCounter *prometheus.CounterVec

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec
)

// Init registers the collectors under the given metric name prefix.
// Call it once at startup before the middleware runs.
func Init(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed authentications",
		},
	)

	OrderOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	StoreOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation"},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation.
//
//	defer metrics.TrackDBOperation("insert")(time.Now())
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DBOperationDuration == nil {
			return
		}
		DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOrderOperation increments the counter for order operations.
func RecordOrderOperation(operation string) {
	if OrderOperationsCounter == nil {
		return
	}
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordStoreOperation increments the counter for store operations.
func RecordStoreOperation(operation string) {
	if StoreOperationsCounter == nil {
		return
	}
	StoreOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAuthAttempt increments the attempt counter, and the error counter
// when the attempt failed.
func RecordAuthAttempt(ok bool) {
	if AuthAttemptsCounter == nil {
		return
	}
	AuthAttemptsCounter.Inc()
	if !ok {
		AuthErrorsCounter.Inc()
	}
}
