package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	APIRequests     *prometheus.CounterVec
	APIRequestTime  prometheus.Histogram
	TokenRefreshes  *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	PriceDrops      prometheus.Counter
	AlertPolls      prometheus.Counter
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates the client metrics and registers them on reg.
// A nil reg registers on the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "The total number of backend API requests",
		}, []string{"method", "status"}),
		APIRequestTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Time taken by backend API requests",
			Buckets:   prometheus.DefBuckets,
		}),
		TokenRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "The total number of access token refresh attempts",
		}, []string{"outcome"}),
		PersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_persist_failures_total",
			Help:      "The total number of failed local store writes",
		}, []string{"store"}),
		PriceDrops: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_drops_total",
			Help:      "The total number of price drops detected on watched alerts",
		}),
		AlertPolls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_polls_total",
			Help:      "The total number of alert list polls",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// NewNopMetrics returns metrics registered on a private registry
func NewNopMetrics() *Metrics {
	return NewMetrics("skyfare", prometheus.NewRegistry())
}
