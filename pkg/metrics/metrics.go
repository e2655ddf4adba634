package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry metrics
	CratesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "raktar_crates_total",
			Help: "Total number of crates with at least one published version",
		},
	)

	PublishesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raktar_publishes_total",
			Help: "Total number of publish attempts by outcome",
		},
		[]string{"outcome"},
	)

	DownloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "raktar_downloads_total",
			Help: "Total number of crate archive downloads",
		},
	)

	IndexLookupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "raktar_index_lookups_total",
			Help: "Total number of index document lookups",
		},
	)

	YanksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raktar_yanks_total",
			Help: "Total number of yank and unyank operations",
		},
		[]string{"operation"},
	)

	TokensIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "raktar_tokens_issued_total",
			Help: "Total number of API tokens issued",
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raktar_api_requests_total",
			Help: "Total number of API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raktar_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Register registers all metrics with the default Prometheus registry
func Register() {
	prometheus.MustRegister(CratesTotal)
	prometheus.MustRegister(PublishesTotal)
	prometheus.MustRegister(DownloadsTotal)
	prometheus.MustRegister(IndexLookupsTotal)
	prometheus.MustRegister(YanksTotal)
	prometheus.MustRegister(TokensIssuedTotal)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
