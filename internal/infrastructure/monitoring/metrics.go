package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Scrape pipeline metrics
	ScrapesTotal    *prometheus.CounterVec
	ScrapeDuration  *prometheus.HistogramVec
	StrategyRuns    *prometheus.CounterVec
	StrategyYield   *prometheus.CounterVec
	PricesExtracted prometheus.Counter
	RateLimited     prometheus.Counter

	startTime time.Time
}

// NewMetrics creates a metrics collector registered on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intel_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intel_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		ScrapesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intel_scrapes_total",
				Help: "Total scrape invocations by outcome",
			},
			[]string{"status"},
		),
		ScrapeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intel_scrape_duration_seconds",
				Help:    "End-to-end scrape duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),
		StrategyRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intel_strategy_runs_total",
				Help: "Pricing strategy executions",
			},
			[]string{"strategy"},
		),
		StrategyYield: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intel_strategy_yield_total",
				Help: "Raw pricing records produced per strategy",
			},
			[]string{"strategy"},
		),
		PricesExtracted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "intel_prices_extracted_total",
				Help: "Valid pricing records surviving post-processing",
			},
		),
		RateLimited: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "intel_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScrape records one scrape invocation outcome.
func (m *Metrics) RecordScrape(status string, duration time.Duration) {
	m.ScrapesTotal.WithLabelValues(status).Inc()
	m.ScrapeDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordStrategy records one pricing strategy execution and its yield.
func (m *Metrics) RecordStrategy(strategy string, yield int) {
	m.StrategyRuns.WithLabelValues(strategy).Inc()
	m.StrategyYield.WithLabelValues(strategy).Add(float64(yield))
}

// RecordPrices adds to the extracted price counter.
func (m *Metrics) RecordPrices(n int) {
	m.PricesExtracted.Add(float64(n))
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.RateLimited.Inc()
}

// Uptime returns time since collector creation.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
