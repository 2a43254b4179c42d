// Package monitoring provides Prometheus metrics for the extraction
// service.
//
// Collected metrics:
//   - HTTP request counts and latencies per route
//   - Scrape invocation outcomes and end-to-end durations
//   - Per-strategy pricing yields
//   - Rate limiter rejections
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
package monitoring
