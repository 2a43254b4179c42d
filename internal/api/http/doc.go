// Package http contains the gin handlers for the extraction API.
//
// Routes:
//   - GET  /           service identification
//   - GET  /health     liveness probe
//   - POST /api/scrape run the extraction pipeline for one URL
//
// Scrape responses always carry success, url, type, and timestamp so
// callers can correlate results without inspecting status codes.
package http
