package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cpqscope/backend/internal/infrastructure/logging"
	"github.com/cpqscope/backend/internal/infrastructure/monitoring"
)

// Engine runs the full extraction pipeline: fetch, sanitize, fan-out
// extraction, post-processing and assembly. One invocation is one
// independent unit of work; the engine is stateless across
// invocations.
type Engine struct {
	cfg     Config
	fetcher *Fetcher
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewEngine creates an engine with the provided extraction limits.
func NewEngine(cfg Config, fetchCfg FetchConfig, logger *logging.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		fetcher: NewFetcher(fetchCfg),
		logger:  logger,
	}
}

// WithMetrics attaches a metrics collector.
func (e *Engine) WithMetrics(m *monitoring.Metrics) *Engine {
	e.metrics = m
	return e
}

// Scrape fetches the URL and extracts an intelligence record. Network
// failure is fatal for the request; everything downstream recovers
// locally.
func (e *Engine) Scrape(ctx context.Context, url, pageType string) (*Record, error) {
	start := time.Now()

	fetched, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordScrape("fetch_error", time.Since(start))
		}
		e.logger.Warn("Fetch failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, err
	}

	record, err := e.Extract(fetched.HTML, url, pageType)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordScrape("parse_error", time.Since(start))
		}
		return nil, err
	}

	if !strings.Contains(fetched.ContentType, "html") {
		record.Metadata.DebugInfo = append(record.Metadata.DebugInfo,
			fmt.Sprintf("fetch: unexpected content type %s", fetched.ContentType))
	}

	if e.metrics != nil {
		e.metrics.RecordScrape("success", time.Since(start))
		e.metrics.RecordPrices(len(record.Pricing.ActualPrices))
	}
	e.logger.Info("Scrape complete",
		zap.String("url", url),
		zap.String("scrape_id", record.ScrapeID),
		zap.Int("prices", len(record.Pricing.ActualPrices)),
		zap.Int("features", len(record.Features.Core)),
		zap.Bool("gated", record.Metadata.IsGated),
		zap.Duration("elapsed", time.Since(start)),
	)

	return record, nil
}

// Extract runs all extractors over already-fetched HTML and assembles
// the intelligence record. Extractors are pure functions over the
// input seam and write to disjoint fields, so they fan out
// concurrently; the engine waits for all of them before
// post-processing. Partial results are never surfaced.
func (e *Engine) Extract(rawHTML, url, pageType string) (*Record, error) {
	in, err := BuildInput(rawHTML)
	if err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		pricing  *pricingResult
		features FeatureSet
		signals  CompetitiveSignals
		content  ContentSummary
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		pricing = extractPricing(e.cfg, in)
	}()
	go func() {
		defer wg.Done()
		features = extractFeatures(e.cfg, in)
	}()
	go func() {
		defer wg.Done()
		signals = extractSignals(in)
	}()
	go func() {
		defer wg.Done()
		content = extractContent(e.cfg, in, pageType)
	}()
	wg.Wait()

	if e.metrics != nil {
		for _, y := range pricing.yields {
			e.metrics.RecordStrategy(y.name, y.count)
		}
	}

	record := &Record{
		URL:       url,
		PageType:  pageType,
		ScrapeID:  uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Pricing:   postProcess(e.cfg, pricing.records, pricing.gated),
		Features:  features,
		Signals:   signals,
		Content:   content,
		Metadata: Metadata{
			ExtractionMethods: extractionLog(pricing, features, signals, content),
			DebugInfo:         append([]string{}, pricing.debug...),
			JavascriptParsed:  pricing.jsParsed,
			IsGated:           pricing.gated,
			GatedReason:       pricing.reason,
		},
	}
	record.Summary = summarize(record)

	return record, nil
}

// extractionLog builds the append-only ordered method log.
func extractionLog(pricing *pricingResult, features FeatureSet, signals CompetitiveSignals, content ContentSummary) []string {
	log := append([]string{}, pricing.methods...)
	log = append(log,
		fmt.Sprintf("feature-scan: %d features, %d integrations", len(features.Core), len(features.Integrations)),
		fmt.Sprintf("signal-scan: %d signals", len(signals.ImmediateThreats)+len(signals.Strengths)+len(signals.Weaknesses)),
		fmt.Sprintf("content-scan: %d headlines", len(content.Headlines)),
	)
	return log
}

// summarize derives the record summary.
func summarize(r *Record) Summary {
	jsData := r.Metadata.JavascriptParsed
	for _, p := range r.Pricing.ActualPrices {
		if p.Source == SourceJSObject || p.Source == SourceJSRegex {
			jsData = true
		}
	}

	return Summary{
		TotalPrices:      len(r.Pricing.ActualPrices),
		PricingAvailable: !r.Metadata.IsGated || len(r.Pricing.ActualPrices) > 0,
		FeatureCount:     len(r.Features.Core),
		IntegrationCount: len(r.Features.Integrations),
		ThreatCount:      len(r.Signals.ImmediateThreats),
		JavascriptData:   jsData,
	}
}
