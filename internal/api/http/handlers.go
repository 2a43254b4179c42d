package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cpqscope/backend/internal/infrastructure/logging"
	"github.com/cpqscope/backend/internal/scraper"
)

// handlerDeadlineSlack is added on top of the fetch timeout so the
// fetcher, not the handler context, is the component that times out.
const handlerDeadlineSlack = 2 * time.Second

// ScrapeRequest is the inbound scrape payload. Type only labels the
// scrape for human-readable categorization.
type ScrapeRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// ScrapeMetadata is the top-level metadata block of a success payload.
type ScrapeMetadata struct {
	Description       string   `json:"description"`
	Keywords          string   `json:"keywords,omitempty"`
	OGTitle           string   `json:"ogTitle,omitempty"`
	OGDescription     string   `json:"ogDescription,omitempty"`
	WordCount         int      `json:"wordCount"`
	ExtractionMethods []string `json:"extractionMethods"`
}

// ScrapeResponse is the success payload.
type ScrapeResponse struct {
	Success            bool                       `json:"success"`
	URL                string                     `json:"url"`
	Type               string                     `json:"type"`
	Timestamp          time.Time                  `json:"timestamp"`
	Title              string                     `json:"title"`
	Content            string                     `json:"content"`
	ContentLength      int                        `json:"contentLength"`
	Metadata           ScrapeMetadata             `json:"metadata"`
	Intelligence       *scraper.Record            `json:"intelligence"`
	ActualPricing      scraper.Pricing            `json:"actualPricing"`
	ActualContent      scraper.ContentSummary     `json:"actualContent"`
	CompetitiveThreats []string                   `json:"competitiveThreats"`
	Summary            scraper.Summary            `json:"summary"`
}

// ScrapeError is the failure payload.
type ScrapeError struct {
	Success   bool      `json:"success"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	engine       *scraper.Engine
	logger       *logging.Logger
	fetchTimeout time.Duration
}

// NewHandlers creates the handler set.
func NewHandlers(engine *scraper.Engine, logger *logging.Logger, fetchTimeout time.Duration) *Handlers {
	return &Handlers{
		engine:       engine,
		logger:       logger,
		fetchTimeout: fetchTimeout,
	}
}

// Root returns service identification.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "competitive-intel-scraper",
		"status":  "running",
	})
}

// Health returns liveness status.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Scrape runs the extraction pipeline for one URL.
func (h *Handlers) Scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.fetchTimeout+handlerDeadlineSlack)
	defer cancel()

	record, err := h.engine.Scrape(ctx, req.URL, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ScrapeError{
			Success:   false,
			URL:       req.URL,
			Type:      req.Type,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, ScrapeResponse{
		Success:       true,
		URL:           record.URL,
		Type:          record.PageType,
		Timestamp:     record.Timestamp,
		Title:         record.Content.Title,
		Content:       record.Content.KeyPoints,
		ContentLength: len(record.Content.KeyPoints),
		Metadata: ScrapeMetadata{
			Description:       record.Content.Description,
			Keywords:          record.Content.Keywords,
			OGTitle:           record.Content.OGTitle,
			OGDescription:     record.Content.OGDescription,
			WordCount:         record.Content.WordCount,
			ExtractionMethods: record.Metadata.ExtractionMethods,
		},
		Intelligence:       record,
		ActualPricing:      record.Pricing,
		ActualContent:      record.Content,
		CompetitiveThreats: record.Signals.ImmediateThreats,
		Summary:            record.Summary,
	})
}

// MethodNotAllowed answers requests with an unsupported method.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
