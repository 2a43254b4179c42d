package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpqscope/backend/internal/infrastructure/logging"
	"github.com/cpqscope/backend/internal/scraper"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := scraper.DefaultFetchConfig()
	cfg.Timeout = 2 * time.Second
	engine := scraper.NewEngine(scraper.DefaultConfig(), cfg, logging.NewNop())
	handlers := NewHandlers(engine, logging.NewNop(), cfg.Timeout)

	router := gin.New()
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/api/scrape", handlers.Scrape)
	return router
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestScrapeRequiresURL(t *testing.T) {
	tests := []string{`{}`, `{"type":"Pricing Page"}`, `not json`}

	for _, body := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "URL is required")
	}
}

func TestScrapeSuccess(t *testing.T) {
	page := `<html><head><title>Acme Pricing</title>
		<meta name="description" content="Plans and pricing.">
	</head><body>
		<table><tr><th>Plan</th><th>Price</th></tr><tr><td>Pro</td><td>$99/month</td></tr></table>
		<p>Start your free trial today.</p>
	</body></html>`

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer backend.Close()

	body := `{"url":"` + backend.URL + `","type":"Pricing Page"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ScrapeResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, backend.URL, resp.URL)
	assert.Equal(t, "Pricing Page", resp.Type)
	assert.Equal(t, "Acme Pricing", resp.Title)
	assert.Equal(t, "Plans and pricing.", resp.Metadata.Description)
	assert.Equal(t, len(resp.Content), resp.ContentLength)
	assert.NotEmpty(t, resp.Metadata.ExtractionMethods)
	require.NotNil(t, resp.Intelligence)
	assert.NotEmpty(t, resp.Intelligence.ScrapeID)

	require.NotEmpty(t, resp.ActualPricing.ActualPrices)
	assert.Equal(t, "99", resp.ActualPricing.ActualPrices[0].Amount)
	assert.Equal(t, resp.Summary.TotalPrices, len(resp.ActualPricing.ActualPrices))
}

func TestScrapeFetchFailure(t *testing.T) {
	body := `{"url":"http://127.0.0.1:1","type":"Pricing Page"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ScrapeError
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Success)
	assert.Equal(t, "http://127.0.0.1:1", resp.URL)
	assert.NotEmpty(t, resp.Error)
	assert.False(t, resp.Timestamp.IsZero())
}
