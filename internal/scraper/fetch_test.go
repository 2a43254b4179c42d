package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(DefaultFetchConfig())
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Contains(t, res.HTML, "hello")
	assert.Contains(t, res.ContentType, "html")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetchDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "text/html")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<html><body>compressed payload</body></html>"))
		gz.Close()
	}))
	defer srv.Close()

	f := NewFetcher(DefaultFetchConfig())
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, res.HTML, "compressed payload")
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(DefaultFetchConfig())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, NetworkHTTP, netErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := DefaultFetchConfig()
	cfg.Timeout = 50 * time.Millisecond

	f := NewFetcher(cfg)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, NetworkTimeout, netErr.Kind)
}

func TestFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	cfg := DefaultFetchConfig()
	cfg.MaxBodyBytes = 1024

	f := NewFetcher(cfg)
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Len(t, res.HTML, 1024)
}
