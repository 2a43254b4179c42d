package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"
)

// NetworkError kinds.
const (
	NetworkTimeout   = "timeout"
	NetworkHTTP      = "http"
	NetworkTransport = "transport"
)

// NetworkError is the fatal fetch failure surfaced to the caller.
type NetworkError struct {
	Kind   string
	Status int
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case NetworkTimeout:
		return fmt.Sprintf("fetch %s: deadline exceeded", e.URL)
	case NetworkHTTP:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FetchConfig holds fetcher settings.
type FetchConfig struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// DefaultFetchConfig returns the production fetch settings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:      10 * time.Second,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		MaxBodyBytes: MaxHTMLSize,
	}
}

// FetchResult is a fetched page body plus transport diagnostics.
type FetchResult struct {
	HTML        string
	Status      int
	ContentType string
}

// Fetcher retrieves raw HTML under a bounded deadline. It issues a
// single GET with a browser-like header set and never retries: retry
// policy belongs to the caller.
type Fetcher struct {
	client *resty.Client
	cfg    FetchConfig
}

// NewFetcher creates a fetcher with browser-like default headers.
func NewFetcher(cfg FetchConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetDoNotParseResponse(true).
		SetHeaders(map[string]string{
			"User-Agent":                cfg.UserAgent,
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Accept-Encoding":           "gzip",
			"DNT":                       "1",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
		})

	return &Fetcher{client: client, cfg: cfg}
}

// Fetch retrieves the page at url. The context bounds the whole
// operation: when the deadline elapses before headers and body
// complete, the request aborts with a timeout NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &NetworkError{Kind: classifyFetchErr(err), URL: url, Err: err}
	}
	defer resp.RawBody().Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &NetworkError{Kind: NetworkHTTP, Status: code, URL: url}
	}

	body, err := f.readBody(resp)
	if err != nil {
		return nil, &NetworkError{Kind: classifyFetchErr(err), URL: url, Err: err}
	}

	return &FetchResult{
		HTML:        string(body),
		Status:      resp.StatusCode(),
		ContentType: mimetype.Detect(body).String(),
	}, nil
}

// readBody drains the response, decoding gzip manually. The pinned
// Accept-Encoding header disables the transport's transparent
// decompression.
func (f *Fetcher) readBody(resp *resty.Response) ([]byte, error) {
	var reader io.Reader = resp.RawBody()

	if resp.Header().Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(io.LimitReader(reader, f.cfg.MaxBodyBytes))
}

// classifyFetchErr maps transport errors onto NetworkError kinds.
func classifyFetchErr(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return NetworkTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetworkTimeout
	}
	return NetworkTransport
}
