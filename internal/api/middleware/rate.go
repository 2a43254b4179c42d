package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cpqscope/backend/internal/ratelimit"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	// OnReject is invoked for every rejected request; may be nil.
	OnReject func()
}

// DefaultRateLimitConfig returns production-ready rate limit
// configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 30,
		Window:            time.Minute,
	}
}

// RateLimit creates a per-client fixed-window rate limiting middleware
// backed by the injected store. Rejections happen before any fetch
// runs and carry the window reset timestamp.
func RateLimit(cfg RateLimitConfig, store ratelimit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := store.Increment(c.ClientIP(), cfg.Window)

		if res.Count > cfg.RequestsPerWindow {
			if cfg.OnReject != nil {
				cfg.OnReject()
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":     "rate limit exceeded",
				"resetTime": res.Reset.UTC().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GlobalRateLimit creates a process-wide token-bucket limiting
// middleware sitting in front of the per-client window store.
func GlobalRateLimit(rps, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
