package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Extract   ExtractConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// FetchConfig holds outbound fetch configuration.
type FetchConfig struct {
	Timeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"FETCH_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
}

// ExtractConfig holds extraction tuning limits.
type ExtractConfig struct {
	CoreFeatureCap    int `envconfig:"EXTRACT_FEATURE_CAP" default:"20"`
	IntegrationCap    int `envconfig:"EXTRACT_INTEGRATION_CAP" default:"15"`
	CapabilityCap     int `envconfig:"EXTRACT_CAPABILITY_CAP" default:"15"`
	HeadlineCap       int `envconfig:"EXTRACT_HEADLINE_CAP" default:"15"`
	KeyPointsMaxChars int `envconfig:"EXTRACT_KEYPOINTS_CHARS" default:"2500"`
	ElementScanCap    int `envconfig:"EXTRACT_ELEMENT_SCAN_CAP" default:"2500"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerWindow int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	Window            time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	GlobalRPS         int           `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"100"`
	GlobalBurst       int           `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"200"`
	Enabled           bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Fetch: FetchConfig{
			Timeout:   10 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
		Extract: ExtractConfig{
			CoreFeatureCap:    20,
			IntegrationCap:    15,
			CapabilityCap:     15,
			HeadlineCap:       15,
			KeyPointsMaxChars: 2500,
			ElementScanCap:    2500,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: 30,
			Window:            time.Minute,
			GlobalRPS:         100,
			GlobalBurst:       200,
			Enabled:           true,
		},
	}
}
