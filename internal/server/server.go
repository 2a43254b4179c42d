// Package server wires configuration, middleware, handlers and the
// extraction engine into a runnable HTTP server.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/cpqscope/backend/internal/api/http"
	"github.com/cpqscope/backend/internal/api/middleware"
	"github.com/cpqscope/backend/internal/infrastructure/config"
	"github.com/cpqscope/backend/internal/infrastructure/logging"
	"github.com/cpqscope/backend/internal/infrastructure/monitoring"
	"github.com/cpqscope/backend/internal/ratelimit"
	"github.com/cpqscope/backend/internal/scraper"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	engine  *scraper.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing intelligence scraper",
		zap.String("port", cfg.Server.Port),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout),
	)

	metrics := monitoring.NewMetrics()

	engine := scraper.NewEngine(
		extractConfig(cfg.Extract),
		scraper.FetchConfig{
			Timeout:      cfg.Fetch.Timeout,
			UserAgent:    cfg.Fetch.UserAgent,
			MaxBodyBytes: scraper.MaxHTMLSize,
		},
		logger,
	).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("requests_per_window", cfg.RateLimit.RequestsPerWindow),
			zap.Duration("window", cfg.RateLimit.Window),
		)
		router.Use(middleware.GlobalRateLimit(cfg.RateLimit.GlobalRPS, cfg.RateLimit.GlobalBurst))
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			OnReject:          metrics.RecordRateLimited,
		}, ratelimit.NewMemoryStore()))
	}

	handlers := apihttp.NewHandlers(engine, logger, cfg.Fetch.Timeout)

	router.HandleMethodNotAllowed = true
	router.NoMethod(apihttp.MethodNotAllowed)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/api/scrape", handlers.Scrape)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		engine:  engine,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.logger.Sync()
	return nil
}

// extractConfig maps environment tuning onto engine limits, keeping
// the compiled-in defaults for limits not exposed via env.
func extractConfig(ec config.ExtractConfig) scraper.Config {
	c := scraper.DefaultConfig()
	c.CoreFeatureCap = ec.CoreFeatureCap
	c.IntegrationCap = ec.IntegrationCap
	c.CapabilityCap = ec.CapabilityCap
	c.HeadlineCap = ec.HeadlineCap
	c.KeyPointsMaxChars = ec.KeyPointsMaxChars
	c.ElementScanCap = ec.ElementScanCap
	return c
}
