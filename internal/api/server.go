package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"license-gateway/internal/auth"
	"license-gateway/internal/cache"
)

// Server represents the HTTP API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      Store
	health     HealthChecker
	cache      *cache.CacheService // nil when Redis is disabled
	keys       auth.Keys
	config     ServerConfig
	logger     zerolog.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ProductionMode bool
}

// NewServer creates a new API server. cacheService may be nil.
func NewServer(
	config ServerConfig,
	store Store,
	health HealthChecker,
	cacheService *cache.CacheService,
	keys auth.Keys,
	logger zerolog.Logger,
) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		router: router,
		store:  store,
		health: health,
		cache:  cacheService,
		keys:   keys,
		config: config,
		logger: logger.With().Str("component", "api").Logger(),
	}

	router.Use(s.requestLogger())
	s.setupRoutes()

	return s
}

// requestLogger tags every request with an id and logs the outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// setupRoutes registers the gateway endpoints. Paths and query parameter
// names are the wire contract and are case-sensitive.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	// Client endpoint
	s.router.GET("/login", s.handleLogin)

	// Admin account endpoints
	s.router.GET("/ShowAccountDetail", s.handleShowAccountDetail)
	s.router.GET("/ShowAvailableAccounts", s.handleShowAvailableAccounts)
	s.router.DELETE("/delete", s.handleDeleteAccount)
	s.router.POST("/CreateAccount", s.handleCreateAccount)

	// Admin license endpoints
	s.router.POST("/CreateLicense", s.handleCreateLicense)
	s.router.DELETE("/DeleteLicense", s.handleDeleteLicense)
}

// handleHealth reports gateway, database, and cache health.
func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "healthy"}

	if s.health != nil {
		if err := s.health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
			return
		}
		resp["database"] = "up"
	}

	if s.cache != nil {
		if s.cache.IsHealthy() {
			resp["cache"] = "up"
		} else {
			resp["cache"] = "down"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// invalidateAccountList drops the cached admin listing after any mutation
// that changes account or device rows. Cache errors are not surfaced to the
// request; the TTL bounds staleness.
func (s *Server) invalidateAccountList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.AccountListKey); err != nil {
		s.logger.Debug().Err(err).Msg("account list cache invalidation failed")
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("address", addr).Msg("API server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info().Msg("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}
