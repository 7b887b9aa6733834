package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/middleware"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface"
	surfaceHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface/delivery/http"
	transportRedis "github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport/redis"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

// Pinger is the part of the Redis client the health checks use.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// HTTPServer represents the agent HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) starts background services and serves HTTP.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	logger          log.Logger
	host            string
	port            int
	shutdownTimeout time.Duration
	cors            middleware.CORSConfig
	startedAt       time.Time

	// Session
	jwtMgr        jwt.Manager
	sessionUserID string
	wsConfig      surfaceHTTP.WSConfig

	// Sync core
	scheme      *channel.Scheme
	channels    []channel.Name
	reconcileUC reconcile.UseCase
	visSource   visibility.Source
	visReporter visibility.Reporter
	hub         *surface.Hub

	// Push transport. Both may be nil when Redis is unavailable.
	subscriber transportRedis.Subscriber
	redis      Pinger
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	CORS            middleware.CORSConfig

	// Session
	JWTManager    jwt.Manager
	SessionUserID string
	WebSocket     surfaceHTTP.WSConfig

	// Sync core
	Scheme             *channel.Scheme
	Channels           []channel.Name
	Reconcile          reconcile.UseCase
	VisibilitySource   visibility.Source
	VisibilityReporter visibility.Reporter
	Hub                *surface.Hub

	// Push transport
	Subscriber transportRedis.Subscriber
	Redis      Pinger
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		// Server configuration
		gin:             gin.New(),
		logger:          logger,
		host:            cfg.Host,
		port:            cfg.Port,
		shutdownTimeout: cfg.ShutdownTimeout,
		cors:            cfg.CORS,

		// Session
		jwtMgr:        cfg.JWTManager,
		sessionUserID: cfg.SessionUserID,
		wsConfig:      cfg.WebSocket,

		// Sync core
		scheme:      cfg.Scheme,
		channels:    cfg.Channels,
		reconcileUC: cfg.Reconcile,
		visSource:   cfg.VisibilitySource,
		visReporter: cfg.VisibilityReporter,
		hub:         cfg.Hub,

		// Push transport
		subscriber: cfg.Subscriber,
		redis:      cfg.Redis,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if s.sessionUserID == "" {
		return errors.New("session user id is required")
	}
	if s.scheme == nil {
		return errors.New("channel scheme is required")
	}
	if s.reconcileUC == nil {
		return errors.New("reconcile use case is required")
	}
	if s.visSource == nil || s.visReporter == nil {
		return errors.New("visibility source and reporter are required")
	}
	if s.hub == nil {
		return errors.New("surface hub is required")
	}

	return nil
}
