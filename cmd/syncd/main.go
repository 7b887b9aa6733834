package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HaokunYang123/routine-craft-bot-sub002/config"
	configRedis "github.com/HaokunYang123/routine-craft-bot-sub002/config/redis"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/httpserver"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/middleware"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/preset"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/querycache"
	reconcileUC "github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile/usecase"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface"
	surfaceHTTP "github.com/HaokunYang123/routine-craft-bot-sub002/internal/surface/delivery/http"
	transportRedis "github.com/HaokunYang123/routine-craft-bot-sub002/internal/transport/redis"
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/scope"
)

// @title       Realtime Sync Agent
// @description Keeps a dashboard session's views current through scoped push channels and visibility-triggered reconciliation
// @version     1.0
// @host        localhost:8090
// @schemes     http ws
// @BasePath    /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		Service:      "syncd",
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "Sync agent stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Sync agent stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting realtime sync agent...")

	// JWT Manager, then the session the agent serves
	jwtMgr, err := jwt.New(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		TTL:       cfg.JWT.TTL,
	})
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}
	claims, err := jwtMgr.Verify(cfg.Session.Token)
	if err != nil {
		return fmt.Errorf("session token: %w", err)
	}
	sc, err := scope.NewScope(claims)
	if err != nil {
		return fmt.Errorf("session scope: %w", err)
	}
	ctx = logger.With(ctx, "user_id", sc.UserID, "role", string(sc.Role))

	// Channel names for this session, recomputed on every start
	scheme := channel.DefaultScheme()
	names, err := scheme.ForScope(sc)
	if err != nil {
		return fmt.Errorf("derive channels: %w", err)
	}
	logger.Infof(ctx, "Derived %d push channels: %v", len(names), names)

	// Visibility source
	emitter := visibility.NewEmitter(logger, visibility.Visible)
	go emitter.Run()
	defer func() {
		if err := emitter.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Errorf(ctx, "Visibility emitter shutdown error: %v", err)
		}
	}()
	if cfg.Server.SignalVisibility {
		go visibility.WatchSignals(ctx, emitter, logger)
	}

	// Reference cache layer
	fetcher, err := querycache.NewHTTPFetcher(logger, querycache.HTTPConfig{
		BaseURL:      cfg.QueryAPI.BaseURL,
		Token:        cfg.Session.Token,
		RetryMax:     cfg.QueryAPI.RetryMax,
		RetryWaitMin: cfg.QueryAPI.RetryWaitMin,
		RetryWaitMax: cfg.QueryAPI.RetryWaitMax,
		Timeout:      cfg.QueryAPI.Timeout,
	})
	if err != nil {
		return fmt.Errorf("query fetcher: %w", err)
	}
	cache, err := querycache.New(logger, fetcher, querycache.Config{
		MaxEntries:     cfg.Cache.MaxEntries,
		RefetchTimeout: cfg.Cache.RefetchTimeout,
	})
	if err != nil {
		return fmt.Errorf("query cache: %w", err)
	}
	defer cache.Close()

	// Reconciliation trigger
	uc := reconcileUC.New(logger, emitter, cache)

	// Presets (optional)
	var presets surface.Presets
	if cfg.Preset.Path != "" {
		registry, err := preset.Load(logger, cfg.Preset.Path)
		if err != nil {
			return fmt.Errorf("presets: %w", err)
		}
		presets = registry
		logger.Infof(ctx, "Loaded presets %v from %s", registry.Names(), cfg.Preset.Path)
		if cfg.Preset.Watch {
			go func() {
				if err := registry.Watch(ctx); err != nil {
					logger.Warnf(ctx, "Preset watcher stopped: %v", err)
				}
			}()
		}
	}

	// Surface hub
	hub := surface.NewHub(logger, surface.Config{
		MaxConnections: cfg.WebSocket.MaxConnections,
		PongWait:       cfg.WebSocket.PongWait,
		PingPeriod:     cfg.WebSocket.PingInterval,
		WriteWait:      cfg.WebSocket.WriteWait,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		SendBuffer:     cfg.WebSocket.SendBuffer,
	}, uc, emitter, cache, presets)

	// Redis push transport; the agent keeps running without it
	srvCfg := httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORS:            corsConfig(cfg.CORS),

		JWTManager:    jwtMgr,
		SessionUserID: sc.UserID,
		WebSocket: surfaceHTTP.WSConfig{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			AllowedOrigins:  cfg.CORS.AllowedOrigins,
			AttachRateLimit: cfg.WebSocket.AttachRateLimit,
			AttachWindow:    cfg.WebSocket.AttachWindow,
		},

		Scheme:             scheme,
		Channels:           names,
		Reconcile:          uc,
		VisibilitySource:   emitter,
		VisibilityReporter: emitter,
		Hub:                hub,
	}

	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	switch {
	case redisClient == nil:
		logger.Warnf(ctx, "Redis disabled: %v", err)
	default:
		if err != nil {
			logger.Warnf(ctx, "Redis not reachable yet, subscriber will keep retrying: %v", err)
		}
		defer redisClient.Close()
		srvCfg.Redis = redisClient
		srvCfg.Subscriber = transportRedis.NewSubscriber(redisClient, scheme, cache, logger)
	}

	srv, err := httpserver.New(logger, srvCfg)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return srv.Run(ctx)
}

func corsConfig(cfg config.CORSConfig) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		c.AllowedOrigins = cfg.AllowedOrigins
	}
	return c
}
