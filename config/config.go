package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Environment EnvironmentConfig
	Server      ServerConfig
	Logger      LoggerConfig

	// Push transport
	Redis RedisConfig

	// Authentication & session identity
	JWT     JWTConfig
	Session SessionConfig

	// Surface bridge
	WebSocket WebSocketConfig
	CORS      CORSConfig

	// Reference cache layer
	QueryAPI QueryAPIConfig
	Cache    CacheConfig

	Preset PresetConfig
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// ServerConfig is the configuration for the agent HTTP server
type ServerConfig struct {
	Host            string        `env:"SYNC_HOST" envDefault:"127.0.0.1"`
	Port            int           `env:"SYNC_PORT" envDefault:"8090"`
	Mode            string        `env:"SYNC_MODE" envDefault:"release"`
	ShutdownTimeout time.Duration `env:"SYNC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// SignalVisibility maps SIGCONT/SIGUSR2 and SIGUSR1 to visibility reports.
	SignalVisibility bool `env:"SYNC_SIGNAL_VISIBILITY" envDefault:"true"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// RedisConfig is the configuration for Redis
// Note: Only standalone mode is supported
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	UseTLS   bool   `env:"REDIS_USE_TLS" envDefault:"false"`

	// Connection pool settings
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"routine-craft"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"2h"`
}

// SessionConfig identifies the signed-in user the agent serves.
type SessionConfig struct {
	Token string `env:"SESSION_TOKEN"`
}

// WebSocketConfig is the configuration for WebSocket connections
type WebSocketConfig struct {
	PingInterval    time.Duration `env:"WS_PING_INTERVAL" envDefault:"30s"`
	PongWait        time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait       time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize  int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"4096"`
	ReadBufferSize  int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	MaxConnections  int           `env:"WS_MAX_CONNECTIONS" envDefault:"64"`
	SendBuffer      int           `env:"WS_SEND_BUFFER" envDefault:"64"`
	AttachRateLimit int           `env:"WS_ATTACH_RATE_LIMIT" envDefault:"30"`
	AttachWindow    time.Duration `env:"WS_ATTACH_WINDOW" envDefault:"1m"`
}

// CORSConfig lists the browser origins allowed to reach the agent.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
}

// QueryAPIConfig is the backend the cache refetches from.
type QueryAPIConfig struct {
	BaseURL      string        `env:"QUERY_API_BASE_URL" envDefault:"http://127.0.0.1:8080/api/v1"`
	RetryMax     int           `env:"QUERY_API_RETRY_MAX" envDefault:"3"`
	RetryWaitMin time.Duration `env:"QUERY_API_RETRY_WAIT_MIN" envDefault:"200ms"`
	RetryWaitMax time.Duration `env:"QUERY_API_RETRY_WAIT_MAX" envDefault:"5s"`
	Timeout      time.Duration `env:"QUERY_API_TIMEOUT" envDefault:"10s"`
}

// CacheConfig sizes the query cache.
type CacheConfig struct {
	MaxEntries     int64         `env:"CACHE_MAX_ENTRIES" envDefault:"4096"`
	RefetchTimeout time.Duration `env:"CACHE_REFETCH_TIMEOUT" envDefault:"15s"`
}

// PresetConfig points at the named reconciliation set file. Empty disables presets.
type PresetConfig struct {
	Path  string `env:"PRESET_PATH"`
	Watch bool   `env:"PRESET_WATCH" envDefault:"true"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	// Validate JWT
	if cfg.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return errors.New("JWT_SECRET_KEY must be at least 32 characters for security")
	}

	// Validate session
	if cfg.Session.Token == "" {
		return errors.New("SESSION_TOKEN is required")
	}

	// Validate Redis
	if cfg.Redis.Host == "" {
		return errors.New("REDIS_HOST is required")
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT %d is out of range", cfg.Redis.Port)
	}

	// Validate server
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SYNC_PORT %d is out of range", cfg.Server.Port)
	}

	if cfg.QueryAPI.BaseURL == "" {
		return errors.New("QUERY_API_BASE_URL is required")
	}

	return nil
}
