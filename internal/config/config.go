package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `json:"env"`
	Storage  StorageDriver  `json:"storage"`
	Http     HttpConfig     `json:"http"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
	Auth     AuthConfig     `json:"auth"`
	Notify   NotifyConfig   `json:"notify"`
	Escort   EscortConfig   `json:"escort"`
}

// StorageDriver selects the repository backend. The memory driver also runs
// without Redis, so campus data is uncached and notifications are dropped.
type StorageDriver string

const (
	StoragePostgres StorageDriver = "postgres"
	StorageMemory   StorageDriver = "memory"
)

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// URL renders the connection settings in URL form, which both pgxpool and
// golang-migrate accept.
func (p PostgresConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + p.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`

	CacheTTL time.Duration `json:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret    string        `json:"-"`
	TokenTTL     time.Duration `json:"token_ttl"`
	CampusDomain string        `json:"campus_domain"`
}

type NotifyConfig struct {
	WebhookURL string `json:"webhook_url"`
	Disabled   bool   `json:"disabled"`
	QueueKey   string `json:"queue_key"`
	QueueMax   int64  `json:"queue_max"`
}

type EscortConfig struct {
	AssignAfter      time.Duration `json:"assign_after"`
	DispatchInterval time.Duration `json:"dispatch_interval"`
}

func Load() (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env:     getEnv("ENV", "local"),
		Storage: StorageDriver(getEnv("STORAGE_DRIVER", string(StoragePostgres))),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "acadia_safe"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		APIKey: getEnv("API_KEY", "super-secret-key"),
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "acadia-safe-secret-key-2024"),
			TokenTTL:     getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
			CampusDomain: getEnv("CAMPUS_EMAIL_DOMAIN", "acadiau.ca"),
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			Disabled:   getEnvBool("NOTIFY_DISABLED", false),
			QueueKey:   getEnv("NOTIFY_QUEUE_KEY", "notifications:queue"),
			QueueMax:   int64(getEnvInt("NOTIFY_QUEUE_MAX", 10000)),
		},
		Escort: EscortConfig{
			AssignAfter:      getEnvDuration("ESCORT_ASSIGN_AFTER", 5*time.Second),
			DispatchInterval: getEnvDuration("ESCORT_DISPATCH_INTERVAL", 2*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("storage", string(cfg.Storage)),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("notify_disabled", cfg.Notify.Disabled))

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}
	switch c.Storage {
	case StoragePostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage)
	}
	if c.APIKey == "" {
		return errors.New("API_KEY is empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 bytes")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Escort.DispatchInterval <= 0 {
		return errors.New("ESCORT_DISPATCH_INTERVAL must be positive")
	}
	if !c.Notify.Disabled && c.Notify.WebhookURL == "" {
		c.Notify.Disabled = true
	}
	return nil
}

type EscortStrategy string

const (
	EscortPoll     EscortStrategy = "poll"
	EscortSimulate EscortStrategy = "simulate"
)

// ClientConfig drives the acadia CLI and the client core.
type ClientConfig struct {
	BaseURL             string         `json:"base_url"`
	Home                string         `json:"home"`
	Timeout             time.Duration  `json:"timeout"`
	RequireContactPhone bool           `json:"require_contact_phone"`
	EscortStrategy      EscortStrategy `json:"escort_strategy"`
	PollInterval        time.Duration  `json:"poll_interval"`
	AssignDelay         time.Duration  `json:"assign_delay"`
}

func LoadClient() (*ClientConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	home := getEnv("ACADIA_HOME", "")
	if home == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		home = dir + string(os.PathSeparator) + "acadia-safe"
	}

	cfg := &ClientConfig{
		BaseURL:             strings.TrimRight(getEnv("ACADIA_API_URL", "http://localhost:8080"), "/"),
		Home:                home,
		Timeout:             getEnvDuration("ACADIA_HTTP_TIMEOUT", 15*time.Second),
		RequireContactPhone: getEnvBool("ACADIA_REQUIRE_CONTACT_PHONE", false),
		EscortStrategy:      EscortStrategy(getEnv("ACADIA_ESCORT_STRATEGY", string(EscortPoll))),
		PollInterval:        getEnvDuration("ACADIA_POLL_INTERVAL", 3*time.Second),
		AssignDelay:         getEnvDuration("ACADIA_ASSIGN_DELAY", 5*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ACADIA_API_URL %q is not an absolute URL", c.BaseURL)
	}
	switch c.EscortStrategy {
	case EscortPoll, EscortSimulate:
	default:
		return fmt.Errorf("ACADIA_ESCORT_STRATEGY must be poll or simulate, got %q", c.EscortStrategy)
	}
	if c.PollInterval <= 0 || c.AssignDelay <= 0 || c.Timeout <= 0 {
		return errors.New("client intervals and timeout must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
