package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the state store backend.
type StoreConfig struct {
	Backend      string `yaml:"backend" mapstructure:"backend"`
	SQLitePath   string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	PostgresURL  string `yaml:"postgres_url" mapstructure:"postgres_url"`
	PoolMaxConns int32  `yaml:"pool_max_conns" mapstructure:"pool_max_conns"`
	PoolMinConns int32  `yaml:"pool_min_conns" mapstructure:"pool_min_conns"`
}

// ResolverConfig configures the province resolution chain. Providers are
// tried in the listed order.
type ResolverConfig struct {
	Providers []string        `yaml:"providers" mapstructure:"providers"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
}

// RetryConfig tunes the per-provider retry policy.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NominatimConfig holds Nominatim reverse geocoding settings.
type NominatimConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheConfig configures the resolution cache.
type CacheConfig struct {
	Backend  string      `yaml:"backend" mapstructure:"backend"`
	TTLHours int         `yaml:"ttl_hours" mapstructure:"ttl_hours"`
	Redis    RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr        string   `yaml:"addr" mapstructure:"addr"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.sqlite_path", "thai-map.db")
	v.SetDefault("store.pool_max_conns", 10)
	v.SetDefault("store.pool_min_conns", 2)
	v.SetDefault("resolver.providers", []string{"anthropic", "nominatim", "static"})
	v.SetDefault("resolver.anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("resolver.anthropic.max_tokens", 2048)
	v.SetDefault("resolver.nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("resolver.nominatim.user_agent", "thai-map/1.0")
	v.SetDefault("resolver.nominatim.rate_limit", 1.0)
	v.SetDefault("resolver.nominatim.concurrency", 2)
	v.SetDefault("resolver.cache.backend", "store")
	v.SetDefault("resolver.cache.ttl_hours", 0)
	v.SetDefault("resolver.retry.max_attempts", 2)
	v.SetDefault("resolver.retry.initial_backoff_ms", 500)
	v.SetDefault("resolver.retry.max_backoff_ms", 5000)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".thai-map"))
	}

	// Environment
	v.SetEnvPrefix("THAIMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Default returns the built-in defaults, ignoring any config file and
// environment overrides.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal defaults")
	}

	return &cfg, nil
}

// Validate checks the keys required by the given mode. Mode is "cli" for
// commands that only touch the store, "resolve" for commands that resolve
// provinces, and "serve" for the HTTP server.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Backend {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			problems = append(problems, "store.sqlite_path is required")
		}
	case "postgres":
		if c.Store.PostgresURL == "" {
			problems = append(problems, "store.postgres_url is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("store.backend must be sqlite or postgres, got %q", c.Store.Backend))
	}

	switch mode {
	case "cli":
	case "resolve":
		problems = append(problems, c.resolverProblems()...)
	case "serve":
		if c.Server.Addr == "" {
			problems = append(problems, "server.addr is required")
		}
		problems = append(problems, c.resolverProblems()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) == 0 {
		return nil
	}
	return eris.Errorf("config: %s", strings.Join(problems, "; "))
}

func (c *Config) resolverProblems() []string {
	var problems []string

	if len(c.Resolver.Providers) == 0 {
		problems = append(problems, "resolver.providers must list at least one provider")
	}
	for _, name := range c.Resolver.Providers {
		switch name {
		case "anthropic", "nominatim", "static":
		default:
			problems = append(problems, fmt.Sprintf("resolver.providers: unknown provider %q", name))
		}
	}

	switch c.Resolver.Cache.Backend {
	case "store", "none":
	case "redis":
		if c.Resolver.Cache.Redis.Addr == "" {
			problems = append(problems, "resolver.cache.redis.addr is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("resolver.cache.backend must be store, redis, or none, got %q", c.Resolver.Cache.Backend))
	}

	return problems
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
