package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	// FilePath is used when Output is "file" or "both".
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sedash.log"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// StoreConfig contains the observation store configuration.
type StoreConfig struct {
	// Path is the SQLite database file; ":memory:" runs fully in memory.
	Path string `yaml:"path" envconfig:"PATH" default:"data/sedash.db"`
}

// AnalyticsConfig bounds the analytics surfaces exposed over HTTP.
type AnalyticsConfig struct {
	// MaxHorizon caps the forecast horizon a request may ask for.
	MaxHorizon int `yaml:"max_horizon" envconfig:"MAX_HORIZON" default:"25"`
	// BatchConcurrency caps concurrent series evaluations in one batch
	// summary request.
	BatchConcurrency int `yaml:"batch_concurrency" envconfig:"BATCH_CONCURRENCY" default:"8"`
}

// Load loads configuration from environment variables, overlaid on an
// optional YAML file named by SEDASH_CONFIG (default config.yaml when the
// file exists). Environment values take precedence.
func Load() (*Config, error) {
	var cfg Config

	configFile := os.Getenv("SEDASH_CONFIG")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("SEDASH", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero values that envconfig leaves untouched when a
// YAML file provided a partial config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = "logs/sedash.log"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/sedash.db"
	}
	if cfg.Analytics.MaxHorizon == 0 {
		cfg.Analytics.MaxHorizon = 25
	}
	if cfg.Analytics.BatchConcurrency == 0 {
		cfg.Analytics.BatchConcurrency = 8
	}
	if cfg.Security.RateLimit.RPS == 0 {
		cfg.Security.RateLimit.RPS = 100
	}
	if cfg.Security.RateLimit.Burst == 0 {
		cfg.Security.RateLimit.Burst = 50
	}
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Analytics.MaxHorizon < 1 {
		return fmt.Errorf("invalid max forecast horizon: %d", c.Analytics.MaxHorizon)
	}
	if c.Analytics.BatchConcurrency < 1 {
		return fmt.Errorf("invalid batch concurrency: %d", c.Analytics.BatchConcurrency)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}

	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
