// Package config loads server configuration from the environment, with
// optional .env and YAML file support.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport names accepted by MCP_TRANSPORT.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// Config is the full server configuration.
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"`
	LogLevel  string `yaml:"log_level"`

	// Provider base URLs, overridable for testing and gov/sovereign clouds.
	AtlassianBaseURL string `yaml:"atlassian_base_url"`
	GraphBaseURL     string `yaml:"graph_base_url"`

	// Timeout applied to every upstream provider call.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

func defaults() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             8000,
		Transport:        TransportStreamableHTTP,
		LogLevel:         "INFO",
		AtlassianBaseURL: "https://api.atlassian.com",
		GraphBaseURL:     "https://graph.microsoft.com",
		HTTPTimeout:      30 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (if non-empty), then environment variables. A .env file next to the
// working directory is read first so container setups behave like local
// ones.
func Load(path string) (Config, error) {
	loadDotEnv()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Transport != TransportStdio && cfg.Transport != TransportStreamableHTTP {
		return Config{}, fmt.Errorf("unsupported transport %q (want %s or %s)", cfg.Transport, TransportStdio, TransportStreamableHTTP)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	cfg.AtlassianBaseURL = strings.TrimRight(cfg.AtlassianBaseURL, "/")
	cfg.GraphBaseURL = strings.TrimRight(cfg.GraphBaseURL, "/")
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MCP_SERVER_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("MCP_SERVER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ATLASSIAN_API_BASE_URL"); v != "" {
		c.AtlassianBaseURL = v
	}
	if v := os.Getenv("MICROSOFT_GRAPH_API_BASE_URL"); v != "" {
		c.GraphBaseURL = v
	}
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
}

// Addr returns the listen address for the HTTP transport.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured level name to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToUpper(strings.TrimSpace(c.LogLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
