// Package config provides configuration types, loading, and validation for
// Burrow binaries.
//
// Configuration is read from a YAML file. Every field has a working default,
// so an empty path or empty file yields a runnable configuration.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath is the environment variable consulted when no -config flag
// is given.
const EnvConfigPath = "BURROW_CONFIG"

// ResolverConfig contains resolution engine settings.
type ResolverConfig struct {
	RootServer string `yaml:"root_server"`
	MaxHops    int    `yaml:"max_hops"`
	Timeout    string `yaml:"timeout"` // per-exchange receive timeout, e.g. "5s"
	RecvSize   int    `yaml:"recv_size"`

	// Optional kernel socket buffer sizes in bytes. Zero leaves the
	// system defaults in place.
	RecvBufferBytes int `yaml:"recv_buffer_bytes"`
	SendBufferBytes int `yaml:"send_buffer_bytes"`

	// Derived in Validate.
	RootIP        net.IP        `yaml:"-"`
	TimeoutParsed time.Duration `yaml:"-"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is a secret and must not be echoed back by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// HistoryConfig contains resolution history persistence settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string            `yaml:"level"`
	Format     string            `yaml:"format"`
	IncludePID bool              `yaml:"include_pid"`
	Fields     map[string]string `yaml:"fields,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	API      APIConfig      `yaml:"api"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Resolver: ResolverConfig{
			RootServer: "198.41.0.4",
			MaxHops:    30,
			Timeout:    "5s",
			RecvSize:   1024,
		},
		API: APIConfig{
			Enabled: false,
			Host:    "0.0.0.0",
			Port:    8080,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "burrow-history.db",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// ResolveConfigPath decides which configuration file to use: an explicit
// flag value wins, then the BURROW_CONFIG environment variable, then none.
func ResolveConfigPath(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the configuration at path, applies defaults for missing
// fields, and validates the result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration, deriving the parsed
// root address and timeout.
func (cfg *Config) Validate() error {
	// Resolver
	if cfg.Resolver.RootServer == "" {
		cfg.Resolver.RootServer = "198.41.0.4"
	}
	ip := net.ParseIP(cfg.Resolver.RootServer)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("resolver.root_server must be an IPv4 address, got %q", cfg.Resolver.RootServer)
	}
	cfg.Resolver.RootIP = ip

	if cfg.Resolver.MaxHops <= 0 {
		cfg.Resolver.MaxHops = 30
	}
	if cfg.Resolver.Timeout == "" {
		cfg.Resolver.Timeout = "5s"
	}
	d, err := time.ParseDuration(cfg.Resolver.Timeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("resolver.timeout must be a positive duration, got %q", cfg.Resolver.Timeout)
	}
	cfg.Resolver.TimeoutParsed = d

	if cfg.Resolver.RecvSize <= 0 {
		cfg.Resolver.RecvSize = 1024
	}
	if cfg.Resolver.RecvBufferBytes < 0 || cfg.Resolver.SendBufferBytes < 0 {
		return errors.New("resolver socket buffer sizes must not be negative")
	}

	// API
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	// History
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return errors.New("history.path must be set when history is enabled")
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Fields == nil {
		cfg.Logging.Fields = map[string]string{}
	}

	return nil
}
