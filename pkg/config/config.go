// Package config loads tlds settings from TOML or YAML files.
//
// Files are optional. Missing keys keep their [Default] values, so a file
// only needs the settings it changes:
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache:6379"
//	ttl = "6h"
package config

import (
	stdErrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/factsmission/tlds/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

var backends = []string{BackendFile, BackendRedis, BackendNone}

// Config is the complete tlds configuration.
type Config struct {
	Render RenderConfig `toml:"render" yaml:"render"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// RenderConfig holds serializer defaults.
type RenderConfig struct {
	// Format is the media type used when none is requested.
	Format string `toml:"format" yaml:"format"`
	// Raw disables HTML escaping in RDFa output.
	Raw bool `toml:"raw" yaml:"raw"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	// Dir is the file cache root; empty means the XDG cache directory.
	Dir       string        `toml:"dir" yaml:"dir"`
	TTL       time.Duration `toml:"ttl" yaml:"ttl"`
	RedisAddr string        `toml:"redis_addr" yaml:"redis_addr"`
	// KeyPrefix namespaces keys in a shared Redis.
	KeyPrefix string `toml:"key_prefix" yaml:"key_prefix"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	// MaxBodyBytes caps uploaded graph documents.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Format: "text/html",
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
			KeyPrefix: "tlds:",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 10 << 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tlds/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tlds", "config.toml")
}

// Load reads the file at path over [Default] and validates the result.
// An empty path tries [DefaultPath] and returns defaults when that file does
// not exist. The format is chosen by extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stdErrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config")
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown config format %q (use .toml, .yaml or .yml)", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := errors.NormalizeMediaType(c.Render.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.format")
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.backend must be one of %s, got %q", strings.Join(backends, ", "), c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be positive")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}
