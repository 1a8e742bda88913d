// Package config loads sitecanvas settings from a YAML file with
// SITECANVAS_* environment overrides.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/sitecanvas/internal/logging"
	"github.com/aretw0/sitecanvas/pkg/persistence"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
// SITECANVAS_STORE_BACKEND sets store.backend.
const EnvPrefix = "SITECANVAS_"

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "sitecanvas.yaml"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    filepath.Join(".sitecanvas", "documents"),
			Key:     persistence.DefaultKey,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "sitecanvas:document:",
		},
		HTTP: HTTPConfig{
			Port:    "8080",
			Origins: []string{"*"},
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SITECANVAS_*). A missing file is not an
// error; the defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// SITECANVAS_REDIS_ADDR -> redis.addr
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validBackends = map[Backend]bool{
	BackendMemory: true,
	BackendFile:   true,
	BackendRedis:  true,
	BackendSQLite: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}

	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend %q: must be one of memory, file, redis, sqlite", c.Store.Backend)
	}
	if (c.Store.Backend == BackendFile || c.Store.Backend == BackendSQLite) && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("store.key is required")
	}

	if c.Store.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis backend")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must be non-negative")
	}

	if _, _, err := c.EncryptionKeys(); err != nil {
		return err
	}
	for _, p := range c.Privacy.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid privacy pattern %q: %w", p, err)
		}
	}

	if c.HTTP.Port == "" {
		return fmt.Errorf("http.port is required")
	}
	return nil
}

// EncryptionKeys decodes the active and fallback keys.
// A nil active key means encryption is disabled.
func (c *Config) EncryptionKeys() (active []byte, fallback [][]byte, err error) {
	if c.Encryption.Key == "" {
		if len(c.Encryption.Fallback) > 0 {
			return nil, nil, fmt.Errorf("encryption.fallback requires encryption.key")
		}
		return nil, nil, nil
	}

	decode := func(name, s string) ([]byte, error) {
		key, err := hex.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%s is not hex: %w", name, err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("%s must be 32 bytes (64 hex characters), got %d bytes", name, len(key))
		}
		return key, nil
	}

	active, err = decode("encryption.key", c.Encryption.Key)
	if err != nil {
		return nil, nil, err
	}
	for i, s := range c.Encryption.Fallback {
		key, err := decode(fmt.Sprintf("encryption.fallback[%d]", i), s)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}
