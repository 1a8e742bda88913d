package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "builder-state", cfg.Store.Key)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecanvas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
store:
  backend: redis
redis:
  addr: cache:6379
  ttl: 24h
  db: 2
http:
  port: "9000"
`), 0644))

	t.Setenv("SITECANVAS_REDIS_PREFIX", "tenant-a:")
	t.Setenv("SITECANVAS_HTTP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "tenant-a:", cfg.Redis.Prefix)
	assert.Equal(t, "9100", cfg.HTTP.Port, "env overrides the file")
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.yaml")

	original := Default()
	original.Store.Backend = BackendSQLite
	original.Store.Path = "pages.db"
	original.Privacy.Redact = true
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"bad backend", func(c *Config) { c.Store.Backend = "mongo" }, "invalid store backend"},
		{"file without path", func(c *Config) { c.Store.Path = "" }, "store.path is required"},
		{"memory without path", func(c *Config) { c.Store.Backend = BackendMemory; c.Store.Path = "" }, ""},
		{"empty key", func(c *Config) { c.Store.Key = "" }, "store.key is required"},
		{"redis without addr", func(c *Config) { c.Store.Backend = BackendRedis; c.Redis.Addr = "" }, "redis.addr is required"},
		{"negative ttl", func(c *Config) { c.Redis.TTL = -time.Second }, "redis.ttl"},
		{"short key", func(c *Config) { c.Encryption.Key = "abcd" }, "32 bytes"},
		{"non hex key", func(c *Config) { c.Encryption.Key = strings.Repeat("z", 64) }, "not hex"},
		{"fallback alone", func(c *Config) { c.Encryption.Fallback = []string{testKey} }, "requires encryption.key"},
		{"valid key", func(c *Config) { c.Encryption.Key = testKey }, ""},
		{"bad pattern", func(c *Config) { c.Privacy.Patterns = []string{"("} }, "invalid privacy pattern"},
		{"no port", func(c *Config) { c.HTTP.Port = "" }, "http.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncryptionKeys(t *testing.T) {
	cfg := Default()
	active, fallback, err := cfg.EncryptionKeys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)

	cfg.Encryption.Key = testKey
	cfg.Encryption.Fallback = []string{strings.ToUpper(testKey)}
	active, fallback, err = cfg.EncryptionKeys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	require.Len(t, fallback, 1)
	assert.Equal(t, active, fallback[0])
}
