package config

import "time"

// Backend names a state store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

// Config is the top-level sitecanvas configuration, corresponding to sitecanvas.yaml.
type Config struct {
	Log        LogConfig        `yaml:"log" koanf:"log"`
	Store      StoreConfig      `yaml:"store" koanf:"store"`
	Redis      RedisConfig      `yaml:"redis" koanf:"redis"`
	Encryption EncryptionConfig `yaml:"encryption" koanf:"encryption"`
	Privacy    PrivacyConfig    `yaml:"privacy" koanf:"privacy"`
	HTTP       HTTPConfig       `yaml:"http" koanf:"http"`
	Templates  TemplatesConfig  `yaml:"templates" koanf:"templates"`
	Editor     EditorConfig     `yaml:"editor" koanf:"editor"`
}

// LogConfig selects the log level and output format (text or json).
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// StoreConfig selects where editor states are persisted.
type StoreConfig struct {
	Backend Backend `yaml:"backend" koanf:"backend"`
	// Path is the directory of the file backend or the database file of sqlite.
	Path string `yaml:"path" koanf:"path"`
	// Key is the document key used by single-document commands.
	Key string `yaml:"key" koanf:"key"`
}

// RedisConfig holds the redis backend connection.
type RedisConfig struct {
	Addr     string        `yaml:"addr" koanf:"addr"`
	Password string        `yaml:"password" koanf:"password"`
	DB       int           `yaml:"db" koanf:"db"`
	Prefix   string        `yaml:"prefix" koanf:"prefix"`
	TTL      time.Duration `yaml:"ttl" koanf:"ttl"`
}

// EncryptionConfig enables sealing persisted states.
// Keys are hex encoded 32-byte AES keys.
type EncryptionConfig struct {
	Key      string   `yaml:"key" koanf:"key"`
	Fallback []string `yaml:"fallback,omitempty" koanf:"fallback"`
}

// PrivacyConfig enables masking contact details before they are stored.
type PrivacyConfig struct {
	Redact   bool     `yaml:"redact" koanf:"redact"`
	Patterns []string `yaml:"patterns,omitempty" koanf:"patterns"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port    string   `yaml:"port" koanf:"port"`
	Origins []string `yaml:"origins" koanf:"origins"`
}

// TemplatesConfig points at a directory of page templates.
type TemplatesConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
}

// EditorConfig switches the stricter editing behaviours.
type EditorConfig struct {
	// SkipNoopHistory keeps edits that change nothing out of the undo history.
	SkipNoopHistory bool `yaml:"skip_noop_history" koanf:"skip_noop_history"`
	// DeselectAncestorOnly keeps the selection on Delete unless the selected
	// element was removed with the subtree.
	DeselectAncestorOnly bool `yaml:"deselect_ancestor_only" koanf:"deselect_ancestor_only"`
}
