package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/internal/config"
	"github.com/aretw0/sitecanvas/internal/logging"
	"github.com/aretw0/sitecanvas/pkg/adapters/file"
	"github.com/aretw0/sitecanvas/pkg/adapters/memory"
	"github.com/aretw0/sitecanvas/pkg/adapters/redis"
	"github.com/aretw0/sitecanvas/pkg/adapters/sqlite"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/observability"
	"github.com/aretw0/sitecanvas/pkg/persistence/middleware"
	"github.com/aretw0/sitecanvas/pkg/ports"
)

// Backend is an opened state store with the resources behind it.
type Backend struct {
	Store ports.StateStore
	// Locker is set for backends shared between processes.
	Locker ports.DistributedLocker
	closer io.Closer
}

// Close releases the backend connection, if any.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// OpenBackend opens the configured store and wraps it with the privacy and
// encryption middleware. Redaction runs before sealing.
func OpenBackend(cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		b.Store = memory.NewStore()
	case config.BackendFile, "":
		b.Store = file.New(cfg.Store.Path)
	case config.BackendRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		b.Store = rs
		b.Locker = redis.NewLocker(rs.Client(), rs.Prefix())
		b.closer = rs
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		b.Store = db
		b.closer = db
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	var mws []middleware.Middleware
	if cfg.Privacy.Redact {
		patterns := cfg.Privacy.Patterns
		if len(patterns) == 0 {
			patterns = middleware.DefaultPIIPatterns
		}
		mws = append(mws, middleware.NewPIIMiddleware(patterns))
	}
	if cfg.Encryption.Key != "" {
		active, fallback, err := cfg.EncryptionKeys()
		if err != nil {
			b.Close()
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	b.Store = middleware.Chain(b.Store, mws...)

	logger.Debug("store opened",
		"backend", cfg.Store.Backend,
		"redact", cfg.Privacy.Redact,
		"encrypted", cfg.Encryption.Key != "",
	)
	return b, nil
}

// NewSite builds the document service on top of an opened backend.
func NewSite(cfg *config.Config, b *Backend, logger *slog.Logger, hooks domain.LifecycleHooks) (*sitecanvas.Site, error) {
	opts := []sitecanvas.Option{
		sitecanvas.WithStore(b.Store),
		sitecanvas.WithLogger(logger),
		sitecanvas.WithLifecycleHooks(observability.LogHooks(logger).Merge(hooks)),
	}
	if b.Locker != nil {
		opts = append(opts, sitecanvas.WithLocker(b.Locker))
	}
	if cfg.Templates.Dir != "" {
		opts = append(opts, sitecanvas.WithTemplateDir(cfg.Templates.Dir))
	}

	var editorOpts []editor.Option
	if cfg.Editor.SkipNoopHistory {
		editorOpts = append(editorOpts, editor.WithSkipNoopHistory())
	}
	if cfg.Editor.DeselectAncestorOnly {
		editorOpts = append(editorOpts, editor.WithDeselectAncestorOnly())
	}
	if len(editorOpts) > 0 {
		opts = append(opts, sitecanvas.WithEditorOptions(editorOpts...))
	}
	return sitecanvas.New(opts...)
}

// NewLogger configures the application logger from the config.
// Output goes to Stderr to keep Stdout for pages and protocol traffic.
func NewLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, cfg.Format), nil
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrStateNotFound)
}
