package persistence

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sitecanvas/internal/logging"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
)

// DefaultKey is the well-known storage key of the single-page editor.
const DefaultKey = "builder-state"

// DefaultWriteTimeout bounds one background write.
const DefaultWriteTimeout = 5 * time.Second

// Bridge loads and saves editor state under one key.
type Bridge struct {
	store        ports.StateStore
	key          string
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	writeTimeout time.Duration

	mu       sync.Mutex
	pending  *domain.State
	enqueued uint64
	written  uint64
	progress chan struct{}
	lastErr  error
	running  bool
	wake     chan struct{}
	quit     chan struct{}
	done     chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(b *Bridge) {
		b.key = key
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithLifecycleHooks registers a callback for persistence failures.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bridge) {
		b.hooks = hooks
	}
}

// WithWriteTimeout bounds each background write.
func WithWriteTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		b.writeTimeout = d
	}
}

// New creates a bridge over store.
func New(store ports.StateStore, opts ...Option) *Bridge {
	b := &Bridge{
		store:        store,
		key:          DefaultKey,
		writeTimeout: DefaultWriteTimeout,
		progress:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	b.logger = b.logger.With("key", b.key)
	return b
}

// Key returns the storage key.
func (b *Bridge) Key() string {
	return b.key
}

// Restore reads the stored state. A miss returns domain.ErrStateNotFound.
// Every other failure (a store error, an undecodable record or a record
// written by a newer schema) is logged before it is returned.
func (b *Bridge) Restore(ctx context.Context) (*domain.State, error) {
	st, err := b.store.Load(ctx, b.key)
	if errors.Is(err, domain.ErrStateNotFound) {
		b.logger.Info("no saved state, starting fresh")
		return nil, err
	}
	if err != nil {
		b.fail(ctx, "load", err)
		return nil, err
	}

	st, err = Migrate(st)
	if err != nil {
		b.fail(ctx, "load", err)
		return nil, err
	}
	return st, nil
}

// Load reads the stored state. It reports false when nothing usable is
// stored.
func (b *Bridge) Load(ctx context.Context) (*domain.State, bool) {
	st, err := b.Restore(ctx)
	return st, err == nil
}

// Save writes state synchronously. Failures are logged, never returned.
func (b *Bridge) Save(ctx context.Context, state *domain.State) {
	if state == nil {
		return
	}
	err := b.store.Save(ctx, b.key, state)

	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()

	if err != nil {
		b.fail(ctx, "save", err)
	}
}

// Err returns the failure of the latest write, or nil once a write succeeds.
// While it is set, storage is behind the state the editor holds.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Start launches the background writer. Until Start is called, or after
// Close, Enqueue writes synchronously.
func (b *Bridge) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return
	}
	b.running = true
	b.wake = make(chan struct{}, 1)
	b.quit = make(chan struct{})
	b.done = make(chan struct{})
	go b.loop(b.wake, b.quit, b.done)
}

// Enqueue hands a snapshot to the writer without blocking. The bridge takes
// ownership of state; callers pass a copy they no longer mutate.
func (b *Bridge) Enqueue(state *domain.State) {
	if state == nil {
		return
	}
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		b.Save(context.Background(), state)
		return
	}
	b.pending = state
	b.enqueued++
	wake := b.wake
	b.mu.Unlock()

	select {
	case wake <- struct{}{}:
	default:
	}
}

// Flush waits until the latest enqueued snapshot has been written (or has
// failed and been logged).
func (b *Bridge) Flush(ctx context.Context) error {
	b.mu.Lock()
	target := b.enqueued
	b.mu.Unlock()

	for {
		b.mu.Lock()
		if b.written >= target || !b.running {
			b.mu.Unlock()
			return nil
		}
		ch := b.progress
		b.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close flushes pending writes and stops the writer.
func (b *Bridge) Close(ctx context.Context) error {
	if err := b.Flush(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = false
	quit, done := b.quit, b.done
	b.mu.Unlock()

	close(quit)
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge) loop(wake <-chan struct{}, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-wake:
			b.drain()
		case <-quit:
			b.drain()
			return
		}
	}
}

func (b *Bridge) drain() {
	b.mu.Lock()
	state, seq := b.pending, b.enqueued
	b.pending = nil
	b.mu.Unlock()

	if state != nil {
		ctx, cancel := context.WithTimeout(context.Background(), b.writeTimeout)
		b.Save(ctx, state)
		cancel()
	}

	b.mu.Lock()
	if seq > b.written {
		b.written = seq
	}
	close(b.progress)
	b.progress = make(chan struct{})
	b.mu.Unlock()
}

func (b *Bridge) fail(ctx context.Context, op string, err error) {
	b.logger.Warn("persistence failed, continuing in memory", "op", op, "err", err)
	if b.hooks.OnPersistError != nil {
		b.hooks.OnPersistError(ctx, &domain.PersistErrorEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventPersistError,
				Key:       b.key,
			},
			Op:  op,
			Err: err,
		})
	}
}
