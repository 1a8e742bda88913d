package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sitecanvas/internal/logging"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/persistence"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/aretw0/sitecanvas/pkg/templates"
)

// DefaultLockTTL bounds how long a crashed replica can hold a document.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// document is an open document: its editor and the writer persisting it.
type document struct {
	editor *editor.Editor
	bridge *persistence.Bridge
}

// Manager orchestrates document access, ensuring a single writer per key.
// It uses Reference Counting to garbage collect unused locks.
//
// Open documents stay in memory. Commands build on the in-memory state and
// hand every change to a background writer, so a store that rejects writes
// costs durability, not edits. With a distributed locker the store is
// authoritative instead: each command reloads the document and waits for its
// write before releasing the lock.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex            // Global lock for the maps
	locks map[string]*lockEntry // Map of active locks
	docs  map[string]*document  // Open documents

	locker     ports.DistributedLocker // Optional distributed locker
	lockTTL    time.Duration
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	editorOpts []editor.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks forwards commit and persistence events of every document.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithEditorOptions adds options to every editor the manager creates.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a new Manager over the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		docs:    make(map[string]*document),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// Load returns the state of an existing document.
// Keys that were never stored return domain.ErrStateNotFound.
func (m *Manager) Load(ctx context.Context, key string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		doc, err := m.open(ctx, key, false)
		if err != nil {
			return err
		}
		state = doc.editor.State()
		return nil
	})
	return state, err
}

// LoadOrStart returns the document state, creating and storing the default
// document when the key is unknown. An unreadable record also starts the
// default document, without overwriting the record until the first change.
func (m *Manager) LoadOrStart(ctx context.Context, key string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		doc, err := m.open(ctx, key, true)
		if err != nil {
			return err
		}
		state = doc.editor.State()
		return nil
	})
	return state, err
}

// open returns the open document under key, restoring it from the store
// first when needed. The caller holds the key lock.
func (m *Manager) open(ctx context.Context, key string, create bool) (*document, error) {
	m.mu.Lock()
	doc := m.docs[key]
	m.mu.Unlock()

	// Unpersisted edits win over whatever the store still holds.
	if doc != nil && (m.locker == nil || doc.bridge.Err() != nil) {
		return doc, nil
	}

	bridge := m.newBridge(key)
	if doc != nil {
		bridge = doc.bridge
	}
	st, err := bridge.Restore(ctx)
	missing := errors.Is(err, domain.ErrStateNotFound)
	switch {
	case missing && !create:
		if doc != nil {
			_ = m.evict(ctx, key)
		}
		return nil, err
	case err != nil && !missing && doc != nil:
		return doc, nil
	}

	if st == nil {
		st = domain.NewState(templates.Default(nil))
	}
	ed := editor.New(st, m.editorOptions(bridge)...)
	if missing {
		// Persist immediately to reserve the key
		bridge.Save(ctx, ed.State())
		m.logger.Info("document created", "key", key)
	} else if err != nil {
		m.logger.Warn("stored document unusable, starting fresh", "key", key, "err", err)
	}

	if doc == nil {
		doc = &document{bridge: bridge}
		bridge.Start()
		m.mu.Lock()
		m.docs[key] = doc
		m.mu.Unlock()
	}
	doc.editor = ed
	return doc, nil
}

func (m *Manager) newBridge(key string) *persistence.Bridge {
	return persistence.New(m.store,
		persistence.WithKey(key),
		persistence.WithLogger(m.logger),
		persistence.WithLifecycleHooks(m.hooks),
	)
}

func (m *Manager) editorOptions(bridge *persistence.Bridge) []editor.Option {
	return append([]editor.Option{
		editor.WithBridge(bridge),
		editor.WithLogger(m.logger),
		editor.WithLifecycleHooks(m.hooks),
	}, m.editorOpts...)
}

// evict closes the writer of an open document after its pending write and
// forgets the document.
func (m *Manager) evict(ctx context.Context, key string) error {
	m.mu.Lock()
	doc := m.docs[key]
	delete(m.docs, key)
	m.mu.Unlock()

	if doc == nil {
		return nil
	}
	return doc.bridge.Close(ctx)
}

// Apply runs one command against the document under its lock and returns
// the committed state with the change it made (nil when nothing changed).
// Unknown keys start from the default document. The write is queued, not
// awaited, unless a distributed locker is configured.
func (m *Manager) Apply(ctx context.Context, key string, cmd editor.Command) (*domain.State, *domain.StateDiff, error) {
	var (
		state *domain.State
		diff  *domain.StateDiff
	)
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		doc, err := m.open(ctx, key, true)
		if err != nil {
			return err
		}

		old := doc.editor.State()
		if err := doc.editor.Dispatch(ctx, cmd); err != nil {
			return err
		}
		if m.locker != nil {
			// Other replicas read the store once the lock is released.
			if err := doc.bridge.Flush(ctx); err != nil {
				m.logger.Warn("write still pending at unlock", "key", key, "err", err)
			}
		}

		state = doc.editor.State()
		diff = domain.Diff(key, old, state)
		return nil
	})
	return state, diff, err
}

// Save persists the document state and makes it the open state.
func (m *Manager) Save(ctx context.Context, key string, state *domain.State) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		m.mu.Lock()
		doc := m.docs[key]
		m.mu.Unlock()

		// A queued write must not land on top of this one.
		if doc != nil {
			if err := doc.bridge.Flush(ctx); err != nil {
				return err
			}
		}
		if err := m.store.Save(ctx, key, state); err != nil {
			return err
		}
		if doc != nil {
			doc.editor = editor.New(state, m.editorOptions(doc.bridge)...)
		}
		return nil
	})
}

// Delete closes the document and removes it from the store.
func (m *Manager) Delete(ctx context.Context, key string) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		if err := m.evict(ctx, key); err != nil {
			return err
		}
		return m.store.Delete(ctx, key)
	})
}

// Close waits for the pending write of every open document and stops the
// writers. Later calls reopen documents from the store.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	keys := make([]string, 0, len(m.docs))
	for key := range m.docs {
		keys = append(keys, key)
	}
	m.mu.Unlock()

	var errs []error
	for _, key := range keys {
		entry := m.acquire(key)
		entry.mu.Lock()
		if err := m.evict(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("document %q: %w", key, err))
		}
		entry.mu.Unlock()
		m.release(key)
	}
	return errors.Join(errs...)
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
