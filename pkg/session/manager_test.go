package session_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/sitecanvas/pkg/adapters/file"
	"github.com/aretw0/sitecanvas/pkg/adapters/memory"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/aretw0/sitecanvas/pkg/session"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s *SlowStore) Save(ctx context.Context, key string, state *domain.State) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.Store.Save(ctx, key, state)
}

func (s *SlowStore) Load(ctx context.Context, key string) (*domain.State, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.Store.Load(ctx, key)
}

func TestManager_ApplyIsSerialized(t *testing.T) {
	store := &SlowStore{Store: memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()
	key := "race-test"

	var wg sync.WaitGroup
	writers := 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := manager.Apply(ctx, key, editor.InsertAtRoot{Element: element.New(domain.ElementHeading)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Without the per-key lock, concurrent read-modify-write cycles lose inserts.
	state, err := manager.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 3+writers, len(state.Document.Elements))
	assert.Len(t, state.History.Past, writers)
}

func TestManager_LoadOrStart(t *testing.T) {
	store := &SlowStore{Store: memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()
	key := "atomic-init"

	var wg sync.WaitGroup
	results := make([]*domain.State, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, key)
			assert.NoError(t, err)
			results[i] = state
		}(i)
	}
	wg.Wait()

	// Both callers see the same document: only one was created.
	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, results[0].Document.ID, results[1].Document.ID)
	assert.Equal(t, domain.StageRegistration, results[0].Stage)
}

func TestManager_ApplyReturnsDiff(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	state, diff, err := manager.Apply(ctx, "doc", editor.SetViewMode{Mode: domain.ViewMobile})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewMobile, state.ViewMode)
	require.NotNil(t, diff)
	require.NotNil(t, diff.ViewMode)
	assert.Equal(t, domain.ViewMobile, *diff.ViewMode)
	assert.Nil(t, diff.Document)

	_, diff, err = manager.Apply(ctx, "doc", editor.Undo{})
	require.NoError(t, err)
	assert.Nil(t, diff, "undo on empty history changes nothing")

	_, _, err = manager.Apply(ctx, "doc", editor.SetStage{Stage: domain.StagePublish})
	assert.ErrorIs(t, err, domain.ErrInvalidStageTransition)
}

func TestManager_EditorOptions(t *testing.T) {
	manager := session.NewManager(memory.NewStore(),
		session.WithEditorOptions(editor.WithFactory(element.NewFactory(element.Sequential("s")))))
	ctx := context.Background()

	state, _, err := manager.Apply(ctx, "doc", editor.InsertIntoContainer{
		ContainerID: mustFirstID(t, manager, ctx, "doc"),
		Type:        domain.ElementButton,
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", state.Selected())
	assert.True(t, tree.Contains(state.Document.Elements, "s1"))
}

func mustFirstID(t *testing.T, m *session.Manager, ctx context.Context, key string) string {
	t.Helper()
	st, err := m.LoadOrStart(ctx, key)
	require.NoError(t, err)
	return st.Document.Elements[0].ID
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("redis down")
}

type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
	lastTTL time.Duration
}

func (c *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	c.mu.Lock()
	c.locks++
	c.lastTTL = ttl
	c.mu.Unlock()
	return func(context.Context) error {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	ctx := context.Background()

	locker := &countingLocker{}
	m := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	_, _, err := m.Apply(ctx, "k", editor.Save{})
	require.NoError(t, err)
	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks)
	assert.Equal(t, time.Second, locker.lastTTL)

	m = session.NewManager(memory.NewStore(), session.WithLocker(failingLocker{}))
	_, err = m.LoadOrStart(ctx, "k")
	assert.ErrorContains(t, err, "distributed lock")
}

func TestManager_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(memory.NewStore())
	for i := 0; i < 3; i++ {
		_, err := m.LoadOrStart(ctx, fmt.Sprintf("doc-%d", i))
		require.NoError(t, err)
	}
	require.NoError(t, m.Delete(ctx, "doc-1"))

	keys, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-0", "doc-2"}, keys)

	_, err = m.Load(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestManager_CorruptRecordStartsFresh(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.json"), []byte("{not json"), 0o644))
	store := file.New(dir)
	m := session.NewManager(store)

	state, err := m.Load(ctx, "home")
	require.NoError(t, err)
	assert.NotEmpty(t, state.Document.Elements, "default document")

	state, err = m.LoadOrStart(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDesktop, state.ViewMode)

	state, _, err = m.Apply(ctx, "home", editor.SetViewMode{Mode: domain.ViewMobile})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewMobile, state.ViewMode)

	require.NoError(t, m.Close(ctx))
	stored, err := store.Load(ctx, "home")
	require.NoError(t, err, "the first change replaces the unreadable record")
	assert.Equal(t, domain.ViewMobile, stored.ViewMode)
}

// rejectingStore fails every write while reject is set.
type rejectingStore struct {
	*memory.Store
	reject atomic.Bool
}

func (s *rejectingStore) Save(ctx context.Context, key string, state *domain.State) error {
	if s.reject.Load() {
		return errors.New("quota exceeded")
	}
	return s.Store.Save(ctx, key, state)
}

func TestManager_WriteFailuresKeepEditsInMemory(t *testing.T) {
	ctx := context.Background()
	store := &rejectingStore{Store: memory.NewStore()}
	var failures atomic.Int32
	m := session.NewManager(store, session.WithLifecycleHooks(domain.LifecycleHooks{
		OnPersistError: func(context.Context, *domain.PersistErrorEvent) { failures.Add(1) },
	}))

	before, err := m.LoadOrStart(ctx, "home")
	require.NoError(t, err)
	roots := len(before.Document.Elements)

	store.reject.Store(true)
	for i := 0; i < 2; i++ {
		_, _, err := m.Apply(ctx, "home", editor.InsertAtRoot{Element: element.New(domain.ElementDivider)})
		require.NoError(t, err)
	}
	_, _, err = m.Apply(ctx, "home", editor.Save{})
	require.NoError(t, err, "storage failures never reach the caller")
	assert.Positive(t, failures.Load())

	state, err := m.Load(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, state.Document.Elements, roots+2)
	assert.Len(t, state.History.Past, 2)

	stored, err := store.Load(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, stored.Document.Elements, roots, "rejected writes never reached the store")

	// Once writes succeed again the whole in-memory document lands.
	store.reject.Store(false)
	_, _, err = m.Apply(ctx, "home", editor.InsertAtRoot{Element: element.New(domain.ElementDivider)})
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx))

	stored, err = store.Load(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, stored.Document.Elements, roots+3)
	assert.Len(t, stored.History.Past, 3)
}
