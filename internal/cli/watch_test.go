package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/sitecanvas/pkg/adapters/memory"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a buffer shared between the watcher and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch_PrintsOnChange(t *testing.T) {
	store := memory.NewStore()
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, store, WatchOptions{
			Key:      "home",
			Out:      out,
			Interval: 10 * time.Millisecond,
			Format: func(st *domain.State) string {
				return "mode=" + string(st.ViewMode) + "\n"
			},
		})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Waiting for 'home'")
	}, time.Second, 10*time.Millisecond)

	state := domain.NewState(domain.Document{ID: "d"})
	require.NoError(t, store.Save(ctx, "home", state))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "mode=desktop")
	}, time.Second, 10*time.Millisecond)

	state.ViewMode = domain.ViewMobile
	require.NoError(t, store.Save(ctx, "home", state))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "mode=mobile")
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, 2, strings.Count(out.String(), "Change detected"))
}
