package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/sitecanvas/pkg/adapters/sqlite"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.StateStore = (*sqlite.Store)(nil)

func open(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSQLiteStore_Contract(t *testing.T) {
	store, _ := open(t)
	ports.RunStateStoreContract(t, store)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunStateStoreContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	store, path := open(t)
	ctx := context.Background()

	st := domain.NewState(domain.Document{ID: "d1", Name: "Bakery", Elements: []domain.Element{}})
	require.NoError(t, store.Save(ctx, "site", st))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx, "site")
	require.NoError(t, err)
	assert.Equal(t, "Bakery", got.Document.Name)
	assert.Equal(t, domain.SchemaVersion, got.Version)
}
