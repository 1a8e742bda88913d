package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractState() *domain.State {
	doc := domain.Document{
		ID:       "doc-1",
		Name:     "Contract",
		Industry: domain.IndustryRetail,
		Elements: []domain.Element{
			{
				ID:     "c1",
				Type:   domain.ElementContainer,
				Styles: domain.Styles{domain.StylePadding: "20px"},
				Children: []domain.Element{
					{ID: "h1", Type: domain.ElementHeading, Content: "Hello", Styles: domain.Styles{}},
				},
			},
			{ID: "c2", Type: domain.ElementContainer, Styles: domain.Styles{}, Children: []domain.Element{}},
			{ID: "i1", Type: domain.ElementImage, Src: "https://example.com/a.png", Alt: "A", Styles: domain.Styles{}},
		},
	}
	st := domain.NewState(doc)
	st.SelectedID = domain.StringPtr("h1")
	st.ViewMode = domain.ViewTablet
	st.Stage = domain.StageEditor
	st.UserConfig = &domain.UserConfig{BusinessName: "Acme", Industry: domain.IndustryRetail, ColorTheme: "#123456"}
	past := doc.Clone()
	past.Elements = past.Elements[:1]
	st.History.Past = append(st.History.Past, past)
	return st
}

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := contractState()

		err := store.Save(ctx, key, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state, loaded, "a loaded state must equal the saved one")
		assert.True(t, loaded.Document.Elements[1].IsContainer(), "empty containers must survive a round trip")
		assert.False(t, loaded.Document.Elements[2].IsContainer(), "leaves must not become containers")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		state := contractState()
		state.SelectedID = nil
		require.NoError(t, store.Save(ctx, key, state))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, loaded.SelectedID)
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Document.Elements[0].Children[0].Content = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Hello", again.Document.Elements[0].Children[0].Content)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, contractState())
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		_ = store.Save(ctx, id1, contractState())
		_ = store.Save(ctx, id2, contractState())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
