package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/sitecanvas/pkg/adapters/memory"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactPage() domain.Document {
	return domain.Document{
		ID: "doc",
		Elements: []domain.Element{
			{ID: "c", Type: domain.ElementContainer, Styles: domain.Styles{}, Children: []domain.Element{
				{ID: "p", Type: domain.ElementParagraph, Content: "Mail hello@bakery.com or call +1 (555) 123-4567", Styles: domain.Styles{}},
				{ID: "i", Type: domain.ElementImage, Src: "https://img", Alt: "owner jane@bakery.com", Styles: domain.Styles{}},
			}},
			{ID: "h", Type: domain.ElementHeading, Content: "Open daily", Styles: domain.Styles{}},
		},
	}
}

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)(underlyingStore)

	ctx := context.Background()
	state := domain.NewState(contactPage())
	state.History.Past = []domain.Document{contactPage()}

	require.NoError(t, secureStore.Save(ctx, "site", state))

	// The in-memory state is untouched.
	assert.Contains(t, state.Document.Elements[0].Children[0].Content, "hello@bakery.com")

	stored, err := secureStore.Load(ctx, "site")
	require.NoError(t, err)

	para := stored.Document.Elements[0].Children[0]
	assert.Equal(t, "Mail *** or call ***", para.Content)
	assert.Equal(t, "owner ***", stored.Document.Elements[0].Children[1].Alt)
	assert.Equal(t, "https://img", stored.Document.Elements[0].Children[1].Src)
	assert.Equal(t, "Open daily", stored.Document.Elements[1].Content)
	assert.Equal(t, "Mail *** or call ***", stored.History.Past[0].Elements[0].Children[0].Content)
}

func TestChain_Order(t *testing.T) {
	underlyingStore := memory.NewStore()
	key := generateKey(t)

	// PII runs before encryption, so the sealed payload is already masked.
	store := middleware.Chain(underlyingStore,
		middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "site", domain.NewState(contactPage())))

	raw, err := underlyingStore.Load(ctx, "site")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)

	loaded, err := store.Load(ctx, "site")
	require.NoError(t, err)
	assert.Equal(t, "Mail *** or call ***", loaded.Document.Elements[0].Children[0].Content)
}
