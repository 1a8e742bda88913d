package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/sitecanvas/internal/testutils"
	"github.com/aretw0/sitecanvas/pkg/adapters/loam"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TemplateLibrary = (*loam.Library)(nil)

const bakery = `---
id: bakery
name: Bakery Landing
industry: restaurant
elements:
  - id: hero
    type: container
    styles:
      backgroundColor: "#FDF2F8"
    children:
      - id: title
        type: heading
        content: Fresh bread daily
        styles:
          fontSize: 32px
  - id: rule
    type: divider
    styles: {}
---
Warm colours, one hero section.
`

const minimal = `---
elements:
  - id: box
    type: container
---
`

func TestLibrary_Get(t *testing.T) {
	dir := testutils.SeedTemplates(t, map[string]string{"bakery.md": bakery})
	lib, err := loam.Open(dir, element.Sequential("t"))
	require.NoError(t, err)

	doc, err := lib.Get(context.Background(), "bakery")
	require.NoError(t, err)

	assert.Equal(t, "bakery", doc.ID)
	assert.Equal(t, "Bakery Landing", doc.Name)
	assert.Equal(t, domain.IndustryRestaurant, doc.Industry)
	require.Len(t, doc.Elements, 2)

	hero := doc.Elements[0]
	assert.True(t, hero.IsContainer())
	assert.Equal(t, "#FDF2F8", hero.Styles[domain.StyleBackgroundColor])
	require.Len(t, hero.Children, 1)
	assert.Equal(t, "Fresh bread daily", hero.Children[0].Content)
	assert.Equal(t, "32px", hero.Children[0].Styles[domain.StyleFontSize])
	assert.False(t, doc.Elements[1].IsContainer())

	// Authored ids are replaced on every read.
	ids := tree.IDs(doc.Elements)
	assert.NotContains(t, ids, "hero")
	assert.NotContains(t, ids, "title")
	assert.Empty(t, tree.Duplicates(doc.Elements))
}

func TestLibrary_FreshIDsPerRead(t *testing.T) {
	dir := testutils.SeedTemplates(t, map[string]string{"bakery.md": bakery})
	lib, err := loam.Open(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := lib.Get(ctx, "bakery")
	require.NoError(t, err)
	b, err := lib.Get(ctx, "bakery.md")
	require.NoError(t, err)

	for _, id := range tree.IDs(b.Elements) {
		assert.NotContains(t, tree.IDs(a.Elements), id)
	}
}

func TestLibrary_ListDefaultsFromFileName(t *testing.T) {
	dir := testutils.SeedTemplates(t, map[string]string{"bakery.md": bakery, "minimal.md": minimal})
	lib, err := loam.Open(dir, nil)
	require.NoError(t, err)

	docs, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "bakery", docs[0].ID)
	assert.Equal(t, "minimal", docs[1].ID)
	assert.Equal(t, "minimal", docs[1].Name)
	assert.Equal(t, domain.IndustryOther, docs[1].Industry)
	require.Len(t, docs[1].Elements, 1)
	assert.True(t, docs[1].Elements[0].IsContainer(), "containers keep a children slice")
	assert.NotNil(t, docs[1].Elements[0].Styles)
}

func TestLibrary_Missing(t *testing.T) {
	lib, err := loam.Open(testutils.SeedTemplates(t, map[string]string{"bakery.md": bakery}), nil)
	require.NoError(t, err)

	_, err = lib.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestLibrary_DetectsCollisions(t *testing.T) {
	dir := testutils.SeedTemplates(t, map[string]string{
		"bakery.md": bakery,
		"copy.md":   "---\nid: bakery\nelements: []\n---\n",
	})
	lib, err := loam.Open(dir, nil)
	require.NoError(t, err)

	_, err = lib.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
