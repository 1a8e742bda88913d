package element_test

import (
	"testing"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Defaults(t *testing.T) {
	f := element.NewFactory(element.Sequential("e"))

	tests := []struct {
		typ       domain.ElementType
		content   string
		container bool
		style     string
		value     string
	}{
		{domain.ElementHeading, "Heading", false, domain.StyleFontWeight, "bold"},
		{domain.ElementParagraph, element.DefaultParagraph, false, domain.StyleFontSize, "16px"},
		{domain.ElementButton, "Button", false, domain.StyleBackgroundColor, "#7C3AED"},
		{domain.ElementImage, "", false, domain.StyleWidth, "100%"},
		{domain.ElementContainer, "", true, domain.StyleBackgroundColor, "#FFFFFF"},
		{domain.ElementDivider, "", false, domain.StyleHeight, "1px"},
		{domain.ElementGallery, "", true, domain.StyleDisplay, "grid"},
		{domain.ElementIcon, "facebook", false, domain.StyleColor, "#4267B2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			e := f.New(tt.typ)
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, tt.typ, e.Type)
			assert.Equal(t, tt.content, e.Content)
			assert.Equal(t, tt.container, e.IsContainer())
			assert.Equal(t, tt.value, e.Styles[tt.style])
		})
	}
}

func TestFactory_ImageAndGallery(t *testing.T) {
	f := element.NewFactory(element.Sequential("e"))

	img := f.New(domain.ElementImage)
	assert.Equal(t, element.DefaultImageSrc, img.Src)
	assert.Equal(t, element.DefaultImageAlt, img.Alt)

	g := f.New(domain.ElementGallery)
	require.Len(t, g.Children, 3)
	for _, ch := range g.Children {
		assert.Equal(t, domain.ElementImage, ch.Type)
	}
	assert.Empty(t, tree.Duplicates([]domain.Element{g}))

	c := f.New(domain.ElementContainer)
	assert.NotNil(t, c.Children)
	assert.Empty(t, c.Children)
}

func TestFactory_UnknownTypeFallsBack(t *testing.T) {
	e := element.New(domain.ElementType("carousel"))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, domain.ElementType("carousel"), e.Type)
	assert.Empty(t, e.Content)
	assert.NotNil(t, e.Styles)
	assert.Empty(t, e.Styles)
	assert.False(t, e.IsContainer())
}

func TestFactory_FreshIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		e := element.New(domain.ElementHeading)
		require.False(t, seen[e.ID], "id %s reused", e.ID)
		seen[e.ID] = true
	}
}

func TestSequential(t *testing.T) {
	next := element.Sequential("c")
	assert.Equal(t, "c1", next())
	assert.Equal(t, "c2", next())
}

func TestReassign(t *testing.T) {
	f := element.NewFactory(element.Sequential("n"))
	g := f.New(domain.ElementGallery)

	cp := f.Reassign(g)
	orig := tree.IDs([]domain.Element{g})
	fresh := tree.IDs([]domain.Element{cp})
	require.Len(t, fresh, len(orig))
	for _, id := range fresh {
		assert.NotContains(t, orig, id)
	}
	assert.Equal(t, g.Children[0].Src, cp.Children[0].Src)
}
