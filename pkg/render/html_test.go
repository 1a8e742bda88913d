package render_test

import (
	"strings"
	"testing"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page() domain.Document {
	f := element.NewFactory(element.Sequential("e"))
	heading := f.New(domain.ElementHeading)
	heading.Content = "Acme Bakery"
	container := f.New(domain.ElementContainer)
	container.Children = append(container.Children, heading, f.New(domain.ElementButton))
	icon := f.New(domain.ElementIcon)
	return domain.Document{
		ID:       "doc",
		Name:     "Acme & Co Website",
		Elements: []domain.Element{container, f.New(domain.ElementGallery), f.New(domain.ElementDivider), icon},
	}
}

func TestHTML_Document(t *testing.T) {
	out, err := render.HTML(page(), domain.ViewDesktop)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, s, "<title>Acme &amp; Co Website</title>")
	assert.Contains(t, s, `data-view-mode="desktop"`)
	assert.Contains(t, s, "max-width: 896px")
	assert.Contains(t, s, ">Acme Bakery</h2>")
	assert.Contains(t, s, `<button type="button"`)
	assert.Contains(t, s, `data-icon="facebook"`)
	assert.Equal(t, 3, strings.Count(s, "<img"), "gallery placeholders")
	assert.Contains(t, s, "grid-template-columns: repeat(3, 1fr)")
}

func TestHTML_FragmentAndViewModes(t *testing.T) {
	tests := []struct {
		mode  domain.ViewMode
		width string
	}{
		{domain.ViewDesktop, "max-width: 896px"},
		{domain.ViewTablet, "width: 768px"},
		{domain.ViewMobile, "width: 375px"},
		{domain.ViewMode("watch"), "max-width: 896px"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			out, err := render.HTML(page(), tt.mode, render.WithFragment())
			require.NoError(t, err)
			s := string(out)
			assert.True(t, strings.HasPrefix(s, "<div data-view-mode="))
			assert.NotContains(t, s, "<html")
			assert.Contains(t, s, tt.width)
		})
	}
}

func TestHTML_EscapesUserContent(t *testing.T) {
	doc := domain.Document{
		Name: "<b>x</b>",
		Elements: []domain.Element{
			{ID: "p", Type: domain.ElementParagraph, Content: `Hi <script>alert(1)</script>`, Styles: domain.Styles{}},
			{ID: "i", Type: domain.ElementImage, Src: "javascript:alert(1)", Alt: `"onerror="x`, Styles: domain.Styles{}},
			{ID: "h", Type: domain.ElementHeading, Content: "ok", Styles: domain.Styles{
				domain.StyleColor:    "red; position: fixed",
				domain.StyleFontSize: "24px",
				"onclick":            "x",
				domain.StyleMargin:   "",
			}},
		},
	}

	out, err := render.HTML(doc, domain.ViewDesktop, render.WithTitle("Preview"))
	require.NoError(t, err)
	s := string(out)

	assert.NotContains(t, s, "<script")
	assert.Contains(t, s, "&lt;script&gt;")
	assert.NotContains(t, s, "javascript:")
	assert.NotContains(t, s, "position: fixed")
	assert.NotContains(t, s, "onclick")
	assert.Contains(t, s, `<h2 style="font-size: 24px">ok</h2>`)
	assert.Contains(t, s, "<title>Preview</title>")
}

func TestHTML_UnknownTypeRendersBlock(t *testing.T) {
	doc := domain.Document{Elements: []domain.Element{
		{ID: "x", Type: domain.ElementType("carousel"), Content: "hidden", Styles: domain.Styles{}},
	}}

	out, err := render.HTML(doc, domain.ViewMobile, render.WithFragment())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<div></div>")
	assert.NotContains(t, string(out), "hidden")
}

func TestInlineCSS(t *testing.T) {
	css := render.InlineCSS(domain.Styles{
		domain.StylePadding:         "10px",
		domain.StyleBackgroundColor: " #FFF ",
		domain.StyleMargin:          "",
		"unknownProp":               "1",
		domain.StyleColor:           `red\9`,
		domain.StyleFontFamily:      `"Inter", sans-serif`,
		domain.StyleBorder:          "1px solid red; position: fixed",
	})
	assert.Equal(t, `background-color: #FFF; font-family: "Inter", sans-serif; padding: 10px`, css)
	assert.Empty(t, render.InlineCSS(nil))
}

func TestHTML_KeepsQuotedFontStack(t *testing.T) {
	doc := domain.Document{Name: "Fonts", Elements: []domain.Element{{
		ID:      "h",
		Type:    domain.ElementHeading,
		Content: "Hello",
		Styles:  domain.Styles{domain.StyleFontFamily: `"Inter", sans-serif`},
	}}}

	out, err := render.HTML(doc, domain.ViewDesktop, render.WithFragment())
	require.NoError(t, err)
	assert.Contains(t, string(out), "font-family: &#34;Inter&#34;, sans-serif")
}

func TestKebabCase(t *testing.T) {
	tests := map[string]string{
		"color":               "color",
		"backgroundColor":     "background-color",
		"gridTemplateColumns": "grid-template-columns",
	}
	for in, want := range tests {
		assert.Equal(t, want, render.KebabCase(in))
	}
}
