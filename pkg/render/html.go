package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option configures HTML rendering.
type Option func(*options)

type options struct {
	fragment bool
	title    string
}

// WithFragment renders only the page frame, without the document shell.
func WithFragment() Option {
	return func(o *options) {
		o.fragment = true
	}
}

// WithTitle overrides the <title> of the document shell.
// It defaults to the document name.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "h2", "p", "button", "span", "img")
	p.AllowAttrs("style").Globally()
	p.AllowAttrs("data-view-mode").OnElements("div")
	p.AllowAttrs("data-icon", "aria-label").OnElements("span")
	p.AllowAttrs("type").OnElements("button")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowDataURIImages()
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}

// HTML renders doc as a static page framed for the given view mode.
// Unknown element types render as empty blocks. Element text and
// attributes are escaped, and the markup only ever carries the tags the
// editor produces.
func HTML(doc domain.Document, mode domain.ViewMode, opts ...Option) ([]byte, error) {
	o := options{title: doc.Name}
	for _, opt := range opts {
		opt(&o)
	}

	frame := frameNode(mode)
	for _, e := range doc.Elements {
		frame.AppendChild(elementNode(e))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, frame); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	body := policy.SanitizeBytes(buf.Bytes())
	if o.fragment {
		return body, nil
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n")
	if err := html.Render(&out, shellNode(o.title, body)); err != nil {
		return nil, fmt.Errorf("failed to render document shell: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func shellNode(title string, body []byte) *html.Node {
	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"},
	))
	t := element(atom.Title)
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(t)
	root.AppendChild(head)

	b := element(atom.Body, html.Attribute{Key: "style", Val: "margin: 0; background-color: #F3F4F6"})
	// Already sanitized; inserted as is.
	b.AppendChild(&html.Node{Type: html.RawNode, Data: string(body)})
	root.AppendChild(b)
	return root
}

func frameNode(mode domain.ViewMode) *html.Node {
	if !mode.Valid() {
		mode = domain.ViewDesktop
	}
	px, fixed := mode.Width()
	width := fmt.Sprintf("max-width: %dpx", px)
	if fixed {
		width = fmt.Sprintf("width: %dpx", px)
	}
	return element(atom.Div,
		html.Attribute{Key: "data-view-mode", Val: string(mode)},
		html.Attribute{Key: "style", Val: width + "; margin: 0 auto; background-color: #FFFFFF; min-height: 100vh"},
	)
}

func elementNode(e domain.Element) *html.Node {
	var n *html.Node
	switch e.Type {
	case domain.ElementHeading:
		n = textElement(atom.H2, e.Content)
	case domain.ElementParagraph:
		n = textElement(atom.P, e.Content)
	case domain.ElementButton:
		n = textElement(atom.Button, e.Content)
		n.Attr = append(n.Attr, html.Attribute{Key: "type", Val: "button"})
	case domain.ElementImage:
		n = element(atom.Img,
			html.Attribute{Key: "src", Val: e.Src},
			html.Attribute{Key: "alt", Val: e.Alt},
		)
	case domain.ElementIcon:
		n = element(atom.Span,
			html.Attribute{Key: "data-icon", Val: e.Content},
			html.Attribute{Key: "aria-label", Val: e.Content},
		)
	default:
		n = element(atom.Div)
	}

	if css := InlineCSS(e.Styles); css != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: css})
	}
	for _, ch := range e.Children {
		n.AppendChild(elementNode(ch))
	}
	return n
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

// InlineCSS converts a style map into an inline declaration list.
// Only known properties are emitted, in kebab-case, sorted by name.
// Values that could break out of their declaration are dropped.
func InlineCSS(styles domain.Styles) string {
	decls := make([]string, 0, len(styles))
	for key, value := range styles {
		if !domain.KnownStyle(key) || !safeCSSValue(value) {
			continue
		}
		decls = append(decls, KebabCase(key)+": "+strings.TrimSpace(value))
	}
	sort.Strings(decls)
	return strings.Join(decls, "; ")
}

func safeCSSValue(v string) bool {
	return strings.TrimSpace(v) != "" && !strings.ContainsAny(v, `;{}<>\`)
}

// KebabCase converts a camelCase property name to its CSS form.
func KebabCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
