package dsl

import (
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
)

// Builder collects a sequence of sibling elements.
type Builder struct {
	factory *element.Factory
	items   []*ElementBuilder
}

// New creates a builder whose elements get identifiers from ids.
// A nil generator uses random identifiers.
func New(ids element.IDFunc) *Builder {
	return &Builder{factory: element.NewFactory(ids)}
}

// Add appends an element of type t carrying the factory defaults.
func (b *Builder) Add(t domain.ElementType) *ElementBuilder {
	eb := &ElementBuilder{el: b.factory.New(t), builder: b}
	b.items = append(b.items, eb)
	return eb
}

// Heading appends a heading with the given text.
func (b *Builder) Heading(text string) *ElementBuilder {
	return b.Add(domain.ElementHeading).Content(text)
}

// Paragraph appends a paragraph with the given text.
func (b *Builder) Paragraph(text string) *ElementBuilder {
	return b.Add(domain.ElementParagraph).Content(text)
}

// Button appends a button with the given label.
func (b *Builder) Button(label string) *ElementBuilder {
	return b.Add(domain.ElementButton).Content(label)
}

// Image appends an image.
func (b *Builder) Image(src, alt string) *ElementBuilder {
	eb := b.Add(domain.ElementImage)
	eb.el.Src = src
	eb.el.Alt = alt
	return eb
}

// Divider appends a divider.
func (b *Builder) Divider() *ElementBuilder {
	return b.Add(domain.ElementDivider)
}

// Icon appends an icon with the given icon name.
func (b *Builder) Icon(name string) *ElementBuilder {
	return b.Add(domain.ElementIcon).Content(name)
}

// Container appends a container whose children are declared by fill.
func (b *Builder) Container(fill func(*Builder)) *ElementBuilder {
	eb := b.Add(domain.ElementContainer)
	eb.fill(fill)
	return eb
}

// Gallery appends a gallery. A nil fill keeps the three placeholder images.
func (b *Builder) Gallery(fill func(*Builder)) *ElementBuilder {
	eb := b.Add(domain.ElementGallery)
	eb.fill(fill)
	return eb
}

// Build returns the declared elements.
func (b *Builder) Build() []domain.Element {
	out := make([]domain.Element, 0, len(b.items))
	for _, eb := range b.items {
		out = append(out, eb.build())
	}
	return out
}

// ElementBuilder provides a fluent API for configuring one element.
type ElementBuilder struct {
	el       domain.Element
	builder  *Builder
	children *Builder
}

func (e *ElementBuilder) fill(fn func(*Builder)) {
	if fn == nil {
		return
	}
	e.children = &Builder{factory: e.builder.factory}
	fn(e.children)
}

// ID overrides the generated identifier.
func (e *ElementBuilder) ID(id string) *ElementBuilder {
	e.el.ID = id
	return e
}

// Content sets the text payload.
func (e *ElementBuilder) Content(text string) *ElementBuilder {
	e.el.Content = text
	return e
}

// Style sets one visual property. An empty value unsets it.
func (e *ElementBuilder) Style(key, value string) *ElementBuilder {
	e.el.Styles = e.el.Styles.With(key, value)
	return e
}

// Styles replaces every visual property, dropping the type defaults.
func (e *ElementBuilder) Styles(styles domain.Styles) *ElementBuilder {
	e.el.Styles = styles.Clone()
	return e
}

// Element returns the element built so far, including declared children.
func (e *ElementBuilder) Element() domain.Element {
	return e.build()
}

func (e *ElementBuilder) build() domain.Element {
	out := e.el.Clone()
	if e.children != nil {
		out.Children = e.children.Build()
	}
	return out
}
