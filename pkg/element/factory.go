package element

import (
	"fmt"
	"sync/atomic"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/google/uuid"
)

// Defaults used by the factory and by generators that want to match it.
const (
	DefaultHeading   = "Heading"
	DefaultParagraph = "This is a paragraph of text. Click to edit this text."
	DefaultButton    = "Button"
	DefaultImageSrc  = "https://via.placeholder.com/400x200"
	DefaultImageAlt  = "Placeholder image"
	DefaultIcon      = "facebook"
	AccentColor      = "#7C3AED"
)

// IDFunc produces a fresh identifier on every call.
type IDFunc func() string

// NewID returns a random identifier.
func NewID() string {
	return uuid.NewString()
}

// Sequential returns a deterministic generator yielding prefix1, prefix2, ...
// It is safe for concurrent use.
func Sequential(prefix string) IDFunc {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}

// Factory creates elements with type-specific defaults.
type Factory struct {
	NewID IDFunc
}

// NewFactory returns a factory using the given id generator.
// A nil generator falls back to random identifiers.
func NewFactory(ids IDFunc) *Factory {
	if ids == nil {
		ids = NewID
	}
	return &Factory{NewID: ids}
}

var defaultFactory = NewFactory(nil)

// New creates an element of type t with the default factory.
func New(t domain.ElementType) domain.Element {
	return defaultFactory.New(t)
}

// New creates an element of type t with a fresh identifier and the defaults
// of its type. Unknown types yield a bare element without defaults.
func (f *Factory) New(t domain.ElementType) domain.Element {
	e := domain.Element{
		ID:     f.NewID(),
		Type:   t,
		Styles: domain.Styles{},
	}

	switch t {
	case domain.ElementHeading:
		e.Content = DefaultHeading
		e.Styles = domain.Styles{
			domain.StyleFontSize:   "24px",
			domain.StyleFontWeight: "bold",
			domain.StyleColor:      "#000000",
			domain.StylePadding:    "10px",
			domain.StyleMargin:     "0",
		}
	case domain.ElementParagraph:
		e.Content = DefaultParagraph
		e.Styles = domain.Styles{
			domain.StyleFontSize: "16px",
			domain.StyleColor:    "#333333",
			domain.StylePadding:  "10px",
			domain.StyleMargin:   "0",
		}
	case domain.ElementButton:
		e.Content = DefaultButton
		e.Styles = domain.Styles{
			domain.StyleBackgroundColor: AccentColor,
			domain.StyleColor:           "#FFFFFF",
			domain.StylePadding:         "10px 20px",
			domain.StyleBorderRadius:    "4px",
			domain.StyleFontWeight:      "bold",
			domain.StyleFontSize:        "16px",
		}
	case domain.ElementImage:
		e.Src = DefaultImageSrc
		e.Alt = DefaultImageAlt
		e.Styles = domain.Styles{
			domain.StyleWidth:   "100%",
			domain.StyleHeight:  "auto",
			domain.StylePadding: "10px",
			domain.StyleMargin:  "0",
		}
	case domain.ElementContainer:
		e.Children = []domain.Element{}
		e.Styles = domain.Styles{
			domain.StyleBackgroundColor: "#FFFFFF",
			domain.StylePadding:         "20px",
			domain.StyleMargin:          "10px 0",
			domain.StyleBorderRadius:    "4px",
		}
	case domain.ElementDivider:
		e.Styles = domain.Styles{
			domain.StyleHeight:          "1px",
			domain.StyleBackgroundColor: "#E5E7EB",
			domain.StyleWidth:           "100%",
			domain.StyleMargin:          "20px 0",
		}
	case domain.ElementGallery:
		e.Children = []domain.Element{
			f.New(domain.ElementImage),
			f.New(domain.ElementImage),
			f.New(domain.ElementImage),
		}
		e.Styles = domain.Styles{
			domain.StyleDisplay:             "grid",
			domain.StyleGridTemplateColumns: "repeat(3, 1fr)",
			domain.StyleGap:                 "10px",
			domain.StyleWidth:               "100%",
			domain.StylePadding:             "10px",
		}
	case domain.ElementIcon:
		e.Content = DefaultIcon
		e.Styles = domain.Styles{
			domain.StyleFontSize: "24px",
			domain.StyleColor:    "#4267B2",
			domain.StylePadding:  "10px",
			domain.StyleMargin:   "0",
		}
	}

	return e
}

// Reassign returns a deep copy of e where every element of the subtree has a
// fresh identifier. Generators use it to stamp out copies of a blueprint.
func (f *Factory) Reassign(e domain.Element) domain.Element {
	out := e.Clone()
	out.ID = f.NewID()
	for i, ch := range out.Children {
		out.Children[i] = f.Reassign(ch)
	}
	return out
}
