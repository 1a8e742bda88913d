package domain

// ElementType is the closed set of visual elements a page is built from.
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
	ElementButton    ElementType = "button"
	ElementImage     ElementType = "image"
	ElementContainer ElementType = "container"
	ElementDivider   ElementType = "divider"
	ElementGallery   ElementType = "gallery"
	ElementIcon      ElementType = "icon"
)

// ElementTypes lists every known element type in palette order.
var ElementTypes = []ElementType{
	ElementHeading,
	ElementParagraph,
	ElementButton,
	ElementImage,
	ElementContainer,
	ElementDivider,
	ElementGallery,
	ElementIcon,
}

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Element is a node of the page tree.
// Children is non-nil only for container-like elements (container, gallery);
// an empty container keeps an empty, non-nil slice so it stays a drop target.
// JSON keeps the distinction: leaves encode "children": null, containers [].
type Element struct {
	ID       string      `json:"id" yaml:"id" mapstructure:"id"`
	Type     ElementType `json:"type" yaml:"type" mapstructure:"type"`
	Content  string      `json:"content,omitempty" yaml:"content,omitempty" mapstructure:"content"`
	Src      string      `json:"src,omitempty" yaml:"src,omitempty" mapstructure:"src"`
	Alt      string      `json:"alt,omitempty" yaml:"alt,omitempty" mapstructure:"alt"`
	Styles   Styles      `json:"styles" yaml:"styles" mapstructure:"styles"`
	Children []Element   `json:"children" yaml:"children,omitempty" mapstructure:"children"`
}

// IsContainer reports whether the element owns a children sequence and can
// therefore accept dropped elements.
func (e Element) IsContainer() bool {
	return e.Children != nil
}

// Clone returns a deep copy of the element and its subtree.
func (e Element) Clone() Element {
	out := e
	out.Styles = e.Styles.Clone()
	if e.Children != nil {
		out.Children = CloneElements(e.Children)
	}
	return out
}

// CloneElements deep copies a sequence of elements.
// A nil input stays nil so leaves keep their "no children" shape.
func CloneElements(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

// NormalizeElements restores the container shape of decoded trees in place:
// containers and galleries get a non-nil children slice and every element
// gets a non-nil style map. Formats without a null/empty distinction (YAML,
// generic maps) need this after decoding.
func NormalizeElements(elems []Element) {
	for i := range elems {
		e := &elems[i]
		if e.Styles == nil {
			e.Styles = Styles{}
		}
		if e.Children == nil && (e.Type == ElementContainer || e.Type == ElementGallery) {
			e.Children = []Element{}
		}
		NormalizeElements(e.Children)
	}
}
