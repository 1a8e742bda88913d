package editor

import "github.com/aretw0/sitecanvas/pkg/domain"

// Draft stages property edits on a private copy of one element. Nothing
// reaches the document until the Update returned by Apply is dispatched.
type Draft struct {
	id    string
	el    domain.Element
	dirty bool
}

// NewDraft starts editing a copy of el.
func NewDraft(el domain.Element) *Draft {
	return &Draft{id: el.ID, el: el.Clone()}
}

// SetStyle sets one style property. An empty value removes it.
func (d *Draft) SetStyle(key, value string) {
	d.el.Styles = d.el.Styles.With(key, value)
	d.dirty = true
}

// SetContent sets the text payload.
func (d *Draft) SetContent(text string) {
	d.el.Content = text
	d.dirty = true
}

// SetSrc sets the image source.
func (d *Draft) SetSrc(src string) {
	d.el.Src = src
	d.dirty = true
}

// SetAlt sets the image alt text.
func (d *Draft) SetAlt(alt string) {
	d.el.Alt = alt
	d.dirty = true
}

// Element returns a copy of the staged element.
func (d *Draft) Element() domain.Element {
	return d.el.Clone()
}

// Dirty reports whether anything was staged since the draft was created.
func (d *Draft) Dirty() bool {
	return d.dirty
}

// Apply returns the command committing the staged edits.
func (d *Draft) Apply() Update {
	return Update{ID: d.id, Element: d.el.Clone()}
}
