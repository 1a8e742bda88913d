package editor

import (
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
)

// Drag tracks one palette drag: which element type is being dragged and
// which container is under the pointer. It never touches the document; the
// command it yields on drop does.
type Drag struct {
	factory  *element.Factory
	dragging domain.ElementType
	active   bool
	target   string
}

// NewDrag creates drag state whose root drops are built by f.
func NewDrag(f *element.Factory) *Drag {
	if f == nil {
		f = element.NewFactory(nil)
	}
	return &Drag{factory: f}
}

// Begin starts dragging a palette entry.
func (d *Drag) Begin(t domain.ElementType) {
	d.dragging = t
	d.active = true
	d.target = ""
}

// Hover marks a container as the current drop target.
func (d *Drag) Hover(containerID string) {
	d.target = containerID
}

// Leave clears the drop target; a drop now lands on the canvas.
func (d *Drag) Leave() {
	d.target = ""
}

// Active reports whether a drag is in progress and what it carries.
func (d *Drag) Active() (domain.ElementType, bool) {
	return d.dragging, d.active
}

// Target returns the hovered container id, empty over the bare canvas.
func (d *Drag) Target() string {
	return d.target
}

// Cancel abandons the drag.
func (d *Drag) Cancel() {
	*d = Drag{factory: d.factory}
}

// Drop ends the drag and returns the command it produces: an insert into
// the hovered container, or an insert at the root over the canvas.
// It reports false when no drag was in progress.
func (d *Drag) Drop() (Command, bool) {
	if !d.active {
		return nil, false
	}
	t, target := d.dragging, d.target
	d.Cancel()

	if target != "" {
		return InsertIntoContainer{ContainerID: target, Type: t}, true
	}
	return InsertAtRoot{Element: d.factory.New(t)}, true
}
