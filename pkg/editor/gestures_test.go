package editor_test

import (
	"testing"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrag(t *testing.T) {
	d := editor.NewDrag(element.NewFactory(element.Sequential("d")))

	_, ok := d.Drop()
	assert.False(t, ok, "drop without a drag does nothing")

	d.Begin(domain.ElementButton)
	typ, active := d.Active()
	assert.True(t, active)
	assert.Equal(t, domain.ElementButton, typ)

	d.Hover("box")
	cmd, ok := d.Drop()
	require.True(t, ok)
	assert.Equal(t, editor.InsertIntoContainer{ContainerID: "box", Type: domain.ElementButton}, cmd)
	_, active = d.Active()
	assert.False(t, active, "drop ends the drag")

	d.Begin(domain.ElementDivider)
	d.Hover("box")
	d.Leave()
	cmd, ok = d.Drop()
	require.True(t, ok)
	root, isRoot := cmd.(editor.InsertAtRoot)
	require.True(t, isRoot)
	assert.Equal(t, domain.ElementDivider, root.Element.Type)
	assert.Equal(t, "d1", root.Element.ID)

	d.Begin(domain.ElementIcon)
	d.Cancel()
	_, ok = d.Drop()
	assert.False(t, ok)
}

func TestShortcut(t *testing.T) {
	sel := domain.StringPtr("h1")
	ctrl := editor.Modifiers{Ctrl: true}
	cmd := editor.Modifiers{Meta: true}

	tests := []struct {
		name    string
		key     string
		mods    editor.Modifiers
		sel     *string
		focused bool
		want    editor.Command
	}{
		{"delete", "Delete", editor.Modifiers{}, sel, false, editor.Delete{ID: "h1"}},
		{"backspace", "Backspace", editor.Modifiers{}, sel, false, editor.Delete{ID: "h1"}},
		{"delete without selection", "Delete", editor.Modifiers{}, nil, false, nil},
		{"delete in text field", "Backspace", editor.Modifiers{}, sel, true, nil},
		{"undo ctrl", "z", ctrl, nil, false, editor.Undo{}},
		{"undo cmd", "z", cmd, nil, false, editor.Undo{}},
		{"redo shift z", "Z", editor.Modifiers{Ctrl: true, Shift: true}, nil, false, editor.Redo{}},
		{"redo y", "y", cmd, nil, false, editor.Redo{}},
		{"plain z", "z", editor.Modifiers{}, nil, false, nil},
		{"undo in text field", "z", ctrl, nil, true, nil},
		{"other key", "a", ctrl, sel, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := editor.Shortcut(tt.key, tt.mods, tt.sel, tt.focused)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDraft(t *testing.T) {
	orig := element.New(domain.ElementImage)
	d := editor.NewDraft(orig)
	assert.False(t, d.Dirty())

	d.SetSrc("https://example.com/cat.png")
	d.SetAlt("A cat")
	d.SetStyle(domain.StyleBorderRadius, "50%")
	d.SetStyle(domain.StylePadding, "")
	d.SetContent("caption")
	assert.True(t, d.Dirty())

	assert.Equal(t, element.DefaultImageSrc, orig.Src, "the original is untouched")
	_, had := orig.Styles[domain.StylePadding]
	assert.True(t, had)

	up := d.Apply()
	assert.Equal(t, orig.ID, up.ID)
	assert.Equal(t, "https://example.com/cat.png", up.Element.Src)
	assert.Equal(t, "A cat", up.Element.Alt)
	assert.Equal(t, "50%", up.Element.Styles[domain.StyleBorderRadius])
	_, has := up.Element.Styles[domain.StylePadding]
	assert.False(t, has)
	assert.Equal(t, "caption", d.Element().Content)
}
