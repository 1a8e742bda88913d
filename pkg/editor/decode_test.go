package editor_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    editor.Command
	}{
		{editor.NameSelect, `{"id": "h1"}`, editor.Select{ID: domain.StringPtr("h1")}},
		{editor.NameSelect, `{"id": null}`, editor.Select{}},
		{editor.NameSelect, ``, editor.Select{}},
		{editor.NameDelete, `{"id": "c1"}`, editor.Delete{ID: "c1"}},
		{editor.NameInsertIntoContainer, `{"containerId": "c1", "type": "gallery"}`,
			editor.InsertIntoContainer{ContainerID: "c1", Type: domain.ElementGallery}},
		{editor.NameSetViewMode, `{"mode": "mobile"}`, editor.SetViewMode{Mode: domain.ViewMobile}},
		{editor.NameSetStage, `{"stage": "preview"}`, editor.SetStage{Stage: domain.StagePreview}},
		{editor.NameSetUserConfig, `{"config": {"businessName": "Acme", "industry": "retail", "colorTheme": "#111"}}`,
			editor.SetUserConfig{Config: domain.UserConfig{BusinessName: "Acme", Industry: domain.IndustryRetail, ColorTheme: "#111"}}},
		{editor.NameGenerate, `{}`, editor.GenerateFromIndustry{}},
		{editor.NameSave, ``, editor.Save{}},
		{editor.NameUndo, ``, editor.Undo{}},
		{editor.NameRedo, ``, editor.Redo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name+tt.payload, func(t *testing.T) {
			var p map[string]any
			if tt.payload != "" {
				p = payload(t, tt.payload)
			}
			got, err := editor.Decode(tt.name, p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestDecode_Elements(t *testing.T) {
	cmd, err := editor.Decode(editor.NameUpdate, payload(t, `{
		"id": "c1",
		"element": {
			"id": "c1",
			"type": "container",
			"styles": {"padding": "4px"},
			"children": [{"id": "h1", "type": "heading", "content": "Hi", "styles": {}, "children": null}]
		}
	}`))
	require.NoError(t, err)
	up, ok := cmd.(editor.Update)
	require.True(t, ok)
	assert.Equal(t, "c1", up.ID)
	assert.Equal(t, "4px", up.Element.Styles[domain.StylePadding])
	require.Len(t, up.Element.Children, 1)
	assert.Equal(t, "Hi", up.Element.Children[0].Content)
	assert.False(t, up.Element.Children[0].IsContainer())

	cmd, err = editor.Decode(editor.NameSetTemplate, payload(t, `{"document": {"id": "t", "name": "T", "industry": "other", "elements": []}}`))
	require.NoError(t, err)
	assert.Equal(t, "T", cmd.(editor.SetTemplate).Document.Name)
}

func TestDecode_Errors(t *testing.T) {
	_, err := editor.Decode("explode", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	_, err = editor.Decode(editor.NameDelete, payload(t, `{"id": "x", "cascade": true}`))
	assert.ErrorContains(t, err, "cascade")

	_, err = editor.Decode(editor.NameDelete, payload(t, `{"id": 12}`))
	assert.Error(t, err)
}

func TestNamesAreDecodable(t *testing.T) {
	for _, name := range editor.Names {
		_, err := editor.Decode(name, nil)
		assert.NoError(t, err, name)
	}
}
