package domain

import (
	"encoding/json"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageRegistration, StagePreview, true},
		{StagePreview, StageEditor, true},
		{StageEditor, StagePublish, true},
		{StagePublish, StageEditor, true},
		{StageEditor, StagePreview, true},
		{StagePreview, StageRegistration, true},
		{StageEditor, StageEditor, true},
		{StageRegistration, StageEditor, false},
		{StageRegistration, StagePublish, false},
		{StagePublish, StagePreview, false},
		{StageEditor, StageRegistration, false},
		{StageEditor, Stage("done"), false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestElementClone_IsDeep(t *testing.T) {
	orig := Element{
		ID:     "c1",
		Type:   ElementContainer,
		Styles: Styles{StylePadding: "20px"},
		Children: []Element{
			{ID: "h1", Type: ElementHeading, Content: "Hi", Styles: Styles{StyleColor: "#000"}},
		},
	}

	cp := orig.Clone()
	cp.Styles[StylePadding] = "0"
	cp.Children[0].Content = "changed"
	cp.Children[0].Styles[StyleColor] = "#fff"

	if orig.Styles[StylePadding] != "20px" {
		t.Errorf("styles were shared")
	}
	if orig.Children[0].Content != "Hi" || orig.Children[0].Styles[StyleColor] != "#000" {
		t.Errorf("children were shared")
	}
}

func TestElementJSON_KeepsContainerShape(t *testing.T) {
	elems := []Element{
		{ID: "c1", Type: ElementContainer, Styles: Styles{}, Children: []Element{}},
		{ID: "h1", Type: ElementHeading, Styles: Styles{}},
	}
	raw, err := json.Marshal(elems)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back []Element
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !back[0].IsContainer() {
		t.Errorf("empty container lost its children sequence")
	}
	if back[1].IsContainer() {
		t.Errorf("leaf gained a children sequence")
	}
}

func TestViewModeWidth(t *testing.T) {
	if w, fixed := ViewTablet.Width(); w != 768 || !fixed {
		t.Errorf("tablet width = %d fixed=%v", w, fixed)
	}
	if w, fixed := ViewMobile.Width(); w != 375 || !fixed {
		t.Errorf("mobile width = %d fixed=%v", w, fixed)
	}
	if w, fixed := ViewDesktop.Width(); w != 896 || fixed {
		t.Errorf("desktop width = %d fixed=%v", w, fixed)
	}
}

func TestNormalizeElements(t *testing.T) {
	elems := []Element{
		{ID: "g1", Type: ElementGallery},
		{ID: "c1", Type: ElementContainer, Children: []Element{{ID: "p1", Type: ElementParagraph}}},
	}
	NormalizeElements(elems)

	if elems[0].Children == nil || elems[0].Styles == nil {
		t.Errorf("gallery not normalized: %+v", elems[0])
	}
	if elems[1].Children[0].Children != nil {
		t.Errorf("paragraph must stay a leaf")
	}
	if elems[1].Children[0].Styles == nil {
		t.Errorf("nested styles not normalized")
	}
}
