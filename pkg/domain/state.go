package domain

// SchemaVersion is the layout version written with every persisted state.
// Bump it together with a migration in the persistence bridge.
const SchemaVersion = 1

// ViewMode is the responsive preview width. It only affects rendering.
type ViewMode string

const (
	ViewDesktop ViewMode = "desktop"
	ViewTablet  ViewMode = "tablet"
	ViewMobile  ViewMode = "mobile"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewDesktop, ViewTablet, ViewMobile:
		return true
	}
	return false
}

// Width returns the canvas frame width in CSS pixels and whether the frame
// is fixed (tablet, mobile) or a fluid maximum (desktop).
func (m ViewMode) Width() (px int, fixed bool) {
	switch m {
	case ViewTablet:
		return 768, true
	case ViewMobile:
		return 375, true
	default:
		return 896, false
	}
}

// History holds whole-document snapshots.
// Past is ordered most-recent-last, Future most-recent-first.
type History struct {
	Past   []Document `json:"past"`
	Future []Document `json:"future"`
}

// Clone deep copies both stacks.
func (h History) Clone() History {
	out := History{
		Past:   make([]Document, len(h.Past)),
		Future: make([]Document, len(h.Future)),
	}
	for i, d := range h.Past {
		out.Past[i] = d.Clone()
	}
	for i, d := range h.Future {
		out.Future[i] = d.Clone()
	}
	return out
}

// State is the unit of persistence: the page being edited plus the editor
// bookkeeping around it.
type State struct {
	// Version is the persisted layout version (see SchemaVersion).
	Version int `json:"version"`

	Document   Document    `json:"template"`
	SelectedID *string     `json:"selectedElementId"`
	ViewMode   ViewMode    `json:"viewMode"`
	Stage      Stage       `json:"stage"`
	UserConfig *UserConfig `json:"userConfig"`
	History    History     `json:"history"`

	// Sealed carries an encrypted copy of the whole state when a store
	// middleware wraps it. Plain states leave it empty.
	Sealed string `json:"sealed,omitempty"`
}

// NewState creates the initial editor state around a starting document.
func NewState(doc Document) *State {
	return &State{
		Version:  SchemaVersion,
		Document: doc.Clone(),
		ViewMode: ViewDesktop,
		Stage:    StageRegistration,
		History:  History{Past: []Document{}, Future: []Document{}},
	}
}

// Selected returns the selected element id, or "" when nothing is selected.
func (s *State) Selected() string {
	if s.SelectedID == nil {
		return ""
	}
	return *s.SelectedID
}

// Clone returns a deep copy, safe to hand to another goroutine or store.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Document = s.Document.Clone()
	out.History = s.History.Clone()
	if s.SelectedID != nil {
		id := *s.SelectedID
		out.SelectedID = &id
	}
	if s.UserConfig != nil {
		cfg := *s.UserConfig
		out.UserConfig = &cfg
	}
	return &out
}

// StringPtr is a helper for building selections.
func StringPtr(s string) *string {
	return &s
}
