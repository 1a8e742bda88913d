package domain

import (
	"reflect"
)

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// Key identifies the document the diff applies to.
	Key string `json:"key"`

	// Document is the full new document when its metadata or tree changed.
	// Trees are small enough that element-level patches are not worth it.
	Document *Document `json:"document,omitempty"`

	// Selection is present when the selected element changed.
	// A nil ID inside means "nothing selected".
	Selection *SelectionDelta `json:"selection,omitempty"`

	ViewMode   *ViewMode   `json:"view_mode,omitempty"`
	Stage      *Stage      `json:"stage,omitempty"`
	UserConfig *UserConfig `json:"user_config,omitempty"`

	// History carries the new stack depths; snapshots themselves are not sent.
	History *HistoryDelta `json:"history,omitempty"`
}

// SelectionDelta carries the new selection.
type SelectionDelta struct {
	ID *string `json:"id"`
}

// HistoryDelta represents the sizes of the history stacks after a change.
type HistoryDelta struct {
	Past   int `json:"past"`
	Future int `json:"future"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
func Diff(key string, oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{Key: key}

	if oldState == nil || !reflect.DeepEqual(oldState.Document, newState.Document) {
		doc := newState.Document.Clone()
		diff.Document = &doc
	}

	if oldState == nil || oldState.Selected() != newState.Selected() ||
		(oldState.SelectedID == nil) != (newState.SelectedID == nil) {
		var id *string
		if newState.SelectedID != nil {
			id = StringPtr(*newState.SelectedID)
		}
		diff.Selection = &SelectionDelta{ID: id}
	}

	if oldState == nil || oldState.ViewMode != newState.ViewMode {
		mode := newState.ViewMode
		diff.ViewMode = &mode
	}
	if oldState == nil || oldState.Stage != newState.Stage {
		stage := newState.Stage
		diff.Stage = &stage
	}
	if newState.UserConfig != nil && (oldState == nil || !reflect.DeepEqual(oldState.UserConfig, newState.UserConfig)) {
		cfg := *newState.UserConfig
		diff.UserConfig = &cfg
	}

	if oldState == nil ||
		len(oldState.History.Past) != len(newState.History.Past) ||
		len(oldState.History.Future) != len(newState.History.Future) {
		diff.History = &HistoryDelta{
			Past:   len(newState.History.Past),
			Future: len(newState.History.Future),
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Document == nil &&
		d.Selection == nil &&
		d.ViewMode == nil &&
		d.Stage == nil &&
		d.UserConfig == nil &&
		d.History == nil
}
