package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommit       EventType = "commit"
	EventPersistError EventType = "persist_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Key       string    `json:"key,omitempty"`
}

// CommitEvent is emitted after a command has been applied.
type CommitEvent struct {
	EventBase
	Command      string `json:"command"`
	Changed      bool   `json:"changed"`
	HistoryDepth int    `json:"history_depth"`
	Selected     string `json:"selected,omitempty"`
	// Old and New are deep copies of the state around the command.
	Old *State `json:"-"`
	New *State `json:"-"`
}

// PersistErrorEvent is emitted when a state could not be written or read.
type PersistErrorEvent struct {
	EventBase
	Op  string `json:"op"`
	Err error  `json:"-"`
}

// LifecycleHooks defines callbacks for editor observability.
type LifecycleHooks struct {
	OnCommit       func(context.Context, *CommitEvent)
	OnPersistError func(context.Context, *PersistErrorEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommit: func(ctx context.Context, e *CommitEvent) {
			if h.OnCommit != nil {
				h.OnCommit(ctx, e)
			}
			if other.OnCommit != nil {
				other.OnCommit(ctx, e)
			}
		},
		OnPersistError: func(ctx context.Context, e *PersistErrorEvent) {
			if h.OnPersistError != nil {
				h.OnPersistError(ctx, e)
			}
			if other.OnPersistError != nil {
				other.OnPersistError(ctx, e)
			}
		},
	}
}
