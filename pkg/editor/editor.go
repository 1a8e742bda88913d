package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/sitecanvas/internal/logging"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/persistence"
	"github.com/aretw0/sitecanvas/pkg/templates"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aretw0/sitecanvas/pkg/editor"

// Editor owns one document state and applies commands to it one at a time.
type Editor struct {
	mu    sync.Mutex
	state *domain.State

	key      string
	factory  *element.Factory
	generate Generator
	bridge   *persistence.Bridge
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	tracer   trace.Tracer

	skipNoopHistory      bool
	deselectAncestorOnly bool
}

// New creates an editor around a copy of state. A nil state starts from the
// default document.
func New(state *domain.State, opts ...Option) *Editor {
	e := &Editor{generate: templates.Generate}
	for _, opt := range opts {
		opt(e)
	}

	if e.factory == nil {
		e.factory = element.NewFactory(nil)
	}
	if e.generate == nil {
		e.generate = templates.Generate
	}
	if e.key == "" && e.bridge != nil {
		e.key = e.bridge.Key()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.key != "" {
		e.logger = e.logger.With("key", e.key)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}

	if state == nil {
		state = domain.NewState(templates.Default(e.factory.NewID))
	}
	e.state = state.Clone()
	return e
}

// Key returns the document key the editor was configured with.
func (e *Editor) Key() string {
	return e.key
}

// Factory returns the element factory used for inserts.
func (e *Editor) Factory() *element.Factory {
	return e.factory
}

// State returns a deep copy of the committed state.
func (e *Editor) State() *domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Selected returns the selected element, if any is selected and it still exists.
func (e *Editor) Selected() (domain.Element, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.SelectedID == nil {
		return domain.Element{}, false
	}
	el, ok := tree.Find(e.state.Document.Elements, *e.state.SelectedID)
	if !ok {
		return domain.Element{}, false
	}
	return el.Clone(), true
}

// Dispatch applies one command to completion. Commands that change the
// state are handed to the bridge without waiting for storage; Save waits.
// Invalid view modes and disallowed stage moves return errors and leave the
// state untouched. Lookups that miss, and generating before a user config is
// set, are not errors.
func (e *Editor) Dispatch(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", domain.ErrUnknownCommand)
	}

	ctx, span := e.tracer.Start(ctx, "editor.Dispatch", trace.WithAttributes(
		attribute.String("sitecanvas.command", cmd.Name()),
		attribute.String("sitecanvas.key", e.key),
	))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.state
	next, err := e.apply(ctx, old, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("command rejected", "command", cmd.Name(), "err", err)
		return err
	}

	changed := next != old
	e.state = next
	span.SetAttributes(
		attribute.Bool("sitecanvas.changed", changed),
		attribute.Int("sitecanvas.history.past", len(next.History.Past)),
		attribute.Int("sitecanvas.history.future", len(next.History.Future)),
	)

	if changed && e.bridge != nil {
		e.bridge.Enqueue(next.Clone())
	}

	e.logger.Debug("command applied",
		"command", cmd.Name(),
		"changed", changed,
		"past", len(next.History.Past),
		"future", len(next.History.Future),
	)

	if e.hooks.OnCommit != nil {
		e.hooks.OnCommit(ctx, &domain.CommitEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventCommit,
				Key:       e.key,
			},
			Command:      cmd.Name(),
			Changed:      changed,
			HistoryDepth: len(next.History.Past),
			Selected:     next.Selected(),
			Old:          old.Clone(),
			New:          next.Clone(),
		})
	}
	return nil
}

// apply returns s itself when the command changes nothing.
func (e *Editor) apply(ctx context.Context, s *domain.State, cmd Command) (*domain.State, error) {
	switch c := cmd.(type) {
	case Select:
		if sameSelection(s.SelectedID, c.ID) {
			return s, nil
		}
		n := shallow(s)
		n.SelectedID = copyID(c.ID)
		return n, nil

	case Update:
		hit := tree.Contains(s.Document.Elements, c.ID)
		repl := c.Element.Clone()
		if hit {
			taken := idSet(s.Document.Elements, tree.Subtree(s.Document.Elements, c.ID)...)
			repl = e.dedupe(repl, taken)
		}
		n := e.commit(s, tree.Replace(s.Document.Elements, c.ID, repl), hit)
		if hit && n.SelectedID != nil {
			switch sel := *n.SelectedID; {
			case sel == c.ID:
				// The selection follows the replacement, even under a new id.
				n.SelectedID = domain.StringPtr(repl.ID)
			case !tree.Contains(n.Document.Elements, sel):
				n.SelectedID = nil
			}
		}
		return n, nil

	case InsertIntoContainer:
		target, ok := tree.Find(s.Document.Elements, c.ContainerID)
		if !ok || !target.IsContainer() {
			return e.commit(s, s.Document.Elements, false), nil
		}
		node := e.factory.New(c.Type)
		n := e.commit(s, tree.InsertInto(s.Document.Elements, c.ContainerID, node), true)
		n.SelectedID = domain.StringPtr(node.ID)
		return n, nil

	case InsertAtRoot:
		node := e.dedupe(c.Element.Clone(), idSet(s.Document.Elements))
		n := e.commit(s, tree.Append(s.Document.Elements, node), true)
		n.SelectedID = domain.StringPtr(node.ID)
		return n, nil

	case Delete:
		hit := tree.Contains(s.Document.Elements, c.ID)
		elems := tree.Delete(s.Document.Elements, c.ID)
		n := e.commit(s, elems, hit)
		if n == s {
			return s, nil
		}
		if !e.deselectAncestorOnly || (n.SelectedID != nil && !tree.Contains(elems, *n.SelectedID)) {
			n.SelectedID = nil
		}
		return n, nil

	case SetViewMode:
		if !c.Mode.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidViewMode, c.Mode)
		}
		if c.Mode == s.ViewMode {
			return s, nil
		}
		n := shallow(s)
		n.ViewMode = c.Mode
		return n, nil

	case SetStage:
		if !domain.CanTransition(s.Stage, c.Stage) {
			return nil, fmt.Errorf("%w: %q -> %q", domain.ErrInvalidStageTransition, s.Stage, c.Stage)
		}
		if c.Stage == s.Stage {
			return s, nil
		}
		n := shallow(s)
		n.Stage = c.Stage
		return n, nil

	case SetUserConfig:
		cfg := c.Config
		n := shallow(s)
		n.UserConfig = &cfg
		return n, nil

	case GenerateFromIndustry:
		if s.UserConfig == nil {
			e.logger.Debug("generate requested before registration")
			return s, nil
		}
		cfg := s.UserConfig
		doc := e.generate(cfg.Industry, cfg.BusinessName, cfg.ColorTheme, e.factory.NewID)
		n := shallow(s)
		n.Document = doc.Clone()
		n.SelectedID = nil
		return n, nil

	case SetTemplate:
		doc := c.Document.Clone()
		domain.NormalizeElements(doc.Elements)
		taken := map[string]bool{}
		for i, el := range doc.Elements {
			doc.Elements[i] = e.dedupe(el, taken)
		}
		n := e.commit(s, doc.Elements, true)
		n.Document = doc
		n.SelectedID = nil
		return n, nil

	case Save:
		if e.bridge == nil {
			e.logger.Debug("save requested without storage")
			return s, nil
		}
		e.bridge.Enqueue(s.Clone())
		if err := e.bridge.Flush(ctx); err != nil {
			e.logger.Warn("save did not complete", "err", err)
		}
		return s, nil

	case Undo:
		past := s.History.Past
		if len(past) == 0 {
			return s, nil
		}
		last := len(past) - 1
		n := shallow(s)
		n.Document = past[last]
		n.History = domain.History{
			Past:   slices.Clip(past[:last]),
			Future: append([]domain.Document{s.Document}, s.History.Future...),
		}
		n.SelectedID = nil
		return n, nil

	case Redo:
		future := s.History.Future
		if len(future) == 0 {
			return s, nil
		}
		n := shallow(s)
		n.Document = future[0]
		n.History = domain.History{
			Past:   append(slices.Clip(s.History.Past), s.Document),
			Future: slices.Clip(future[1:]),
		}
		n.SelectedID = nil
		return n, nil
	}

	return nil, fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
}

// commit installs elems as the document, pushing the current document onto
// the undo history and clearing the redo side. Edits that matched nothing
// still cost a history entry unless WithSkipNoopHistory is set.
func (e *Editor) commit(s *domain.State, elems []domain.Element, hit bool) *domain.State {
	if !hit && e.skipNoopHistory {
		return s
	}
	n := shallow(s)
	n.Document.Elements = elems
	n.History = domain.History{
		Past:   append(slices.Clip(s.History.Past), s.Document),
		Future: []domain.Document{},
	}
	return n
}

// dedupe gives a fresh id to every element of el's subtree whose id is
// empty or already taken, and marks the resulting ids as taken.
func (e *Editor) dedupe(el domain.Element, taken map[string]bool) domain.Element {
	if el.ID == "" || taken[el.ID] {
		el.ID = e.factory.NewID()
	}
	taken[el.ID] = true
	if el.Styles == nil {
		el.Styles = domain.Styles{}
	}
	if el.Children == nil && (el.Type == domain.ElementContainer || el.Type == domain.ElementGallery) {
		el.Children = []domain.Element{}
	}
	for i, ch := range el.Children {
		el.Children[i] = e.dedupe(ch, taken)
	}
	return el
}

// idSet returns the ids of elems, minus the excluded ones.
func idSet(elems []domain.Element, exclude ...string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range tree.IDs(elems) {
		set[id] = true
	}
	for _, id := range exclude {
		delete(set, id)
	}
	return set
}

// shallow copies the state header. Documents are never mutated in place,
// so the copy can share them with s.
func shallow(s *domain.State) *domain.State {
	n := *s
	return &n
}

func sameSelection(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	return domain.StringPtr(*id)
}
