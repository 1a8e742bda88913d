package editor

import (
	"log/slog"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/persistence"
	"go.opentelemetry.io/otel/trace"
)

// Generator builds a full page for a business profile.
type Generator func(industry domain.Industry, businessName, color string, ids element.IDFunc) domain.Document

// Option configures an Editor.
type Option func(*Editor)

// WithFactory sets the element factory, and with it the id generator.
func WithFactory(f *element.Factory) Option {
	return func(e *Editor) {
		e.factory = f
	}
}

// WithGenerator replaces the industry page generator.
func WithGenerator(g Generator) Option {
	return func(e *Editor) {
		e.generate = g
	}
}

// WithBridge persists every change through b. Without a bridge the editor
// is memory-only and Save does nothing.
func WithBridge(b *persistence.Bridge) Option {
	return func(e *Editor) {
		e.bridge = b
	}
}

// WithKey labels logs, spans and events with a document key.
// Defaults to the bridge key.
func WithKey(key string) Option {
	return func(e *Editor) {
		e.key = key
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithTracer sets the tracer used for command spans.
// Defaults to the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Editor) {
		e.tracer = t
	}
}

// WithSkipNoopHistory stops edits that match no element (Update, Delete or
// InsertIntoContainer on a missing id, inserting into a leaf) from pushing a
// duplicate snapshot onto the undo history.
func WithSkipNoopHistory() Option {
	return func(e *Editor) {
		e.skipNoopHistory = true
	}
}

// WithDeselectAncestorOnly makes Delete clear the selection only when the
// selected element was inside the removed subtree. By default every
// Delete clears it.
func WithDeselectAncestorOnly() Option {
	return func(e *Editor) {
		e.deselectAncestorOnly = true
	}
}
