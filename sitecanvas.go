package sitecanvas

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	loamAdapter "github.com/aretw0/sitecanvas/pkg/adapters/loam"
	"github.com/aretw0/sitecanvas/pkg/adapters/memory"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/ports"
	"github.com/aretw0/sitecanvas/pkg/render"
	"github.com/aretw0/sitecanvas/pkg/session"
	"github.com/aretw0/sitecanvas/pkg/templates"
)

// SampleBusiness names the business in built-in template previews.
const SampleBusiness = "My Business"

// Site is the high-level entry point for the library.
// It serializes commands per document key, persists every change and
// renders documents for publishing.
type Site struct {
	manager     *session.Manager
	store       ports.StateStore
	library     ports.TemplateLibrary
	libraryDir  string
	locker      ports.DistributedLocker
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	editorOpts  []editor.Option
	sessionOpts []session.Option
}

// Option defines a functional option for configuring the Site.
type Option func(*Site)

// WithStore sets the state store. The default keeps documents in memory.
func WithStore(store ports.StateStore) Option {
	return func(s *Site) {
		s.store = store
	}
}

// WithTemplateLibrary injects a custom template library.
func WithTemplateLibrary(lib ports.TemplateLibrary) Option {
	return func(s *Site) {
		s.library = lib
	}
}

// WithTemplateDir loads the template library from a directory of Markdown
// files with YAML frontmatter.
func WithTemplateDir(dir string) Option {
	return func(s *Site) {
		s.libraryDir = dir
	}
}

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Site) {
		s.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Site) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// WithEditorOptions passes options to every editor the site opens.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(s *Site) {
		s.editorOpts = append(s.editorOpts, opts...)
	}
}

// WithSessionOptions passes extra options to the session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Site) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// New initializes a Site.
func New(opts ...Option) (*Site, error) {
	s := &Site{}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = memory.NewStore()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.library == nil && s.libraryDir != "" {
		lib, err := loamAdapter.Open(s.libraryDir, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open template library: %w", err)
		}
		s.library = lib
	}

	sessionOpts := []session.Option{
		session.WithLogger(s.logger),
		session.WithLifecycleHooks(s.hooks),
		session.WithEditorOptions(s.editorOpts...),
	}
	if s.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(s.locker))
	}
	sessionOpts = append(sessionOpts, s.sessionOpts...)
	s.manager = session.NewManager(s.store, sessionOpts...)

	return s, nil
}

// Open returns the document stored under key, creating the default page
// when the key is unknown.
func (s *Site) Open(ctx context.Context, key string) (*domain.State, error) {
	return s.manager.LoadOrStart(ctx, key)
}

// Dispatch applies one command to the document under key.
func (s *Site) Dispatch(ctx context.Context, key string, cmd editor.Command) (*domain.State, *domain.StateDiff, error) {
	return s.manager.Apply(ctx, key, cmd)
}

// Apply decodes a command from its wire name and payload and dispatches it.
func (s *Site) Apply(ctx context.Context, key, name string, payload map[string]any) (*domain.State, *domain.StateDiff, error) {
	cmd, err := editor.Decode(name, payload)
	if err != nil {
		return nil, nil, err
	}
	return s.Dispatch(ctx, key, cmd)
}

// UseTemplate replaces the document under key with a template from the library.
func (s *Site) UseTemplate(ctx context.Context, key, templateID string) (*domain.State, *domain.StateDiff, error) {
	if s.library == nil {
		return nil, nil, fmt.Errorf("%w: no template library configured", domain.ErrTemplateNotFound)
	}
	doc, err := s.library.Get(ctx, templateID)
	if err != nil {
		return nil, nil, err
	}
	return s.Dispatch(ctx, key, editor.SetTemplate{Document: doc})
}

// Templates lists the library templates. Without a library it lists one
// generated page per built-in industry.
func (s *Site) Templates(ctx context.Context) ([]domain.Document, error) {
	if s.library != nil {
		return s.library.List(ctx)
	}
	var out []domain.Document
	for _, ind := range templates.Industries() {
		out = append(out, templates.Generate(ind, SampleBusiness, element.AccentColor, nil))
	}
	return out, nil
}

// Publish renders the stored document as a standalone HTML page.
// An empty mode uses the document's current view mode.
func (s *Site) Publish(ctx context.Context, key string, mode domain.ViewMode) ([]byte, error) {
	state, err := s.manager.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = state.ViewMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidViewMode, mode)
	}
	return render.HTML(state.Document, mode)
}

// Delete removes the document under key.
func (s *Site) Delete(ctx context.Context, key string) error {
	return s.manager.Delete(ctx, key)
}

// List returns the stored document keys.
func (s *Site) List(ctx context.Context) ([]string, error) {
	return s.manager.List(ctx)
}

// Close waits for pending writes of the open documents and stops their
// writers. The site stays usable; documents reopen from the store.
func (s *Site) Close(ctx context.Context) error {
	return s.manager.Close(ctx)
}

// Manager returns the underlying session manager.
func (s *Site) Manager() *session.Manager {
	return s.manager
}
