package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
)

// Library adapts a Loam repository of template files to ports.TemplateLibrary.
type Library struct {
	Repo    *loam.TypedRepository[TemplateMetadata]
	factory *element.Factory
}

// New creates a library over repo. Every template handed out gets fresh
// element identifiers from ids (random when nil).
func New(repo *loam.TypedRepository[TemplateMetadata], ids element.IDFunc) *Library {
	return &Library{
		Repo:    repo,
		factory: element.NewFactory(ids),
	}
}

// Open initializes a read-only, strict Loam repository at dir and wraps it.
func Open(dir string, ids element.IDFunc) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across serializers.
	// Read-only avoids Loam's sandbox copy; templates are never written here.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[TemplateMetadata](repo), ids), nil
}

// List returns every template, ordered by id.
func (l *Library) List(ctx context.Context) ([]domain.Document, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.stamp(index[id]))
	}
	return out, nil
}

// Get returns the template with the given id.
func (l *Library) Get(ctx context.Context, id string) (domain.Document, error) {
	index, err := l.index(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	doc, ok := index[trimExtension(id)]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
	}
	return l.stamp(doc), nil
}

// index loads every template keyed by its id.
// A frontmatter id wins over the file name.
func (l *Library) index(ctx context.Context) (map[string]domain.Document, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	out := make(map[string]domain.Document, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		name := doc.Data.Name
		if name == "" {
			name = id
		}
		industry := doc.Data.Industry
		if industry == "" {
			industry = domain.IndustryOther
		}
		elems := domain.CloneElements(doc.Data.Elements)
		if elems == nil {
			elems = []domain.Element{}
		}
		domain.NormalizeElements(elems)

		out[id] = domain.Document{
			ID:        id,
			Name:      name,
			Industry:  industry,
			Thumbnail: doc.Data.Thumbnail,
			Elements:  elems,
		}
	}
	return out, nil
}

func (l *Library) stamp(doc domain.Document) domain.Document {
	out := doc.Clone()
	for i, e := range out.Elements {
		out.Elements[i] = l.factory.Reassign(e)
	}
	return out
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
