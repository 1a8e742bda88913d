package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/element"
)

// Library implements ports.TemplateLibrary over documents held in memory.
// Every read stamps fresh element ids, so applying a template twice never
// produces clashing ids.
type Library struct {
	docs    map[string]domain.Document
	factory *element.Factory
}

// NewLibrary creates a library from the given templates, keyed by document id.
func NewLibrary(ids element.IDFunc, docs ...domain.Document) *Library {
	m := make(map[string]domain.Document, len(docs))
	for _, d := range docs {
		m[d.ID] = d.Clone()
	}
	return &Library{docs: m, factory: element.NewFactory(ids)}
}

// Get returns a fresh copy of one template.
func (l *Library) Get(ctx context.Context, id string) (domain.Document, error) {
	doc, ok := l.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	return l.stamp(doc), nil
}

// List returns every template sorted by id.
func (l *Library) List(ctx context.Context) ([]domain.Document, error) {
	ids := make([]string, 0, len(l.docs))
	for id := range l.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.stamp(l.docs[id]))
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
