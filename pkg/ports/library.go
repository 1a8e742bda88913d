package ports

import (
	"context"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// TemplateLibrary is a read-only source of page templates.
type TemplateLibrary interface {
	// List returns every template, each with freshly assigned element ids.
	List(ctx context.Context) ([]domain.Document, error)

	// Get returns one template by id, with freshly assigned element ids.
	Get(ctx context.Context, id string) (domain.Document, error)
}
