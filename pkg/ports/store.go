package ports

import (
	"context"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// StateStore defines the interface for persisting editor state.
// A key names one document workspace; the single-page editor uses one
// well-known key, the server uses one key per document.
type StateStore interface {
	// Save persists the state under key, replacing any previous value.
	Save(ctx context.Context, key string, state *domain.State) error

	// Load retrieves the state stored under key.
	// Returns domain.ErrStateNotFound if nothing is stored.
	Load(ctx context.Context, key string) (*domain.State, error)

	// Delete removes the state stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored key.
	List(ctx context.Context) ([]string, error)
}
