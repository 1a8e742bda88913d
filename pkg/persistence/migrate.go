package persistence

import (
	"errors"
	"fmt"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// ErrUnsupportedVersion is returned by Migrate for records written by a newer schema.
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Migrate upgrades a decoded record to the current schema and repairs the
// parts a decoder may have left empty. Records without a version predate
// versioning and share the version 1 layout.
func Migrate(st *domain.State) (*domain.State, error) {
	if st == nil {
		return nil, errors.New("empty state record")
	}
	if st.Version > domain.SchemaVersion {
		return nil, fmt.Errorf("%w: %d (current %d)", ErrUnsupportedVersion, st.Version, domain.SchemaVersion)
	}
	st.Version = domain.SchemaVersion

	if st.Document.Elements == nil {
		st.Document.Elements = []domain.Element{}
	}
	domain.NormalizeElements(st.Document.Elements)
	if st.History.Past == nil {
		st.History.Past = []domain.Document{}
	}
	if st.History.Future == nil {
		st.History.Future = []domain.Document{}
	}
	for i := range st.History.Past {
		domain.NormalizeElements(st.History.Past[i].Elements)
	}
	for i := range st.History.Future {
		domain.NormalizeElements(st.History.Future[i].Elements)
	}

	if !st.ViewMode.Valid() {
		st.ViewMode = domain.ViewDesktop
	}
	if !st.Stage.Valid() {
		st.Stage = domain.StageRegistration
	}
	return st, nil
}
