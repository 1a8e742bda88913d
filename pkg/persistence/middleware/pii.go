package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
)

// Mask replaces every redacted span.
const Mask = "***"

// DefaultPIIPatterns match e-mail addresses and phone numbers, the contact
// details business pages usually carry.
var DefaultPIIPatterns = []string{
	`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
	`\+?\d[\d ()-]{7,}\d`,
}

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks text matching the patterns
// in element content and alt text, in the page and in every history snapshot.
// Masking is one-way: loaded states keep the mask.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, key string, state *domain.State) error {
	// Clone so the editor's in-memory state keeps the real values.
	cloned := state.Clone()

	m.maskDocument(&cloned.Document)
	for i := range cloned.History.Past {
		m.maskDocument(&cloned.History.Past[i])
	}
	for i := range cloned.History.Future {
		m.maskDocument(&cloned.History.Future[i])
	}

	return m.next.Save(ctx, key, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, key string) (*domain.State, error) {
	return m.next.Load(ctx, key)
}

func (m *piiMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func (m *piiMiddleware) maskDocument(doc *domain.Document) {
	maskElements(doc.Elements, m.patterns)
}

func maskElements(elems []domain.Element, patterns []*regexp.Regexp) {
	for i := range elems {
		elems[i].Content = maskText(elems[i].Content, patterns)
		elems[i].Alt = maskText(elems[i].Alt, patterns)
		maskElements(elems[i].Children, patterns)
	}
}

func maskText(s string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
