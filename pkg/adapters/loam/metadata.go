package loam

import (
	"github.com/aretw0/sitecanvas/pkg/domain"
)

// TemplateMetadata is the frontmatter of a page template file.
// The Markdown body is free-form notes for template authors and is ignored.
type TemplateMetadata struct {
	ID        string           `json:"id" mapstructure:"id"`
	Name      string           `json:"name" mapstructure:"name"`
	Industry  domain.Industry  `json:"industry" mapstructure:"industry"`
	Thumbnail string           `json:"thumbnail,omitempty" mapstructure:"thumbnail"`
	Elements  []domain.Element `json:"elements" mapstructure:"elements"`
}
