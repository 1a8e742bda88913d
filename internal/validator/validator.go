package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
)

// ValidateDocument walks the element tree and reports unknown element types,
// missing or repeated ids and leaves that carry children.
func ValidateDocument(doc domain.Document) error {
	seen := make(map[string]string)
	var errors []string

	var walk func(elems []domain.Element, path string)
	walk = func(elems []domain.Element, path string) {
		for i, e := range elems {
			at := fmt.Sprintf("%s[%d]", path, i)

			if !e.Type.Valid() {
				errors = append(errors, fmt.Sprintf("Unknown element type '%s' at %s", e.Type, at))
			}
			switch {
			case e.ID == "":
				errors = append(errors, fmt.Sprintf("Missing id at %s", at))
			case seen[e.ID] != "":
				errors = append(errors, fmt.Sprintf("Duplicate id '%s' at %s and %s", e.ID, seen[e.ID], at))
			default:
				seen[e.ID] = at
			}

			canHold := e.Type == domain.ElementContainer || e.Type == domain.ElementGallery
			if !canHold && len(e.Children) > 0 {
				errors = append(errors, fmt.Sprintf("Leaf '%s' (%s) has %d children at %s", e.ID, e.Type, len(e.Children), at))
			}
			walk(e.Children, at+".children")
		}
	}
	walk(doc.Elements, "elements")

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// ValidateLibrary validates every template of lib and reports the failing ones by id.
func ValidateLibrary(ctx context.Context, lib ports.TemplateLibrary) error {
	docs, err := lib.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	var failures []string
	for _, doc := range docs {
		if err := ValidateDocument(doc); err != nil {
			failures = append(failures, fmt.Sprintf("template '%s': %v", doc.ID, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d templates are invalid:\n%s", len(failures), len(docs), strings.Join(failures, "\n"))
	}
	return nil
}
