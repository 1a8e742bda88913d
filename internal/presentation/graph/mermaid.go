package graph

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// Overlay contains editor state to visualize on the graph.
type Overlay struct {
	// Selected is the selected element id.
	Selected string
	// Changed lists element ids touched by the last command.
	Changed []string
}

const rootID = "page"

// GenerateMermaid produces a Mermaid flowchart of the page tree.
// It applies semantic styling:
// - Page: ((Circle))
// - Container, Gallery: [[Subroutine]]
// - Image: [/Parallelogram/]
// - Default: [Rectangle]
// It also applies overlay styles (Changed/Selected) if provided.
func GenerateMermaid(doc domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	name := doc.Name
	if name == "" {
		name = "page"
	}
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", rootID, label(name)))
	writeElements(&sb, rootID, doc.Elements)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Changed {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && id != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s changed;\n", safeID))
			}
		}

		if overlay.Selected != "" {
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", sanitizeMermaidID(overlay.Selected)))
		}
	}

	return sb.String()
}

func writeElements(sb *strings.Builder, parent string, elems []domain.Element) {
	for _, e := range elems {
		safeID := sanitizeMermaidID(e.ID)

		opener, closer := "[", "]"
		switch e.Type {
		case domain.ElementContainer, domain.ElementGallery:
			opener, closer = "[[", "]]"
		case domain.ElementImage:
			opener, closer = "[/", "/]"
		}

		text := string(e.Type)
		if e.Content != "" {
			text += " <br/> " + label(e.Content)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, text, closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", parent, safeID))

		writeElements(sb, safeID, e.Children)
	}
}

// label shortens text and strips characters Mermaid cannot quote.
func label(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.NewReplacer("\"", "'", "<", "‹", ">", "›").Replace(s)
	if utf8.RuneCountInString(s) > 30 {
		s = string([]rune(s)[:29]) + "…"
	}
	return s
}

// sanitizeMermaidID maps element ids (often UUIDs) to Mermaid node ids.
// The prefix keeps ids starting with a digit valid.
func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return "el_" + s
}
