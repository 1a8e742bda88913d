package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/xlab/treeprint"
)

const summaryWidth = 40

// Outline prints the element tree of doc, marking the selected element.
func Outline(doc domain.Document, selected string) string {
	root := treeprint.New()
	name := doc.Name
	if name == "" {
		name = "(untitled)"
	}
	root.SetValue(name)
	addOutline(root, doc.Elements, selected)
	return root.String()
}

func addOutline(t treeprint.Tree, elems []domain.Element, selected string) {
	for _, e := range elems {
		label := outlineLabel(e)
		if e.ID == selected {
			label = "* " + label
		}
		if e.IsContainer() {
			addOutline(t.AddBranch(label), e.Children, selected)
			continue
		}
		t.AddNode(label)
	}
}

func outlineLabel(e domain.Element) string {
	switch {
	case e.Type == domain.ElementImage:
		return fmt.Sprintf("%s [%s] %s", e.Type, e.ID, summarize(e.Src))
	case e.Content != "":
		return fmt.Sprintf("%s [%s] %q", e.Type, e.ID, summarize(e.Content))
	default:
		return fmt.Sprintf("%s [%s]", e.Type, e.ID)
	}
}

func summarize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= summaryWidth {
		return s
	}
	r := []rune(s)
	return string(r[:summaryWidth-1]) + "…"
}

// Markdown summarizes doc as a Markdown document, one block per element.
// Containers are flattened into their children.
func Markdown(doc domain.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(doc.Name))
	writeMarkdown(&b, doc.Elements)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMarkdown(b *strings.Builder, elems []domain.Element) {
	for _, e := range elems {
		switch e.Type {
		case domain.ElementHeading:
			fmt.Fprintf(b, "## %s\n\n", escapeMarkdown(e.Content))
		case domain.ElementParagraph:
			fmt.Fprintf(b, "%s\n\n", escapeMarkdown(e.Content))
		case domain.ElementButton:
			fmt.Fprintf(b, "**[%s]**\n\n", escapeMarkdown(e.Content))
		case domain.ElementImage:
			fmt.Fprintf(b, "![%s](%s)\n\n", escapeMarkdown(e.Alt), e.Src)
		case domain.ElementIcon:
			fmt.Fprintf(b, "`%s`\n\n", strings.ReplaceAll(e.Content, "`", ""))
		case domain.ElementDivider:
			b.WriteString("---\n\n")
		case domain.ElementContainer, domain.ElementGallery:
			writeMarkdown(b, e.Children)
		}
	}
}

var markdownSpecial = regexp.MustCompile("([\\\\`*_\\[\\]#<>])")

func escapeMarkdown(s string) string {
	return markdownSpecial.ReplaceAllString(s, `\$1`)
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)

// PublishURL returns the address a site for businessName is published at:
// the lowercased name with whitespace runs turned into dashes, as a
// subdomain of example.com.
func PublishURL(businessName string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(businessName)), "-")
	slug = strings.Trim(slugInvalid.ReplaceAllString(slug, ""), "-")
	if slug == "" {
		slug = "site"
	}
	return "https://" + slug + ".example.com"
}
