/*
Package sitecanvas edits single-page business websites kept as a tree of
visual elements.

A document is an ordered sequence of elements (headings, paragraphs, buttons,
images, icons, dividers) where containers and galleries hold their own child
sequences. Every edit is an editor command applied to an immutable state; the
state carries the document, the selection, the preview width, the workflow
stage and an undo history of document snapshots.

# Concept

The Site type serializes commands per document key, persists each resulting
state through a StateStore (memory, file, sqlite or redis) and reports what a
command changed as a StateDiff. Templates come from a directory of Markdown
files with YAML frontmatter or from the built-in industry generator. Any
document can be published as a standalone, sanitized HTML page.

# Usage

	site, err := sitecanvas.New(sitecanvas.WithStore(file.New("./pages")))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, diff, err := site.Apply(ctx, "home", "insert_into_container", map[string]any{
		"containerId": "e1",
		"type":        "button",
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Println(state.Selected(), diff.History.Past)

	page, err := site.Publish(ctx, "home", domain.ViewMobile)

The same operations are exposed over HTTP (pkg/adapters/http), the Model
Context Protocol (pkg/adapters/mcp) and the sitecanvas command line.
*/
package sitecanvas
