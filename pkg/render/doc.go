// Package render turns a page document into read-only outputs: the static
// HTML that gets published, a text outline for terminals and a Markdown
// summary. Rendering never mutates the document.
package render
