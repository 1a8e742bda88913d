/*
Package dsl provides a Go DSL for programmatically constructing page trees.

It allows templates, tests and tools to declare element hierarchies with a
type-safe, fluent builder instead of nesting struct literals. Every element
starts from the element factory defaults and gets a fresh identifier.

Example usage:

	b := dsl.New(nil)

	b.Container(func(c *dsl.Builder) {
		c.Heading("Acme Bakery").Style(domain.StyleColor, "#7C3AED")
		c.Button("Order now")
	}).Style(domain.StyleDisplay, "flex")

	b.Divider()

	elements := b.Build()
*/
package dsl
