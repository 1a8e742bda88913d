/*
Package domain contains the core models of the SiteCanvas page editor.

It defines the element tree a page is made of, the document wrapping it, and
the editor state that is persisted as one unit. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Element: one node of the page tree (heading, container, image, ...).
  - Document: a page, i.e. an ordered sequence of root elements plus metadata.
  - State: document, selection, view mode, workflow stage, user config and
    undo/redo history.
  - StateDiff: a partial update between two states, used by live clients.
*/
package domain
