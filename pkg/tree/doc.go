/*
Package tree implements the pure operations of the page editor over a
sequence of root elements: find, replace, insert into a container, insert at
the root and delete.

None of the functions mutate their input. Edits copy only the nodes on the
path from the root to the edited element; every other subtree is shared with
the input, so unchanged branches compare cheaply and can be kept in undo
snapshots without extra copies.
*/
package tree
