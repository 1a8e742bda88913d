package tree

import (
	"reflect"

	"github.com/aretw0/sitecanvas/pkg/domain"
)

// Find returns the first element with the given id, searching depth-first
// (each root, then its children, before the next root).
func Find(elems []domain.Element, id string) (domain.Element, bool) {
	for _, e := range elems {
		if e.ID == id {
			return e, true
		}
		if e.Children != nil {
			if found, ok := Find(e.Children, id); ok {
				return found, true
			}
		}
	}
	return domain.Element{}, false
}

// Contains reports whether an element with the given id exists.
func Contains(elems []domain.Element, id string) bool {
	_, ok := Find(elems, id)
	return ok
}

// Replace substitutes the element with the given id by repl (the whole
// node, not a merge). Only the path to the match is copied; a miss returns
// a fresh root slice sharing every node with the input.
func Replace(elems []domain.Element, id string, repl domain.Element) []domain.Element {
	out, _ := rewrite(elems, id, func(domain.Element) (domain.Element, bool) {
		return repl, true
	})
	return out
}

// InsertInto appends child to the children of the container with the given
// id. Leaves are not valid drop targets: inserting into them, or into an id
// that does not exist, leaves the tree unchanged.
func InsertInto(elems []domain.Element, containerID string, child domain.Element) []domain.Element {
	out, _ := rewrite(elems, containerID, func(e domain.Element) (domain.Element, bool) {
		if !e.IsContainer() {
			return e, false
		}
		children := make([]domain.Element, len(e.Children), len(e.Children)+1)
		copy(children, e.Children)
		e.Children = append(children, child)
		return e, true
	})
	return out
}

// Append inserts node at the end of the root sequence.
func Append(elems []domain.Element, node domain.Element) []domain.Element {
	out := make([]domain.Element, len(elems), len(elems)+1)
	copy(out, elems)
	return append(out, node)
}

// Delete removes the element with the given id together with its subtree,
// wherever it occurs. A miss leaves the tree unchanged.
func Delete(elems []domain.Element, id string) []domain.Element {
	out, _ := remove(elems, id)
	return out
}

// rewrite applies fn to the first element matching id and rebuilds every
// ancestor on the way back up. The bool reports whether fn changed the tree.
func rewrite(elems []domain.Element, id string, fn func(domain.Element) (domain.Element, bool)) ([]domain.Element, bool) {
	out := make([]domain.Element, len(elems))
	copy(out, elems)

	for i, e := range elems {
		if e.ID == id {
			next, changed := fn(e)
			if changed {
				out[i] = next
			}
			return out, changed
		}
		if e.Children == nil {
			continue
		}
		if !Contains(e.Children, id) {
			continue
		}
		children, changed := rewrite(e.Children, id, fn)
		if changed {
			e.Children = children
			out[i] = e
		}
		return out, changed
	}
	return out, false
}

func remove(elems []domain.Element, id string) ([]domain.Element, bool) {
	for i, e := range elems {
		if e.ID == id {
			out := make([]domain.Element, 0, len(elems)-1)
			out = append(out, elems[:i]...)
			return append(out, elems[i+1:]...), true
		}
		if e.Children == nil {
			continue
		}
		children, changed := remove(e.Children, id)
		if changed {
			out := make([]domain.Element, len(elems))
			copy(out, elems)
			e.Children = children
			out[i] = e
			return out, true
		}
	}
	out := make([]domain.Element, len(elems))
	copy(out, elems)
	return out, false
}

// Walk visits every element depth-first. depth is 0 for roots.
// Returning false from fn skips the element's subtree.
func Walk(elems []domain.Element, fn func(e domain.Element, depth int) bool) {
	walk(elems, 0, fn)
}

func walk(elems []domain.Element, depth int, fn func(domain.Element, int) bool) {
	for _, e := range elems {
		if fn(e, depth) && e.Children != nil {
			walk(e.Children, depth+1, fn)
		}
	}
}

// IDs returns every identifier in the tree in depth-first order.
func IDs(elems []domain.Element) []string {
	var ids []string
	Walk(elems, func(e domain.Element, _ int) bool {
		ids = append(ids, e.ID)
		return true
	})
	return ids
}

// Subtree returns the ids of the element with the given id and all of its
// descendants, or nil when the id is not in the tree.
func Subtree(elems []domain.Element, id string) []string {
	e, ok := Find(elems, id)
	if !ok {
		return nil
	}
	return IDs([]domain.Element{e})
}

// Duplicates returns identifiers that occur more than once.
func Duplicates(elems []domain.Element) []string {
	seen := make(map[string]int)
	var dups []string
	for _, id := range IDs(elems) {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// Count returns the number of elements in the tree.
func Count(elems []domain.Element) int {
	n := 0
	Walk(elems, func(domain.Element, int) bool {
		n++
		return true
	})
	return n
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b []domain.Element) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
