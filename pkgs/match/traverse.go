package match

import (
	"iter"

	"github.com/tql-lang/tql/pkgs/tagtree"
)

// descend yields the tags reachable from pos by a single traversal
// operator: `>` immediate children, `>>` all descendants in document
// order, `:` the immediate next sibling, `::` every later sibling.
func descend(pos tagtree.Tag, op string) iter.Seq[tagtree.Tag] {
	return func(yield func(tagtree.Tag) bool) {
		switch op {
		case ">":
			for _, c := range pos.Children() {
				if !yield(c) {
					return
				}
			}
		case ">>":
			descendAll(pos, yield)
		case ":":
			if next, ok := nextSibling(pos); ok {
				yield(next)
			}
		case "::":
			parent, ok := pos.Parent()
			if !ok {
				return
			}
			sibs := parent.Children()
			idx := indexOfTag(sibs, pos)
			if idx < 0 {
				return
			}
			for _, s := range sibs[idx+1:] {
				if !yield(s) {
					return
				}
			}
		}
	}
}

func descendAll(t tagtree.Tag, yield func(tagtree.Tag) bool) bool {
	for _, c := range t.Children() {
		if !yield(c) {
			return false
		}
		if !descendAll(c, yield) {
			return false
		}
	}
	return true
}

func nextSibling(t tagtree.Tag) (tagtree.Tag, bool) {
	parent, ok := t.Parent()
	if !ok {
		return nil, false
	}
	sibs := parent.Children()
	idx := indexOfTag(sibs, t)
	if idx < 0 || idx+1 >= len(sibs) {
		return nil, false
	}
	return sibs[idx+1], true
}

func indexOfTag(sibs []tagtree.Tag, t tagtree.Tag) int {
	for i, s := range sibs {
		if s == t {
			return i
		}
	}
	return -1
}

// walkAll yields every tag in the tree rooted at t, t itself first, in
// document order; StartMatch uses it to try every tag as a candidate
// start position.
func walkAll(t tagtree.Tag) iter.Seq[tagtree.Tag] {
	return func(yield func(tagtree.Tag) bool) {
		var walk func(tagtree.Tag) bool
		walk = func(n tagtree.Tag) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(t)
	}
}
