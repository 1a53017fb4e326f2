// Package match interprets a validated TQL ast.Document against a
// tagtree.Tag, lazily enumerating every successful match as a
// persistent, immutable Match value. The interpreter is a type switch
// over concrete ast node types rather than a method on ast.Node, so
// that ast stays pure data with no dependency on this package.
package match

import (
	"fmt"
	"iter"

	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/tagtree"
	"github.com/tql-lang/tql/pkgs/tqlerr"
)

// Match is a single point in the nondeterministic search: the tag the
// expression has matched up to so far, and the extraction tuple
// accumulated along the way. Every method returns a new Match; none
// mutates Exts or Pos of the receiver, so branches of the search can
// never alias each other's state.
type Match struct {
	Pos  tagtree.Tag
	Exts []any
}

func appendCopy[T any](base []T, items ...T) []T {
	out := make([]T, len(base)+len(items))
	copy(out, base)
	copy(out[len(base):], items)
	return out
}

// progress returns a Match advanced to pos with the same extraction
// tuple.
func (m Match) progress(pos tagtree.Tag) Match {
	return Match{Pos: pos, Exts: m.Exts}
}

// withExt returns a Match with v appended to the extraction tuple.
func (m Match) withExt(v any) Match {
	return Match{Pos: m.Pos, Exts: appendCopy(m.Exts, v)}
}

// subgroup folds everything m accumulated past base's extraction
// length into a single nested slice appended to base's tuple. RepOp
// uses it once per repetition, so a k-times repetition contributes a
// k-element list of per-repetition tuples rather than one flat run-on
// tuple.
func (m Match) subgroup(base Match) Match {
	start := len(base.Exts)
	var group []any
	if len(m.Exts) > start {
		group = append([]any(nil), m.Exts[start:]...)
	}
	return Match{Pos: m.Pos, Exts: appendCopy(base.Exts, any(group))}
}

func matchKey(m Match) string {
	return fmt.Sprintf("%p/%d", m.Pos, len(m.Exts))
}

// hasNext reports whether descending from pos via op reaches any tag at
// all. TravOp uses it to give $ its right-side reading: a boundary that
// succeeds exactly when there is nowhere left to traverse, never a
// predicate tested against a descended-to candidate.
func hasNext(pos tagtree.Tag, op string) bool {
	for range descend(pos, op) {
		return true
	}
	return false
}

// endSucceeds implements $'s left-side reading, used whenever End is
// reached other than as a TravOp's right operand (a bare `$`, End as a
// TravOp's left operand, or End nested under BinOp/MonOp/RepOp/
// ModeSwitch): it succeeds when there is no further tag in mode's
// natural direction, or when pos already sits at the opposite boundary
// (no preceding sibling in BREADTH, no tag parent in DEPTH).
func endSucceeds(pos tagtree.Tag, mode ast.Mode) bool {
	switch mode {
	case ast.Breadth:
		if _, ok := nextSibling(pos); !ok {
			return true
		}
		return !hasPrecedingSibling(pos)
	case ast.Depth:
		if len(pos.Children()) == 0 {
			return true
		}
		parent, ok := pos.Parent()
		return !ok || parent.IsDocument()
	default:
		return true
	}
}

func hasPrecedingSibling(pos tagtree.Tag) bool {
	parent, ok := pos.Parent()
	if !ok {
		return false
	}
	return indexOfTag(parent.Children(), pos) > 0
}

// ctx carries the caller-supplied predicate functions referenced by
// `$name` filters through the otherwise-pure interpreter.
type ctx struct {
	funcs tagtree.FuncMap
}

// FullMatch lazily enumerates every Match obtainable from n starting at
// m, in the order the nondeterministic search discovers them.
func FullMatch(n ast.Node, m Match, funcs tagtree.FuncMap) iter.Seq2[Match, error] {
	c := &ctx{funcs: funcs}
	return func(yield func(Match, error) bool) {
		c.fullMatch(n, m, func(out Match, err error) bool {
			return yield(out, err)
		})
	}
}

// fullMatch is the type-switch interpreter. yield receives (Match, nil)
// for each success and (zero, err) exactly once for a run-time fault,
// after which the branch stops enumerating.
func (c *ctx) fullMatch(n ast.Node, m Match, yield func(Match, error) bool) bool {
	switch t := n.(type) {
	case ast.Tag:
		if t.TagMatch(m.Pos) {
			return yield(m, nil)
		}
		return true

	case *ast.Document:
		return c.fullMatch(t.Expr, m, yield)

	case *ast.End:
		if endSucceeds(m.Pos, t.Mode()) {
			return yield(m, nil)
		}
		return true

	case *ast.TravOp:
		return c.fullMatch(t.Left, m, func(left Match, err error) bool {
			if err != nil {
				return yield(Match{}, err)
			}
			// $ as a traversal's right operand is a boundary test, not a
			// tag predicate: it succeeds exactly when left has nowhere
			// left to go via Op, at left's own position, never at a
			// descended-to candidate (there isn't one).
			if _, ok := t.Right.(*ast.End); ok {
				if hasNext(left.Pos, t.Op) {
					return true
				}
				return yield(left, nil)
			}
			cont := true
			for cand := range descend(left.Pos, t.Op) {
				next := left.progress(cand)
				if !c.fullMatch(t.Right, next, yield) {
					cont = false
					break
				}
			}
			return cont
		})

	case *ast.RepOp:
		return c.repFullMatch(t, m, yield)

	case *ast.MonOp:
		// Skip-before-expand: the unchanged match is always a valid
		// result, whether or not Expr goes on to match anything.
		if !yield(m, nil) {
			return false
		}
		return c.fullMatch(t.Expr, m, yield)

	case *ast.BinOp:
		if !c.fullMatch(t.Left, m, yield) {
			return false
		}
		return c.fullMatch(t.Right, m, yield)

	case *ast.ModeSwitch:
		// `tagexpr{childexpr}` takes one traversal step in the mode
		// tagexpr was validated in (the natural next level: a child for
		// Depth, the next sibling for Breadth) before evaluating
		// childexpr, which then runs in the opposite mode.
		step := ">"
		if t.OuterMode == ast.Breadth {
			step = ":"
		}
		return c.fullMatch(t.TagExpr, m, func(tagM Match, err error) bool {
			if err != nil {
				return yield(Match{}, err)
			}
			cont := true
			for cand := range descend(tagM.Pos, step) {
				next := tagM.progress(cand)
				if !c.fullMatch(t.ChildExpr, next, yield) {
					cont = false
					break
				}
			}
			return cont
		})

	case *ast.Extractors:
		return c.fullMatch(t.Expr, m, func(base Match, err error) bool {
			if err != nil {
				return yield(Match{}, err)
			}
			vals, extractErr := extractAll(base.Pos, t.Extractors)
			if extractErr != nil {
				return yield(Match{}, extractErr)
			}
			return yield(base.withExt(vals), nil)
		})

	case *ast.Filter:
		return c.fullMatch(t.Expr, m, func(base Match, err error) bool {
			if err != nil {
				return yield(Match{}, err)
			}
			ok, filterErr := c.evalBool(t.Filter, base.Pos)
			if filterErr != nil {
				return yield(Match{}, filterErr)
			}
			if !ok {
				return true
			}
			return yield(base, nil)
		})

	default:
		return yield(Match{}, tqlerr.New(tqlerr.InvalidSyntax, "unhandled node type %T", n))
	}
}

// repFullMatch enumerates RepOp with a FIFO worklist over repeat
// counts, deduping visited (position, extraction-depth) states so
// overlapping paths through the tree are reported once. `*` yields the
// zero-repetition state as a success; `+` requires at least one.
func (c *ctx) repFullMatch(n *ast.RepOp, m Match, yield func(Match, error) bool) bool {
	type state struct {
		m     Match
		count int
	}
	seen := make(map[string]bool)
	worklist := []state{{m, 0}}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		key := matchKey(cur.m)
		if seen[key] {
			continue
		}
		seen[key] = true

		if cur.count > 0 || n.RepOp == "*" {
			if !yield(cur.m, nil) {
				return false
			}
		}

		// ignore mirrors the original's `!expr.has_extractors`: a
		// repetition with no Extractors inside it contributes nothing to
		// Exts at all, rather than one empty group per iteration.
		ignore := !n.Expr.HasExtractors()
		for cand := range descend(cur.m.Pos, n.TravOp) {
			next := cur.m.progress(cand)
			cont := c.fullMatch(n.Expr, next, func(out Match, err error) bool {
				if err != nil {
					yield(Match{}, err)
					return false
				}
				var pushed Match
				if ignore {
					pushed = Match{Pos: out.Pos, Exts: cur.m.Exts}
				} else {
					pushed = out.subgroup(cur.m)
				}
				worklist = append(worklist, state{pushed, cur.count + 1})
				return true
			})
			if !cont {
				return false
			}
		}
	}
	return true
}
