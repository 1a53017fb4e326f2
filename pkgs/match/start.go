package match

import (
	"fmt"
	"iter"
	"strings"

	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/tagtree"
)

// Result is one successful top-level match: the tag it matched at and
// the extraction tuple gathered along the way (empty if the compiled
// expression used no Extractors node).
type Result struct {
	Tag  tagtree.Tag
	Exts []any
}

// StartMatch tries every tag in the tree rooted at root, document
// order, as a candidate match origin, running the compiled expression
// from each. Results are deduplicated by (tag identity, extraction
// tuple) so a tag reachable by more than one path through an
// alternation or repetition is reported once.
func StartMatch(doc *ast.Document, root tagtree.Tag, funcs tagtree.FuncMap) iter.Seq2[Result, error] {
	c := &ctx{funcs: funcs}
	return func(yield func(Result, error) bool) {
		seen := make(map[string]bool)
		for candidate := range walkAll(root) {
			cont := c.fullMatch(doc.Expr, Match{Pos: candidate}, func(m Match, err error) bool {
				if err != nil {
					yield(Result{}, err)
					return false
				}
				key := resultKey(m)
				if seen[key] {
					return true
				}
				seen[key] = true
				return yield(Result{Tag: m.Pos, Exts: m.Exts}, nil)
			})
			if !cont {
				return
			}
		}
	}
}

func resultKey(m Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p|", m.Pos)
	for _, e := range m.Exts {
		fmt.Fprintf(&b, "%s;", extKey(e))
	}
	return b.String()
}

func extKey(v any) string {
	switch x := v.(type) {
	case tagtree.Tag:
		return fmt.Sprintf("tag:%p", x)
	case []any:
		var b strings.Builder
		b.WriteByte('(')
		for _, e := range x {
			b.WriteString(extKey(e))
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return b.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
