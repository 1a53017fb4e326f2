// Package tql is the public entry point: compile an expression once,
// then match it against any number of tag trees.
package tql

import (
	"iter"

	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/lexer"
	"github.com/tql-lang/tql/pkgs/match"
	"github.com/tql-lang/tql/pkgs/parser"
	"github.com/tql-lang/tql/pkgs/tagtree"
	"github.com/tql-lang/tql/pkgs/validate"
)

// CompiledExpr is a parsed, validated TQL expression ready to match
// against tag trees. It holds no reference to any particular tree, so a
// single CompiledExpr is safe to reuse (and to share across goroutines,
// since matching never mutates it).
type CompiledExpr struct {
	doc *ast.Document
	src string
}

// Compile lexes, parses, and validates expr, returning the first fault
// encountered at whichever stage it occurs.
func Compile(expr string) (*CompiledExpr, error) {
	toks, err := lexer.Tokenize(expr)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	if err := validate.Validate(doc); err != nil {
		return nil, err
	}
	return &CompiledExpr{doc: doc, src: expr}, nil
}

// Match enumerates every match of the compiled expression against root,
// lazily, calling into funcs for any `$name` predicate the expression
// references. The sequence stops early on the first run-time fault,
// which is delivered as the final (Result{}, err) pair.
func (c *CompiledExpr) Match(root tagtree.Tag, funcs tagtree.FuncMap) iter.Seq2[match.Result, error] {
	return match.StartMatch(c.doc, root, funcs)
}

// String renders the expression's parsed form, for debugging and for
// tests that assert on parse shape without depending on ast internals.
func (c *CompiledExpr) String() string {
	return PPrint(c.doc)
}

// Source returns the original expression text Compile was given.
func (c *CompiledExpr) Source() string { return c.src }
