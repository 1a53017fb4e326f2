// Package validate performs the single recursive, mode-propagating pass
// over a parsed ast.Document that assigns every node its traversal Mode
// and rejects expressions that are well-formed syntax but ill-formed
// queries: breadth operators under a depth-only ancestor (or vice
// versa) without an intervening ModeSwitch, malformed tag conjunctions,
// and extractor kinds outside {node, txt, .attr}.
package validate

import (
	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/tqlerr"
)

// Validate assigns Mode to every node of doc and returns the first
// structural fault encountered, depth-first, left-to-right.
func Validate(doc *ast.Document) error {
	return validate(doc, ast.Depth)
}

// validate assigns mode to n and recurses into its children under the
// mode each child must be checked in. Top-level traversal starts in
// Depth mode: a bare expression queries parent/child relationships
// until a ModeSwitch or `:`/`::` operator introduces Breadth.
func validate(n ast.Node, mode ast.Mode) error {
	n.SetMode(mode)

	switch t := n.(type) {
	case *ast.Document:
		return validate(t.Expr, mode)

	case ast.Tag:
		return validateTag(t, mode)

	case *ast.TravOp:
		childMode := mode
		switch t.Op {
		case ">", ">>":
			childMode = ast.Depth
		case ":", "::":
			childMode = ast.Breadth
		}
		if err := validate(t.Left, mode); err != nil {
			return err
		}
		return validate(t.Right, childMode)

	case *ast.RepOp:
		childMode := mode
		switch t.TravOp {
		case ">", ">>":
			childMode = ast.Depth
		case ":", "::":
			childMode = ast.Breadth
		}
		return validate(t.Expr, childMode)

	case *ast.MonOp:
		return validate(t.Expr, mode)

	case *ast.BinOp:
		if err := validate(t.Left, mode); err != nil {
			return err
		}
		return validate(t.Right, mode)

	case *ast.ModeSwitch:
		t.OuterMode = mode
		if err := validate(t.TagExpr, mode); err != nil {
			return err
		}
		return validate(t.ChildExpr, mode.Opposite())

	case *ast.Extractors:
		for _, e := range t.Extractors {
			if !validExtractorType(e.Type) {
				return tqlerr.New(tqlerr.InvalidExtractor, "invalid extractor %q: must be \"node\", \"txt\", or \".attr\"", e.Type)
			}
		}
		return validate(t.Expr, mode)

	case *ast.Filter:
		if err := validateFilterExpr(t.Filter); err != nil {
			return err
		}
		return validate(t.Expr, mode)

	case *ast.End:
		return nil

	default:
		return tqlerr.New(tqlerr.InvalidSyntax, "unhandled node type %T", n)
	}
}

func validExtractorType(t string) bool {
	if t == "node" || t == "txt" {
		return true
	}
	return len(t) > 1 && t[0] == '.'
}

// validateTag checks BothTag's shape constraint: name must appear on
// the left of any conjunction, and at most one id may be present,
// matching the grammar's intent that "div#a" reads naturally while
// "#a div" and "#a#b" do not.
func validateTag(t ast.Tag, mode ast.Mode) error {
	t.SetMode(mode)
	switch tag := t.(type) {
	case *ast.BothTag:
		if tag.Right.HasName() {
			return tqlerr.New(tqlerr.TagShape, "a tag name must come first in a combined tag expression")
		}
		if tag.Left.HasID() && tag.Right.HasID() {
			return tqlerr.New(tqlerr.TagShape, "a tag expression may have at most one id")
		}
		if err := validateTag(tag.Left, mode); err != nil {
			return err
		}
		return validateTag(tag.Right, mode)
	case *ast.NotTag:
		return validateTag(tag.Expr, mode)
	default:
		return nil
	}
}

func validateFilterExpr(f ast.FilterExpr) error {
	switch fe := f.(type) {
	case *ast.OpFilter:
		if err := validateFilterExpr(fe.Left); err != nil {
			return err
		}
		return validateFilterExpr(fe.Right)
	case *ast.ExtractorFilter:
		if !validExtractorType(fe.Extractor.Type) {
			return tqlerr.New(tqlerr.InvalidExtractor, "invalid extractor %q in filter", fe.Extractor.Type)
		}
		return nil
	default:
		return nil
	}
}
