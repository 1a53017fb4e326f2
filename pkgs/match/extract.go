package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/tagtree"
	"github.com/tql-lang/tql/pkgs/tqlerr"
)

// extractOne evaluates a single extractor against pos: "node" yields
// the tag itself, "txt" its direct text, ".attr" the named attribute's
// value (empty string if absent).
func extractOne(pos tagtree.Tag, e *ast.Extractor) (any, error) {
	switch {
	case e.Type == "node":
		return pos, nil
	case e.Type == "txt":
		return pos.Text(), nil
	case strings.HasPrefix(e.Type, "."):
		v, _ := pos.Attr(e.Type[1:])
		return v, nil
	}
	return nil, tqlerr.New(tqlerr.InvalidExtractor, "invalid extractor %q", e.Type)
}

func extractAll(pos tagtree.Tag, extractors []*ast.Extractor) ([]any, error) {
	if len(extractors) == 0 {
		return nil, nil
	}
	vals := make([]any, len(extractors))
	for i, e := range extractors {
		v, err := extractOne(pos, e)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// evalValue evaluates a FilterExpr leaf (or nested boolean expression
// used where a value is expected) to the value it denotes: a string, an
// int, a tagtree.Tag, or a bool for a nested operator expression.
func (c *ctx) evalValue(f ast.FilterExpr, pos tagtree.Tag) (any, error) {
	switch t := f.(type) {
	case *ast.LiteralFilter:
		return t.Value, nil
	case *ast.ExtractorFilter:
		return extractOne(pos, t.Extractor)
	case *ast.FuncFilter:
		return nil, tqlerr.New(tqlerr.InvalidSyntax, "$%s is a predicate and cannot be used as a value", t.Name)
	case *ast.OpFilter:
		b, err := c.evalBool(t, pos)
		return b, err
	default:
		return nil, tqlerr.New(tqlerr.InvalidSyntax, "unhandled filter expression %T", f)
	}
}

// evalBool evaluates a FilterExpr to a boolean, per the operand table:
// && and || combine booleans; == and != compare values for structural
// equality; ~~ and !~ require a string left operand matched against a
// right operand regular expression; a bare value leaf is truthy when
// non-empty/non-zero.
func (c *ctx) evalBool(f ast.FilterExpr, pos tagtree.Tag) (bool, error) {
	op, ok := f.(*ast.OpFilter)
	if !ok {
		if ff, ok := f.(*ast.FuncFilter); ok {
			fn, ok := c.funcs[ff.Name]
			if !ok {
				return false, tqlerr.New(tqlerr.UnknownFunc, "unknown function $%s", ff.Name)
			}
			return fn(pos), nil
		}
		v, err := c.evalValue(f, pos)
		if err != nil {
			return false, err
		}
		return truthy(v), nil
	}

	switch op.Op {
	case "&&":
		l, err := c.evalBool(op.Left, pos)
		if err != nil || !l {
			return false, err
		}
		return c.evalBool(op.Right, pos)
	case "||":
		l, err := c.evalBool(op.Left, pos)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return c.evalBool(op.Right, pos)
	case "==", "!=":
		lv, err := c.evalValue(op.Left, pos)
		if err != nil {
			return false, err
		}
		rv, err := c.evalValue(op.Right, pos)
		if err != nil {
			return false, err
		}
		eq := valueEqual(lv, rv)
		if op.Op == "!=" {
			return !eq, nil
		}
		return eq, nil
	case "~~", "!~":
		lv, err := c.evalValue(op.Left, pos)
		if err != nil {
			return false, err
		}
		rv, err := c.evalValue(op.Right, pos)
		if err != nil {
			return false, err
		}
		ls, ok := lv.(string)
		if !ok {
			return false, tqlerr.New(tqlerr.RegexType, "left operand of %s must be a string, got %T", op.Op, lv)
		}
		rs, ok := rv.(string)
		if !ok {
			return false, tqlerr.New(tqlerr.RegexType, "right operand of %s must be a string pattern, got %T", op.Op, rv)
		}
		re, err := regexp.Compile(rs)
		if err != nil {
			return false, tqlerr.Wrap(tqlerr.RegexType, err, "invalid regular expression %q", rs)
		}
		matched := re.MatchString(ls)
		if op.Op == "!~" {
			matched = !matched
		}
		return matched, nil
	}
	return false, tqlerr.New(tqlerr.InvalidSyntax, "unhandled filter operator %q", op.Op)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case string:
		return x != ""
	case int:
		return x != 0
	case nil:
		return false
	default:
		return true
	}
}

// valueEqual compares two filter values structurally: tags compare by
// identity (a tag is never equal to any value but itself), everything
// else by ==.
func valueEqual(a, b any) bool {
	at, aIsTag := a.(tagtree.Tag)
	bt, bIsTag := b.(tagtree.Tag)
	if aIsTag || bIsTag {
		return aIsTag && bIsTag && at == bt
	}
	return fmt.Sprint(a) == fmt.Sprint(b) && sameKind(a, b)
}

func sameKind(a, b any) bool {
	switch a.(type) {
	case int:
		_, ok := b.(int)
		return ok
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	default:
		return false
	}
}
