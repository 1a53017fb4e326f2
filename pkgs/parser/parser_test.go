package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/lexer"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	doc, err := Parse(toks)
	require.NoError(t, err)
	return doc
}

func TestParseSingleTag(t *testing.T) {
	doc := mustParse(t, "div")
	nt, ok := doc.Expr.(*ast.NameTag)
	require.True(t, ok, "expected *ast.NameTag, got %T", doc.Expr)
	require.Equal(t, "div", nt.Name)
}

func TestParseCombinedTag(t *testing.T) {
	doc := mustParse(t, "div.active#main")
	outer, ok := doc.Expr.(*ast.BothTag)
	require.True(t, ok, "expected *ast.BothTag, got %T", doc.Expr)
	require.True(t, outer.HasID())
	require.True(t, outer.HasName())
}

func TestParseTraversal(t *testing.T) {
	doc := mustParse(t, "div > span")
	trav, ok := doc.Expr.(*ast.TravOp)
	require.True(t, ok, "expected *ast.TravOp, got %T", doc.Expr)
	require.Equal(t, ">", trav.Op)
}

func TestParseBarLooserThanQmark(t *testing.T) {
	// `a?|b` should parse as (a?)|b, i.e. BinOp(MonOp(a), b).
	doc := mustParse(t, "a?|b")
	bin, ok := doc.Expr.(*ast.BinOp)
	require.True(t, ok, "expected *ast.BinOp, got %T", doc.Expr)
	_, ok = bin.Left.(*ast.MonOp)
	require.True(t, ok, "expected left of BinOp to be MonOp, got %T", bin.Left)
}

func TestParseTravLooserThanBar(t *testing.T) {
	// `(a > b)|c > d` must parse as ((a>b)|c) > d.
	doc := mustParse(t, "(a > b)|c > d")
	outer, ok := doc.Expr.(*ast.TravOp)
	require.True(t, ok, "expected outer *ast.TravOp, got %T", doc.Expr)
	require.Equal(t, ">", outer.Op)
	bin, ok := outer.Left.(*ast.BinOp)
	require.True(t, ok, "expected left of outer TravOp to be BinOp, got %T", outer.Left)
	_, ok = bin.Left.(*ast.TravOp)
	require.True(t, ok, "expected left of BinOp to be the parenthesized TravOp, got %T", bin.Left)
}

func TestParseBareRepOp(t *testing.T) {
	doc := mustParse(t, "div > +")
	rep, ok := doc.Expr.(*ast.RepOp)
	require.True(t, ok, "expected *ast.RepOp, got %T", doc.Expr)
	require.Equal(t, ">", rep.TravOp)
	require.Equal(t, "+", rep.RepOp)
}

func TestParseParenthesizedRepOp(t *testing.T) {
	doc := mustParse(t, "(div >)*")
	rep, ok := doc.Expr.(*ast.RepOp)
	require.True(t, ok, "expected *ast.RepOp, got %T", doc.Expr)
	require.Equal(t, ">", rep.TravOp)
	require.Equal(t, "*", rep.RepOp)
}

func TestParseExtractors(t *testing.T) {
	doc := mustParse(t, "a[node, txt, .href]")
	ext, ok := doc.Expr.(*ast.Extractors)
	require.True(t, ok, "expected *ast.Extractors, got %T", doc.Expr)
	require.Len(t, ext.Extractors, 3)
	require.Equal(t, "node", ext.Extractors[0].Type)
	require.Equal(t, "txt", ext.Extractors[1].Type)
	require.Equal(t, ".href", ext.Extractors[2].Type)
}

func TestParseFilter(t *testing.T) {
	doc := mustParse(t, "a~(.href == 'x')")
	f, ok := doc.Expr.(*ast.Filter)
	require.True(t, ok, "expected *ast.Filter, got %T", doc.Expr)
	op, ok := f.Filter.(*ast.OpFilter)
	require.True(t, ok, "expected *ast.OpFilter, got %T", f.Filter)
	require.Equal(t, "==", op.Op)
}

func TestParseModeSwitch(t *testing.T) {
	doc := mustParse(t, "div{span}")
	ms, ok := doc.Expr.(*ast.ModeSwitch)
	require.True(t, ok, "expected *ast.ModeSwitch, got %T", doc.Expr)
	_, ok = ms.TagExpr.(*ast.NameTag)
	require.True(t, ok)
	_, ok = ms.ChildExpr.(*ast.NameTag)
	require.True(t, ok)
}

func TestParseEndAnchor(t *testing.T) {
	doc := mustParse(t, "div > $")
	trav, ok := doc.Expr.(*ast.TravOp)
	require.True(t, ok, "expected *ast.TravOp, got %T", doc.Expr)
	_, ok = trav.Right.(*ast.End)
	require.True(t, ok, "expected right of TravOp to be *ast.End, got %T", trav.Right)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	toks, err := lexer.Tokenize("div )")
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
}
