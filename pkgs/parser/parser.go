// Package parser builds a TQL ast.Document from a token stream, by
// recursive descent with precedence climbing over the outerexpr
// operators. Precedence, loosest to tightest: traversal operators
// (`>` `>>` `:` `::`, including the `+`/`*` repetition attached to
// them), then `|` alternation, then `?` optionality, which binds to
// the nearest atom.
package parser

import (
	"github.com/tql-lang/tql/pkgs/ast"
	"github.com/tql-lang/tql/pkgs/token"
	"github.com/tql-lang/tql/pkgs/tqlerr"
)

type parser struct {
	toks []token.Token
	pos  int
}

// Parse builds the Document wrapping the parsed outerexpr, requiring the
// full token stream (up to the trailing EOF) to be consumed.
func Parse(toks []token.Token) (*ast.Document, error) {
	p := &parser{toks: toks}
	expr, err := p.parseOuter()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return ast.NewDocument(expr), nil
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) curType() token.Type { return p.toks[p.pos].Type }

func (p *parser) peekType() token.Type {
	if p.pos+1 >= len(p.toks) {
		return token.EOF
	}
	return p.toks[p.pos+1].Type
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt token.Type) error {
	if p.curType() != tt {
		return p.errorf("expected %s, found %s", tt, p.cur())
	}
	p.advance()
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return tqlerr.New(tqlerr.InvalidSyntax, format, args...)
}

func isTravOp(tt token.Type) bool {
	switch tt {
	case token.GT, token.DOUBLEGT, token.COLON, token.DOUBLECOLON:
		return true
	}
	return false
}

func travOpLexeme(tt token.Type) string {
	switch tt {
	case token.GT:
		return ">"
	case token.DOUBLEGT:
		return ">>"
	case token.COLON:
		return ":"
	case token.DOUBLECOLON:
		return "::"
	}
	return ""
}

func isRepOp(tt token.Type) bool { return tt == token.PLUS || tt == token.STAR }

// ---- outerexpr, traversal level (loosest) ----

func (p *parser) parseOuter() (ast.Node, error) {
	left, pending, err := p.parseOuterMaybeDangling()
	if err != nil {
		return nil, err
	}
	if pending != "" {
		return nil, p.errorf("dangling traversal operator %q must be followed by '+' or '*'", pending)
	}
	return left, nil
}

// parseOuterMaybeDangling parses the traversal level but, when the
// token stream ends in a bare trav_op immediately followed by ')',
// returns the left-hand node and the pending operator string instead of
// erroring. This lets the enclosing '(' ... ')' atom check whether a
// '+'/'*' follows the closing paren, producing the parenthesized RepOp
// form `(a > b :)+`... i.e. `(expr trav_op)rep_op`.
func (p *parser) parseOuterMaybeDangling() (ast.Node, string, error) {
	left, err := p.parseBar()
	if err != nil {
		return nil, "", err
	}
	for isTravOp(p.curType()) {
		op := travOpLexeme(p.curType())
		p.advance()
		if isRepOp(p.curType()) {
			rep := p.advance().Lexeme
			return ast.NewRepOp(left, op, rep), "", nil
		}
		if p.curType() == token.RPAREN {
			return left, op, nil
		}
		right, err := p.parseBar()
		if err != nil {
			return nil, "", err
		}
		left = ast.NewTravOp(left, op, right)
	}
	return left, "", nil
}

// ---- `|` alternation ----

func (p *parser) parseBar() (ast.Node, error) {
	left, err := p.parseQmark()
	if err != nil {
		return nil, err
	}
	for p.curType() == token.BAR {
		p.advance()
		right, err := p.parseQmark()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(left, right)
	}
	return left, nil
}

// ---- `?` optionality (tightest outerexpr operator) ----

func (p *parser) parseQmark() (ast.Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.curType() == token.QMARK {
		p.advance()
		left = ast.NewMonOp(left)
	}
	return left, nil
}

// ---- atoms, with postfix extractors/filter/mode-switch ----

func (p *parser) parseAtom() (ast.Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curType() {
		case token.LCURLY:
			p.advance()
			child, err := p.parseOuter()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RCURLY); err != nil {
				return nil, err
			}
			base = ast.NewModeSwitch(base, child)
		case token.LBRAK:
			extractors, err := p.parseExtractorList()
			if err != nil {
				return nil, err
			}
			base = ast.NewExtractors(base, extractors)
		case token.TILDE:
			if p.peekType() != token.LPAREN {
				return base, nil
			}
			p.advance() // ~
			p.advance() // (
			fexpr, err := p.parseFilterOr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			base = ast.NewFilter(base, fexpr)
		default:
			return base, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Node, error) {
	switch p.curType() {
	case token.DOLLAR:
		p.advance()
		return ast.NewEnd(), nil
	case token.LPAREN:
		p.advance()
		inner, pending, err := p.parseOuterMaybeDangling()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		if pending != "" {
			if !isRepOp(p.curType()) {
				return nil, p.errorf("dangling traversal operator %q inside parentheses must be followed by '+' or '*'", pending)
			}
			rep := p.advance().Lexeme
			return ast.NewRepOp(inner, pending, rep), nil
		}
		return inner, nil
	default:
		tag, err := p.parseTagExpr()
		if err != nil {
			return nil, err
		}
		return tag, nil
	}
}

// ---- tag expressions ----

func isTagAtomStart(tt token.Type) bool {
	switch tt {
	case token.NAME, token.DOT, token.HASH, token.AT, token.EXMARK:
		return true
	}
	return false
}

func (p *parser) parseTagExpr() (ast.Node, error) {
	left, err := p.parseTagAtom()
	if err != nil {
		return nil, err
	}
	for isTagAtomStart(p.curType()) {
		right, err := p.parseTagAtom()
		if err != nil {
			return nil, err
		}
		left = ast.NewBothTag(left, right)
	}
	return left, nil
}

func (p *parser) parseTagAtom() (ast.Tag, error) {
	switch p.curType() {
	case token.EXMARK:
		p.advance()
		inner, err := p.parseTagAtom()
		if err != nil {
			return nil, err
		}
		return ast.NewNotTag(inner), nil
	case token.AT:
		p.advance()
		return ast.NewWildNameTag(), nil
	case token.NAME:
		name := p.advance().Lexeme
		return ast.NewNameTag(name), nil
	case token.DOT:
		p.advance()
		if p.curType() != token.NAME {
			return nil, p.errorf("expected class name after '.', found %s", p.cur())
		}
		name := p.advance().Lexeme
		return ast.NewClassTag(name), nil
	case token.HASH:
		p.advance()
		if p.curType() != token.NAME {
			return nil, p.errorf("expected id after '#', found %s", p.cur())
		}
		name := p.advance().Lexeme
		return ast.NewIdTag(name), nil
	}
	return nil, p.errorf("expected a tag expression, found %s", p.cur())
}

// ---- extractors ----

func (p *parser) parseExtractorList() ([]*ast.Extractor, error) {
	if err := p.expect(token.LBRAK); err != nil {
		return nil, err
	}
	var list []*ast.Extractor
	if p.curType() != token.RBRAK {
		e, err := p.parseExtractor()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		for p.curType() == token.COMMA {
			p.advance()
			e, err := p.parseExtractor()
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
	}
	if err := p.expect(token.RBRAK); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *parser) parseExtractor() (*ast.Extractor, error) {
	switch p.curType() {
	case token.DOT:
		p.advance()
		if p.curType() != token.NAME {
			return nil, p.errorf("expected attribute name after '.', found %s", p.cur())
		}
		name := p.advance().Lexeme
		return &ast.Extractor{Type: "." + name}, nil
	case token.NAME:
		name := p.advance().Lexeme
		return &ast.Extractor{Type: name}, nil
	}
	return nil, p.errorf("expected an extractor, found %s", p.cur())
}

// ---- filter expressions: || , && , == != ~~ !~ , atoms ----

func (p *parser) parseFilterOr() (ast.FilterExpr, error) {
	left, err := p.parseFilterAnd()
	if err != nil {
		return nil, err
	}
	for p.curType() == token.DOUBLEBAR {
		p.advance()
		right, err := p.parseFilterAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.OpFilter{Left: left, Op: "||", Right: right}
	}
	return left, nil
}

func (p *parser) parseFilterAnd() (ast.FilterExpr, error) {
	left, err := p.parseFilterEq()
	if err != nil {
		return nil, err
	}
	for p.curType() == token.DOUBLEAMPERSAND {
		p.advance()
		right, err := p.parseFilterEq()
		if err != nil {
			return nil, err
		}
		left = &ast.OpFilter{Left: left, Op: "&&", Right: right}
	}
	return left, nil
}

func filterEqOp(tt token.Type) string {
	switch tt {
	case token.DOUBLEEQ:
		return "=="
	case token.EXMARKEQ:
		return "!="
	case token.DOUBLETILDE:
		return "~~"
	case token.EXMARKTILDE:
		return "!~"
	}
	return ""
}

func (p *parser) parseFilterEq() (ast.FilterExpr, error) {
	left, err := p.parseFilterAtom()
	if err != nil {
		return nil, err
	}
	for {
		op := filterEqOp(p.curType())
		if op == "" {
			return left, nil
		}
		p.advance()
		right, err := p.parseFilterAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.OpFilter{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseFilterAtom() (ast.FilterExpr, error) {
	switch p.curType() {
	case token.DOLLAR:
		p.advance()
		if p.curType() != token.NAME {
			return nil, p.errorf("expected function name after '$', found %s", p.cur())
		}
		name := p.advance().Lexeme
		return &ast.FuncFilter{Name: name}, nil
	case token.STRING:
		v := p.advance().Str
		return &ast.LiteralFilter{Value: v}, nil
	case token.NUMBER:
		v := p.advance().Num
		return &ast.LiteralFilter{Value: v}, nil
	case token.DOT:
		p.advance()
		if p.curType() != token.NAME {
			return nil, p.errorf("expected attribute name after '.', found %s", p.cur())
		}
		name := p.advance().Lexeme
		return &ast.ExtractorFilter{Extractor: &ast.Extractor{Type: "." + name}}, nil
	case token.NAME:
		name := p.advance().Lexeme
		return &ast.ExtractorFilter{Extractor: &ast.Extractor{Type: name}}, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseFilterOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errorf("expected a filter expression, found %s", p.cur())
}
