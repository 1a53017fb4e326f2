package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tql-lang/tql/pkgs/token"
)

type tokenExpectation struct {
	Type   token.Type
	Lexeme string
}

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	return toks
}

func types(toks []token.Token) []tokenExpectation {
	out := make([]tokenExpectation, len(toks))
	for i, tok := range toks {
		out[i] = tokenExpectation{Type: tok.Type, Lexeme: tok.Lexeme}
	}
	return out
}

func TestTokenizePunctuationLongestMatch(t *testing.T) {
	toks := tokenize(t, ">> > || | :: : && & ~~ !~ ~ != == !")
	want := []tokenExpectation{
		{token.DOUBLEGT, ">>"},
		{token.GT, ">"},
		{token.DOUBLEBAR, "||"},
		{token.BAR, "|"},
		{token.DOUBLECOLON, "::"},
		{token.COLON, ":"},
		{token.DOUBLEAMPERSAND, "&&"},
		{token.AMPERSAND, "&"},
		{token.DOUBLETILDE, "~~"},
		{token.EXMARKTILDE, "!~"},
		{token.TILDE, "~"},
		{token.EXMARKEQ, "!="},
		{token.DOUBLEEQ, "=="},
		{token.EXMARK, "!"},
		{token.EOF, ""},
	}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSingleCharPunct(t *testing.T) {
	toks := tokenize(t, "[](){}+*$,@.#?")
	want := []tokenExpectation{
		{token.LBRAK, "["}, {token.RBRAK, "]"},
		{token.LPAREN, "("}, {token.RPAREN, ")"},
		{token.LCURLY, "{"}, {token.RCURLY, "}"},
		{token.PLUS, "+"}, {token.STAR, "*"},
		{token.DOLLAR, "$"}, {token.COMMA, ","},
		{token.AT, "@"}, {token.DOT, "."},
		{token.HASH, "#"}, {token.QMARK, "?"},
		{token.EOF, ""},
	}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeNameAndNumber(t *testing.T) {
	toks := tokenize(t, "div data-x a1 8080")
	require.Len(t, toks, 5)
	require.Equal(t, token.NAME, toks[0].Type)
	require.Equal(t, "div", toks[0].Lexeme)
	require.Equal(t, token.NAME, toks[1].Type)
	require.Equal(t, "data-x", toks[1].Lexeme)
	require.Equal(t, token.NAME, toks[2].Type)
	require.Equal(t, "a1", toks[2].Lexeme)
	require.Equal(t, token.NUMBER, toks[3].Type)
	require.Equal(t, 8080, toks[3].Num)
}

func TestTokenizeString(t *testing.T) {
	toks := tokenize(t, `'hello world'`)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "hello world", toks[0].Str)
}

func TestIllegalCharacter(t *testing.T) {
	_, err := Tokenize("^")
	require.Error(t, err)
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`'abc`)
	require.Error(t, err)
}

// TestDecodeStringRoundTrip encodes the escape round-trip property: every
// supported escape decodes to its described value, and any unrecognized
// escape passes through literally.
func TestDecodeStringRoundTrip(t *testing.T) {
	got, err := DecodeString(`\n\x20 \0\z`)
	require.NoError(t, err)
	require.Equal(t, "\n  \x00\\z", got)
}

func TestDecodeStringSimpleEscapes(t *testing.T) {
	got, err := DecodeString(`a\tb\nc\\d\'e`)
	require.NoError(t, err)
	require.Equal(t, "a\tb\nc\\d'e", got)
}

func TestDecodeStringOctal(t *testing.T) {
	got, err := DecodeString(`\101\102\103`)
	require.NoError(t, err)
	require.Equal(t, "ABC", got)
}

func TestDecodeStringUnicode(t *testing.T) {
	got, err := DecodeString(`é\U0001F600`)
	require.NoError(t, err)
	require.Equal(t, "é\U0001F600", got)
}
