package lexer

import (
	"strconv"
	"strings"

	"github.com/tql-lang/tql/pkgs/tqlerr"
)

var simpleEscapes = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// DecodeString decodes the escape sequences of a TQL string literal's raw
// body (the text between the quotes, quotes already stripped). Supported
// escapes: the simple backslash escapes in simpleEscapes, octal \NNN
// (1-3 digits), \xHH, \uHHHH, \UHHHHHHHH; any other \c is kept literal
// as the two characters \c.
func DecodeString(raw string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] != '\\' || i+1 >= len(raw) {
			out.WriteByte(raw[i])
			i++
			continue
		}
		c := raw[i+1]
		if r, ok := simpleEscapes[rune(c)]; ok {
			out.WriteRune(r)
			i += 2
			continue
		}
		switch {
		case c >= '0' && c <= '7':
			n, width := readDigits(raw[i+1:], 3, isOctalDigit)
			v, err := strconv.ParseInt(n, 8, 32)
			if err != nil {
				return "", tqlerr.Wrap(tqlerr.IllegalCharacter, err, "invalid octal escape \\%s", n)
			}
			out.WriteByte(byte(v))
			i += 1 + width
			continue
		case c == 'x':
			n, ok := fixedHexDigits(raw[i+2:], 2)
			if !ok {
				out.WriteString(raw[i : i+2])
				i += 2
				continue
			}
			v, _ := strconv.ParseInt(n, 16, 32)
			out.WriteByte(byte(v))
			i += 2 + len(n)
			continue
		case c == 'u':
			n, ok := fixedHexDigits(raw[i+2:], 4)
			if !ok {
				out.WriteString(raw[i : i+2])
				i += 2
				continue
			}
			v, _ := strconv.ParseInt(n, 16, 32)
			out.WriteRune(rune(v))
			i += 2 + len(n)
			continue
		case c == 'U':
			n, ok := fixedHexDigits(raw[i+2:], 8)
			if !ok {
				out.WriteString(raw[i : i+2])
				i += 2
				continue
			}
			v, _ := strconv.ParseInt(n, 16, 32)
			out.WriteRune(rune(v))
			i += 2 + len(n)
			continue
		}
		// Unrecognized escape: kept literal as "\c".
		out.WriteByte('\\')
		out.WriteByte(c)
		i += 2
	}
	return out.String(), nil
}

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func readDigits(s string, max int, pred func(byte) bool) (string, int) {
	n := 0
	for n < max && n < len(s) && pred(s[n]) {
		n++
	}
	return s[:n], n
}

// fixedHexDigits requires exactly n hex digits at the start of s; if fewer
// are available the escape is not well-formed and is left to the caller to
// pass through literally.
func fixedHexDigits(s string, n int) (string, bool) {
	if len(s) < n {
		return "", false
	}
	for i := 0; i < n; i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return "", false
		}
	}
	return s[:n], true
}
