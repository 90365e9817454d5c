package eval

import (
	"fmt"
	"strings"
)

// tokenKind identifies a lexical token.
type tokenKind uint8

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokEOF
)

// token is a single lexical token. Pos is the rune offset in the
// normalized source, kept for error messages.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// Normalize substitutes the display-only glyphs a calculator UI inserts
// with their canonical ASCII operators. It is a pure character
// substitution and safe to apply repeatedly.
func Normalize(raw string) string {
	return glyphs.Replace(raw)
}

var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-", // U+2212 minus sign
)

// tokenize scans the normalized source left to right. It is stateless:
// the token slice is re-derived from the text on every call. The slice
// always ends with a tokEOF sentinel.
func tokenize(src string) ([]token, error) {
	runes := []rune(src)
	tokens := make([]token, 0, len(runes)+1)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		case r >= '0' && r <= '9', r == '.':
			start := i
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case r == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++
		case r == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++
		case r == '*':
			tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
			i++
		case r == '/':
			tokens = append(tokens, token{kind: tokSlash, text: "/", pos: i})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d: %w", r, i, ErrSyntax)
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}
