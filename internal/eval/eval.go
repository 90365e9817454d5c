package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluate normalizes, tokenizes, parses, and evaluates the expression.
// It returns the numeric result, or an error satisfying errors.Is for
// ErrSyntax or ErrDivideByZero. It never panics for any input.
func Evaluate(raw string) (float64, error) {
	src := Normalize(raw)
	if strings.TrimSpace(src) == "" {
		return 0, fmt.Errorf("empty expression: %w", ErrSyntax)
	}

	tokens, err := tokenize(src)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parse()
	if err != nil {
		return 0, err
	}

	return root.eval()
}

// Format converts a result to its display string. The policy is Go's
// shortest round-trip representation ('g', precision -1): trailing zeros
// are dropped and very large or small magnitudes switch to e-notation.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
