package eval

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"single number", "42", 42},
		{"decimal", "3.5", 3.5},
		{"leading dot decimal", ".5", 0.5},
		{"addition", "1+2", 3},
		{"subtraction", "5-3", 2},
		{"multiplication", "6*7", 42},
		{"division", "8/2", 4},
		{"precedence over scan order", "2+3*4", 14},
		{"parens override precedence", "(2+3)*4", 20},
		{"left associative subtraction", "10-3-2", 5},
		{"left associative division", "100/5/2", 10},
		{"mixed precedence", "2*3+4*5", 26},
		{"unary minus", "-5", -5},
		{"double unary minus", "--5", 5},
		{"unary minus on parens", "-(2+3)", -5},
		{"unary after binary", "2*-3", -6},
		{"subtract negative", "5--2", 7},
		{"nested parens", "((1+2)*(3+4))", 21},
		{"whitespace skipped", " 1 +\t2 ", 3},
		{"multiply glyph", "2×3", 6},
		{"divide glyph", "8÷2", 4},
		{"unicode minus glyph", "7−2", 5},
		{"float division", "1/4", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.in)
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvaluateSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"lone open paren", "("},
		{"unclosed paren", "(2+3"},
		{"stray close paren", "2)"},
		{"trailing operator", "2+"},
		{"leading binary operator", "*2"},
		{"adjacent operators", "2++3"},
		{"bad character", "2+x"},
		{"double dot number", "1.2.3"},
		{"lone dot", "."},
		{"adjacent numbers", "2 3"},
		{"empty parens", "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.in)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Evaluate(%q) error = %v, want ErrSyntax", tt.in, err)
			}
		})
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	for _, in := range []string{"1/0", "0/0", "1/(3-3)", "5÷0", "1/-0"} {
		_, err := Evaluate(in)
		if !errors.Is(err, ErrDivideByZero) {
			t.Errorf("Evaluate(%q) error = %v, want ErrDivideByZero", in, err)
		}
	}
}

func TestEvaluateDivideByZeroBeatsSyntaxOrder(t *testing.T) {
	// The divisor is evaluated before the check, so a nested failure in
	// the divisor wins over the zero check.
	_, err := Evaluate("1/(1/0)")
	if !errors.Is(err, ErrDivideByZero) {
		t.Errorf("error = %v, want ErrDivideByZero", err)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("2×3÷4−1")
	if got != "2*3/4-1" {
		t.Errorf("Normalize = %q, want %q", got, "2*3/4-1")
	}

	// Idempotent on already-canonical text.
	if again := Normalize(got); again != got {
		t.Errorf("second Normalize = %q, want %q", again, got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{2.5, "2.5"},
		{-5, "-5"},
		{1.0 / 3.0, "0.3333333333333333"},
		{1e21, "1e+21"},
		{0.0000001, "1e-07"},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestEvaluateNeverPanics sweeps random strings over the calculator
// alphabet: every input must resolve to a value or one of the two
// sentinel errors.
func TestEvaluateNeverPanics(t *testing.T) {
	const alphabet = "0123456789.+-*/()×÷ "
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		var b strings.Builder
		n := rng.Intn(12)
		for j := 0; j < n; j++ {
			b.WriteByte(alphabet[rng.Intn(10)]) // digit-heavy prefix
			b.WriteRune([]rune(alphabet)[rng.Intn(len([]rune(alphabet)))])
		}
		in := b.String()

		v, err := Evaluate(in)
		switch {
		case err == nil:
			if math.IsNaN(v) {
				// Plain arithmetic over finite literals without a zero
				// divisor cannot produce NaN, but Inf/Inf could; either
				// way it must not have panicked, which is the property
				// under test.
				continue
			}
		case errors.Is(err, ErrSyntax), errors.Is(err, ErrDivideByZero):
		default:
			t.Fatalf("Evaluate(%q) returned untyped error: %v", in, err)
		}
	}
}
