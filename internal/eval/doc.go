// Package eval evaluates arithmetic expressions.
//
// Evaluation is a pure function over the expression text. Each call
// normalizes display glyphs to ASCII operators, tokenizes, parses with
// precedence climbing, and walks the resulting tree:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := NUMBER | '(' expr ')' | '-' factor
//
// Addition/subtraction and multiplication/division are left-associative;
// unary minus binds tighter than any binary operator. Nothing is cached:
// inputs are short and re-parsing keeps the evaluator stateless.
//
// Failures are reported through two sentinel errors. ErrSyntax covers
// every malformed input (empty text, bad characters, unbalanced
// parentheses, dangling operators, leftover tokens); ErrDivideByZero is
// returned when an evaluated divisor is exactly zero. Callers distinguish
// them with errors.Is.
package eval
