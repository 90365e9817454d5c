package eval

import "errors"

// Errors returned by Evaluate.
var (
	ErrSyntax       = errors.New("syntax error")
	ErrDivideByZero = errors.New("division by zero")
)
