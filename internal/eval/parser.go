package eval

import (
	"fmt"
	"strconv"
)

// parser consumes a token slice produced by tokenize. One precedence
// level per parse function, lowest first.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parse parses a complete expression and requires that every token is
// consumed; trailing tokens after a successful parse are a syntax error.
func (p *parser) parse() (node, error) {
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", tok.text, tok.pos, ErrSyntax)
	}
	return n, nil
}

// parseExpr handles '+' and '-', left-associative.
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek().kind
		if op != tokPlus && op != tokMinus {
			return left, nil
		}
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
}

// parseTerm handles '*' and '/', left-associative.
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek().kind
		if op != tokStar && op != tokSlash {
			return left, nil
		}
		p.next()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
}

// parseFactor handles numbers, parenthesized expressions, and unary
// minus, which binds tighter than any binary operator.
func (p *parser) parseFactor() (node, error) {
	switch tok := p.next(); tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at offset %d: %w", tok.text, tok.pos, ErrSyntax)
		}
		return literal{value: v}, nil

	case tokMinus:
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return unaryMinus{operand: operand}, nil

	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis at offset %d: %w", closing.pos, ErrSyntax)
		}
		return inner, nil

	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrSyntax)

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", tok.text, tok.pos, ErrSyntax)
	}
}
