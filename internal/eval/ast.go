package eval

import "fmt"

// node is a parsed expression tree node. Each kind evaluates itself;
// the walk is recursive post-order.
type node interface {
	eval() (float64, error)
}

// literal is a numeric constant.
type literal struct {
	value float64
}

func (n literal) eval() (float64, error) {
	return n.value, nil
}

// unaryMinus negates its operand.
type unaryMinus struct {
	operand node
}

func (n unaryMinus) eval() (float64, error) {
	v, err := n.operand.eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

// binaryOp applies one of the four arithmetic operators.
type binaryOp struct {
	op    tokenKind
	left  node
	right node
}

func (n binaryOp) eval() (float64, error) {
	l, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}

	switch n.op {
	case tokPlus:
		return l + r, nil
	case tokMinus:
		return l - r, nil
	case tokStar:
		return l * r, nil
	case tokSlash:
		if r == 0 {
			return 0, ErrDivideByZero
		}
		return l / r, nil
	default:
		return 0, fmt.Errorf("invalid operator token %d: %w", n.op, ErrSyntax)
	}
}
