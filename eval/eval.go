// Package eval folds an expression tree into an integer.
package eval

import (
	"fmt"

	"github.com/dhamidi/calc/parser"
)

type ErrorKind int

const (
	DivisionByZero ErrorKind = iota
	NegativeExponent
	InvalidTree
)

var errorKindNames = map[ErrorKind]string{
	DivisionByZero:   "DivisionByZero",
	NegativeExponent: "NegativeExponent",
	InvalidTree:      "InvalidTree",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is an arithmetic fault. InvalidTree means the tree did not come
// from the parser in a valid state and indicates a bug, not bad input.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case DivisionByZero:
		msg = "division by zero"
	case NegativeExponent:
		msg = "negative exponent"
	case InvalidTree:
		msg = "invalid expression tree"
	default:
		msg = "evaluation error"
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDivisionByZero   = &Error{Kind: DivisionByZero}
	ErrNegativeExponent = &Error{Kind: NegativeExponent}
	ErrInvalidTree      = &Error{Kind: InvalidTree}
)

// Evaluate computes the value of the tree. Arithmetic wraps on overflow
// like native int64 operations; division truncates toward zero.
func Evaluate(n *parser.Node) (int64, error) {
	if n == nil {
		return 0, &Error{Kind: InvalidTree, Detail: "nil node"}
	}

	switch n.Kind {
	case parser.KindLiteral:
		return n.Value, nil
	case parser.KindBinary:
	default:
		return 0, &Error{Kind: InvalidTree, Detail: fmt.Sprintf("unknown node kind %v", n.Kind)}
	}

	if n.Right == nil {
		return 0, &Error{Kind: InvalidTree, Detail: fmt.Sprintf("%v node without right operand", n.Op)}
	}

	if n.Left == nil {
		if !n.Op.IsPrefix() {
			return 0, &Error{Kind: InvalidTree, Detail: fmt.Sprintf("%v used as a prefix operator", n.Op)}
		}
		right, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		if n.Op == parser.OpSubtract {
			return -right, nil
		}
		return right, nil
	}

	left, err := Evaluate(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := Evaluate(n.Right)
	if err != nil {
		return 0, err
	}
	return apply(n.Op, left, right)
}

func apply(op parser.OpKind, left, right int64) (int64, error) {
	switch op {
	case parser.OpAdd:
		return left + right, nil
	case parser.OpSubtract:
		return left - right, nil
	case parser.OpMultiply:
		return left * right, nil
	case parser.OpDivide:
		if right == 0 {
			return 0, &Error{Kind: DivisionByZero}
		}
		return left / right, nil
	case parser.OpExponent:
		if right < 0 {
			return 0, &Error{Kind: NegativeExponent, Detail: fmt.Sprintf("%d", right)}
		}
		return pow(left, right), nil
	}
	return 0, &Error{Kind: InvalidTree, Detail: fmt.Sprintf("unknown operator %d", int(op))}
}

// pow computes base^exp by repeated squaring. Overflow wraps.
func pow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		exp >>= 1
		base *= base
	}
	return result
}
