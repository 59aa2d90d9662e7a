package parser

import "fmt"

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenOpenParen
	TokenCloseParen
)

var tokenKindNames = map[TokenKind]string{
	TokenNumber:     "Number",
	TokenOperator:   "Operator",
	TokenOpenParen:  "OpenParen",
	TokenCloseParen: "CloseParen",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// OpKind identifies one of the five binary operators. Add and Subtract
// double as prefix operators.
type OpKind int

const (
	OpAdd OpKind = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpExponent
)

// GroupPrecedence is the precedence of an operand that has already been
// reduced: a literal, a parenthesised group or a unary application. It is
// higher than any operator so such operands are never split again.
const GroupPrecedence = 4

var opKindNames = map[OpKind]string{
	OpAdd:      "Add",
	OpSubtract: "Subtract",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
	OpExponent: "Exponent",
}

var opSymbols = map[OpKind]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpExponent: "^",
}

var operators = map[byte]OpKind{
	'+': OpAdd,
	'-': OpSubtract,
	'*': OpMultiply,
	'/': OpDivide,
	'^': OpExponent,
}

func (op OpKind) String() string {
	if name, ok := opKindNames[op]; ok {
		return name
	}
	return "Unknown"
}

// Symbol returns the character the operator is written as.
func (op OpKind) Symbol() string {
	if sym, ok := opSymbols[op]; ok {
		return sym
	}
	return "?"
}

// Precedence returns the binding precedence of op. Higher binds tighter.
func (op OpKind) Precedence() int {
	switch op {
	case OpAdd, OpSubtract:
		return 1
	case OpMultiply, OpDivide:
		return 2
	case OpExponent:
		return 3
	}
	return 0
}

// IsPrefix reports whether op may be written in front of an operand.
func (op OpKind) IsPrefix() bool {
	return op == OpAdd || op == OpSubtract
}

// LookupOperator maps an operator character to its kind.
func LookupOperator(ch byte) (OpKind, bool) {
	op, ok := operators[ch]
	return op, ok
}

type Token struct {
	Kind  TokenKind
	Op    OpKind // valid when Kind == TokenOperator
	Value int64  // valid when Kind == TokenNumber
}

func NumberToken(n int64) Token {
	return Token{Kind: TokenNumber, Value: n}
}

func OperatorToken(op OpKind) Token {
	return Token{Kind: TokenOperator, Op: op}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return fmt.Sprintf("Number %d", t.Value)
	case TokenOperator:
		return t.Op.String()
	default:
		return t.Kind.String()
	}
}

// Literal returns the source text of the token.
func (t Token) Literal() string {
	switch t.Kind {
	case TokenNumber:
		return fmt.Sprintf("%d", t.Value)
	case TokenOperator:
		return t.Op.Symbol()
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	}
	return ""
}
