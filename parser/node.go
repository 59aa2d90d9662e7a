package parser

import (
	"strconv"
	"strings"
)

type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindBinary
)

var nodeKindNames = map[NodeKind]string{
	KindLiteral: "Literal",
	KindBinary:  "Binary",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is an expression tree node. A binary node with a nil Left is a
// unary application of Add or Subtract. Nodes are not modified once built.
type Node struct {
	Kind  NodeKind
	Value int64
	Op    OpKind
	Left  *Node
	Right *Node

	// grouped marks the root of a parenthesised sub-expression.
	grouped bool
}

func Leaf(n int64) *Node {
	return &Node{Kind: KindLiteral, Value: n}
}

func Binary(op OpKind, left, right *Node) *Node {
	return &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
}

func Unary(op OpKind, operand *Node) *Node {
	return &Node{Kind: KindBinary, Op: op, Right: operand}
}

func (n *Node) IsLiteral() bool {
	return n.Kind == KindLiteral
}

func (n *Node) IsUnary() bool {
	return n.Kind == KindBinary && n.Left == nil
}

// IsGroup reports whether the node was written inside parentheses.
func (n *Node) IsGroup() bool {
	return n.grouped
}

// Precedence is the precedence the node presents to an operator on its
// left. Reduced operands report GroupPrecedence.
func (n *Node) Precedence() int {
	if n.Kind == KindLiteral || n.grouped || n.IsUnary() {
		return GroupPrecedence
	}
	return n.Op.Precedence()
}

func (n *Node) group() *Node {
	g := *n
	g.grouped = true
	return &g
}

// String renders the tree as an S-expression, e.g. (- 3 (* 4 5)).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if n.Kind == KindLiteral {
		sb.WriteString(strconv.FormatInt(n.Value, 10))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Op.Symbol())
	if n.Left != nil {
		sb.WriteByte(' ')
		n.Left.writeTo(sb)
	}
	sb.WriteByte(' ')
	n.Right.writeTo(sb)
	sb.WriteByte(')')
}
