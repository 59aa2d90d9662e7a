package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/calc/parser"
)

type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type treeJSONNode struct {
	Kind  string        `json:"kind"`
	Op    string        `json:"op,omitempty"`
	Value *int64        `json:"value,omitempty"`
	Group bool          `json:"group,omitempty"`
	Left  *treeJSONNode `json:"left,omitempty"`
	Right *treeJSONNode `json:"right,omitempty"`
}

func nodeToJSON(n *parser.Node) *treeJSONNode {
	if n == nil {
		return nil
	}

	jn := &treeJSONNode{
		Kind:  "literal",
		Group: n.IsGroup(),
	}

	if n.IsLiteral() {
		v := n.Value
		jn.Value = &v
		return jn
	}

	jn.Kind = "binary"
	if n.IsUnary() {
		jn.Kind = "unary"
	}
	jn.Op = n.Op.String()
	jn.Left = nodeToJSON(n.Left)
	jn.Right = nodeToJSON(n.Right)
	return jn
}
