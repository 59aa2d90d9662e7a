// Package format writes tokens and expression trees for inspection.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/calc/parser"
)

type Encoder interface {
	Encode(node *parser.Node) error
}

// NewEncoder returns the tree encoder for the named output format.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewTreeJSONEncoder(w), nil
	case "sexpr":
		return NewSExprEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// SExprEncoder writes a tree on one line as an S-expression.
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(node *parser.Node) error {
	_, err := fmt.Fprintln(e.w, node.String())
	return err
}

// TokenEncoder writes one token per line: the operator name, the
// parenthesis kind, or "Number" followed by its value.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(e.w, tok.String()); err != nil {
			return err
		}
	}
	return nil
}
