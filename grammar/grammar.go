// Package grammar holds the EBNF description of calc expressions and a
// scanner driven directly by that grammar.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// Start is the production a complete input must match.
const Start = "Expression"

//go:embed calc.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("calc.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from Start.
func Verify(g ebnf.Grammar) error {
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// MustLoad loads and verifies the embedded grammar, panicking on failure.
func MustLoad() ebnf.Grammar {
	g, err := Load()
	if err != nil {
		panic(err)
	}
	if err := Verify(g); err != nil {
		panic(err)
	}
	return g
}
