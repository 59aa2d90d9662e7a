// Package calc evaluates a line of integer arithmetic.
//
// Run chains the three stages: parser.Lex turns the text into tokens,
// parser.Parse builds a tree whose shape encodes precedence, and
// eval.Evaluate folds the tree into an int64. Every call is independent,
// so Run is safe to use from multiple goroutines.
package calc

import (
	"errors"

	"github.com/dhamidi/calc/eval"
	"github.com/dhamidi/calc/parser"
)

// DefaultMaxDepth is the nesting limit interactive hosts apply so that
// hostile input cannot exhaust the stack.
const DefaultMaxDepth = 1000

// Run lexes, parses and evaluates text, stopping at the first error.
func Run(text string, opts ...parser.Option) (int64, error) {
	tokens, err := parser.Lex(text)
	if err != nil {
		return 0, err
	}
	tree, err := parser.Parse(tokens, opts...)
	if err != nil {
		return 0, err
	}
	return eval.Evaluate(tree)
}

const (
	StageLex   = "lex"
	StageParse = "parse"
	StageEval  = "eval"
)

// Stage names the pipeline stage that produced err, or "" if err did not
// come from the pipeline.
func Stage(err error) string {
	var lexErr *parser.LexError
	var parseErr *parser.ParseError
	var evalErr *eval.Error
	switch {
	case errors.As(err, &lexErr):
		return StageLex
	case errors.As(err, &parseErr):
		return StageParse
	case errors.As(err, &evalErr):
		return StageEval
	}
	return ""
}
