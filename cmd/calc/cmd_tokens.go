package main

import (
	"fmt"

	"github.com/dhamidi/calc/format"
	"github.com/dhamidi/calc/grammar"
	"github.com/dhamidi/calc/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(cfg *config) *cobra.Command {
	var useGrammar bool

	cmd := &cobra.Command{
		Use:   "tokens <expression>",
		Short: "Print the tokens of an expression, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := lex(args[0], useGrammar)
			if err != nil {
				return err
			}
			return format.NewTokenEncoder(cmd.OutOrStdout()).Encode(tokens)
		},
	}

	cmd.Flags().BoolVar(&useGrammar, "grammar", false, "tokenize with the EBNF grammar instead of the built-in lexer")

	return cmd
}

func lex(expr string, useGrammar bool) ([]parser.Token, error) {
	var tokens []parser.Token
	var err error
	if useGrammar {
		g, loadErr := grammar.Load()
		if loadErr != nil {
			return nil, loadErr
		}
		tokens, err = grammar.Lex(g, expr)
	} else {
		tokens, err = parser.Lex(expr)
	}
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	return tokens, nil
}
