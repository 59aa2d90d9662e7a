package main

import (
	"fmt"

	"github.com/dhamidi/calc/format"
	"github.com/dhamidi/calc/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(cfg *config) *cobra.Command {
	var outputFormat string
	var useGrammar bool

	cmd := &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse an expression and dump its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			tokens, err := lex(args[0], useGrammar)
			if err != nil {
				return err
			}

			node, err := parser.Parse(tokens, cfg.parserOptions()...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexpr", "output format (sexpr, json)")
	cmd.Flags().BoolVar(&useGrammar, "grammar", false, "tokenize with the EBNF grammar instead of the built-in lexer")

	return cmd
}
