package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/dhamidi/calc/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of calc expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file (default: the built-in grammar)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g ebnf.Grammar
			var err error

			if len(args) == 0 {
				g, err = grammar.Load()
			} else {
				g, err = parseGrammarFile(args[0])
			}
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")

	return cmd
}

func parseGrammarFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ebnf.Parse(filename, f)
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			cmd.PrintErrln(v.Index(i).Interface())
		}
	} else {
		cmd.PrintErrln(err)
	}
}
