package main

import (
	"os"

	"github.com/dhamidi/calc/calc"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newReplCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read expressions from stdin and print each result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, cfg)
		},
	}
}

func runREPL(cmd *cobra.Command, cfg *config) error {
	opts := []calc.SessionOption{calc.WithParserOptions(cfg.parserOptions()...)}
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		opts = append(opts, calc.WithPrompt("> "))
	}
	session := calc.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
	return session.Run(cmd.Context())
}
