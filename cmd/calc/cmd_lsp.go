package main

import (
	"github.com/dhamidi/calc/lsp"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newLSPCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, lsp.WithParserOptions(cfg.parserOptions()...))
			return server.RunStdio()
		},
	}
}
