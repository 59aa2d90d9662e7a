package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func newRootCmd() *cobra.Command {
	cfg := newConfig()

	rootCmd := &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate integer arithmetic",
		Long: `Evaluate integer arithmetic with + - * / ^, parentheses and unary + and -.

With an expression argument, prints its value. Without one, reads
expressions line by line from stdin.

Every operator is left-associative, so 2^2^2 is (2^2)^2 = 16.

An expression starting with "-" would be read as a flag; put "--" before
it, as in: calc -- -1+2`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(cfg.verbose, nil)
			return cfg.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(cmd, cfg)
			}
			return runEval(cmd, cfg, args[0])
		},
	}

	cfg.addFlags(rootCmd)

	rootCmd.AddCommand(newEvalCmd(cfg))
	rootCmd.AddCommand(newReplCmd(cfg))
	rootCmd.AddCommand(newTokensCmd(cfg))
	rootCmd.AddCommand(newParseCmd(cfg))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(cfg))
	rootCmd.AddCommand(newUICmd(cfg))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
