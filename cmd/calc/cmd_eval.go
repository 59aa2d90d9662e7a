package main

import (
	"fmt"

	"github.com/dhamidi/calc/calc"
	"github.com/spf13/cobra"
)

func newEvalCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate one expression and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, cfg, args[0])
		},
	}
}

func runEval(cmd *cobra.Command, cfg *config, expr string) error {
	value, err := calc.Run(expr, cfg.parserOptions()...)
	if err != nil {
		if stage := calc.Stage(err); stage != "" {
			return fmt.Errorf("%s: %w", stage, err)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
