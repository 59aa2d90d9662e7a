package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dhamidi/calc/calc"
	"github.com/dhamidi/calc/parser"
	"github.com/spf13/cobra"
)

const maxDepthEnv = "CALC_MAX_DEPTH"

type config struct {
	maxDepth int
	verbose  int
}

func newConfig() *config {
	return &config{maxDepth: defaultMaxDepth()}
}

// defaultMaxDepth reads CALC_MAX_DEPTH, falling back to
// calc.DefaultMaxDepth when it is unset or not a number.
func defaultMaxDepth() int {
	if v := os.Getenv(maxDepthEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return calc.DefaultMaxDepth
}

func (c *config) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVar(&c.maxDepth, "max-depth", c.maxDepth,
		"maximum nesting of parentheses and prefix operators, 0 for no limit (env "+maxDepthEnv+")")
	cmd.PersistentFlags().CountVarP(&c.verbose, "verbose", "v", "increase log verbosity (repeatable)")
}

func (c *config) validate() error {
	if c.maxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative, got %d", c.maxDepth)
	}
	return nil
}

func (c *config) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.maxDepth)}
}
