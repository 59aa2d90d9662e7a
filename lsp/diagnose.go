package lsp

import (
	"fmt"
	"strings"

	"github.com/dhamidi/calc/calc"
	"github.com/dhamidi/calc/parser"
)

// Line is the outcome of evaluating one line of a document.
type Line struct {
	Number int // zero-based
	Text   string
	Start  int // byte offset of the expression within the raw line
	Value  int64
	Err    error
}

// blanks are the characters the lexer skips.
const blanks = " \t"

// Evaluate runs every non-blank line of text through the calculator.
func Evaluate(text string, opts ...parser.Option) []Line {
	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		trimmed := strings.Trim(raw, blanks)
		if trimmed == "" {
			continue
		}
		value, err := calc.Run(trimmed, opts...)
		lines = append(lines, Line{
			Number: i,
			Text:   trimmed,
			Start:  len(raw) - len(strings.TrimLeft(raw, blanks)),
			Value:  value,
			Err:    err,
		})
	}
	return lines
}

// Message describes a failed line, prefixed by the pipeline stage.
func (l Line) Message() string {
	if l.Err == nil {
		return ""
	}
	if stage := calc.Stage(l.Err); stage != "" {
		return fmt.Sprintf("%s error: %v", stage, l.Err)
	}
	return l.Err.Error()
}

// LineAt returns the evaluated line with the given number.
func LineAt(lines []Line, number int) (Line, bool) {
	for _, l := range lines {
		if l.Number == number {
			return l, true
		}
	}
	return Line{}, false
}
