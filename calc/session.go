package calc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/calc/parser"
	"github.com/tliron/commonlog"
)

// MaxLineBytes bounds one line of session input, newline included.
const MaxLineBytes = 1 << 20

// ErrLineTooLong is reported for a line longer than MaxLineBytes. The
// rest of the line is discarded and the session continues.
var ErrLineTooLong = fmt.Errorf("line longer than %d bytes", MaxLineBytes)

type SessionOption func(*Session)

// WithPrompt prints prompt before reading each line.
func WithPrompt(prompt string) SessionOption {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithParserOptions passes opts to every parse in the session.
func WithParserOptions(opts ...parser.Option) SessionOption {
	return func(s *Session) {
		s.parserOpts = append(s.parserOpts, opts...)
	}
}

// Session is a read-evaluate-print loop over line-oriented input. A line
// that fails to evaluate is reported and the loop continues.
type Session struct {
	in         io.Reader
	out        io.Writer
	prompt     string
	parserOpts []parser.Option
	log        commonlog.Logger
}

func NewSession(in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{in: in, out: out, log: commonlog.GetLogger("calc.session")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops until the input is exhausted or ctx is cancelled. The
// context is checked between lines; a read blocked on in is not
// interrupted.
func (s *Session) Run(ctx context.Context) error {
	r := bufio.NewReader(s.in)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if errors.Is(err, ErrLineTooLong) {
			s.log.Debugf("line %d: %v", lineNo, err)
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		value, err := Run(line, s.parserOpts...)
		if err != nil {
			s.log.Debugf("line %d: %s error: %v", lineNo, Stage(err), err)
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "%d\n", value)
	}

	if s.prompt != "" {
		fmt.Fprintln(s.out)
	}
	return nil
}

// readLine reads up to and including the next newline. A final line
// without a newline is returned as is; io.EOF means no input is left.
func readLine(r *bufio.Reader) (string, error) {
	var line []byte
	size := 0
	for {
		chunk, err := r.ReadSlice('\n')
		size += len(chunk)
		if size <= MaxLineBytes {
			line = append(line, chunk...)
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && size > 0:
		case err != nil:
			return "", err
		}
		if size > MaxLineBytes {
			return "", ErrLineTooLong
		}
		return string(line), nil
	}
}
