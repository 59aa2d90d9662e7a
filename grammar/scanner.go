package grammar

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/calc/parser"
	"golang.org/x/exp/ebnf"
)

// TokenProductions are the productions the scanner tries at each
// position, in tie-breaking order.
var TokenProductions = []string{"Number", "OpenParen", "CloseParen", "BinaryOperator"}

// Token is a match of one of the TokenProductions.
type Token struct {
	Kind    string
	Literal string
	Offset  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Offset, t.Kind, t.Literal)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

type memoEntry struct {
	n  int
	ok bool
}

type Scanner struct {
	grammar  ebnf.Grammar
	input    []byte
	pos      int
	memo     map[memoKey]memoEntry
	visiting map[memoKey]bool // cycle detection
}

func NewScanner(g ebnf.Grammar, input []byte) *Scanner {
	return &Scanner{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey]memoEntry),
		visiting: make(map[memoKey]bool),
	}
}

func (s *Scanner) skipBlanks() {
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

// Done reports whether only blanks remain.
func (s *Scanner) Done() bool {
	s.skipBlanks()
	return s.pos >= len(s.input)
}

// NextToken returns the longest token at the current position.
func (s *Scanner) NextToken() (Token, error) {
	s.skipBlanks()
	start := s.pos

	// Match lengths depend on the offset, so results from earlier tokens
	// are never reused.
	s.memo = make(map[memoKey]memoEntry)

	var best Token
	for _, name := range TokenProductions {
		prod, ok := s.grammar[name]
		if !ok || prod.Expr == nil {
			continue
		}
		s.visiting = make(map[memoKey]bool)
		n, ok := s.tryMatch(prod.Expr, start)
		if ok && n > len(best.Literal) {
			best = Token{Kind: name, Literal: string(s.input[start : start+n]), Offset: start}
		}
	}

	if best.Literal == "" {
		r, size := utf8.DecodeRune(s.input[start:])
		if size == 0 {
			size = 1
		}
		s.pos += size
		return Token{}, &parser.LexError{Kind: parser.UnknownToken, Text: string(r)}
	}

	s.pos += len(best.Literal)
	return best, nil
}

// Tokenize reads all tokens.
func (s *Scanner) Tokenize() ([]Token, error) {
	tokens := []Token{}
	for !s.Done() {
		tok, err := s.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// tryMatch returns the length of the longest match of expr at offset.
// ok is false when expr does not match at all; a match may be empty.
func (s *Scanner) tryMatch(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		return s.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return s.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n, ok := s.tryMatch(item, offset+total)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true

	case ebnf.Alternative:
		best, matched := 0, false
		for _, alt := range e {
			if n, ok := s.tryMatch(alt, offset); ok && (!matched || n > best) {
				best, matched = n, true
			}
		}
		return best, matched

	case *ebnf.Repetition:
		total := 0
		for {
			n, ok := s.tryMatch(e.Body, offset+total)
			// An empty body match would repeat forever.
			if !ok || n == 0 {
				return total, true
			}
			total += n
		}

	case *ebnf.Option:
		n, ok := s.tryMatch(e.Body, offset)
		if !ok {
			return 0, true
		}
		return n, true

	case *ebnf.Group:
		return s.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return s.tryMatchName(e.String, offset)
	}
	return 0, false
}

func (s *Scanner) tryMatchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}

	if entry, ok := s.memo[key]; ok {
		return entry.n, entry.ok
	}

	// Left recursion.
	if s.visiting[key] {
		return 0, false
	}

	prod, ok := s.grammar[name]
	if !ok || prod.Expr == nil {
		s.memo[key] = memoEntry{}
		return 0, false
	}

	s.visiting[key] = true
	n, ok := s.tryMatch(prod.Expr, offset)
	delete(s.visiting, key)

	s.memo[key] = memoEntry{n: n, ok: ok}
	return n, ok
}

func (s *Scanner) tryMatchToken(lit string, offset int) (int, bool) {
	if offset+len(lit) > len(s.input) {
		return 0, false
	}
	if string(s.input[offset:offset+len(lit)]) == lit {
		return len(lit), true
	}
	return 0, false
}

func (s *Scanner) tryMatchRange(begin, end string, offset int) (int, bool) {
	if offset >= len(s.input) || len(begin) != 1 || len(end) != 1 {
		return 0, false
	}
	ch := s.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1, true
	}
	return 0, false
}

// ToTokens converts grammar tokens into parser tokens. A number directly
// followed by more digits can only occur after a lone "0", which the
// lexer rejects as a leading zero, so the same is done here for the
// whole digit run.
func ToTokens(tokens []Token) ([]parser.Token, error) {
	out := make([]parser.Token, 0, len(tokens))
	for i, tok := range tokens {
		switch tok.Kind {
		case "Number":
			if run := digitRun(tokens, i); run != tok.Literal {
				return nil, &parser.LexError{Kind: parser.LeadingZero, Text: run}
			}
			n, err := strconv.ParseInt(tok.Literal, 10, 64)
			if err != nil {
				return nil, &parser.LexError{Kind: parser.NumberTooLarge, Text: tok.Literal}
			}
			out = append(out, parser.NumberToken(n))
		case "OpenParen":
			out = append(out, parser.Token{Kind: parser.TokenOpenParen})
		case "CloseParen":
			out = append(out, parser.Token{Kind: parser.TokenCloseParen})
		case "BinaryOperator":
			op, ok := parser.LookupOperator(tok.Literal[0])
			if !ok {
				return nil, &parser.LexError{Kind: parser.UnknownToken, Text: tok.Literal}
			}
			out = append(out, parser.OperatorToken(op))
		default:
			return nil, fmt.Errorf("unexpected token kind %q", tok.Kind)
		}
	}
	return out, nil
}

// digitRun joins tokens[i] with the Number tokens that directly follow it.
func digitRun(tokens []Token, i int) string {
	run := tokens[i].Literal
	end := tokens[i].Offset + len(run)
	for _, next := range tokens[i+1:] {
		if next.Kind != "Number" || next.Offset != end {
			break
		}
		run += next.Literal
		end += len(next.Literal)
	}
	return run
}

// Lex tokenizes text with the grammar instead of the hand-written lexer.
func Lex(g ebnf.Grammar, text string) ([]parser.Token, error) {
	tokens, err := NewScanner(g, []byte(text)).Tokenize()
	if err != nil {
		return nil, err
	}
	return ToTokens(tokens)
}
