package parser

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Lexer turns a single line of input into tokens. It knows nothing about
// the grammar; unary and binary + and - produce the same token.
type Lexer struct {
	input []byte
	pos   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch != ' ' && ch != '\t' {
			return
		}
		l.advance()
	}
}

// Done reports whether the input is exhausted, ignoring trailing blanks.
func (l *Lexer) Done() bool {
	l.skipWhitespace()
	return l.pos >= len(l.input)
}

// NextToken scans one token. It must not be called once Done returns true.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	ch := l.peek()
	switch {
	case isDigit(ch):
		return l.scanNumber()
	case ch == '(':
		l.advance()
		return Token{Kind: TokenOpenParen}, nil
	case ch == ')':
		l.advance()
		return Token{Kind: TokenCloseParen}, nil
	}

	if op, ok := LookupOperator(ch); ok {
		l.advance()
		return OperatorToken(op), nil
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])
	if size == 0 {
		size = 1
	}
	l.pos += size
	return Token{}, &LexError{Kind: UnknownToken, Text: string(r)}
}

func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	text := string(l.input[start:l.pos])

	if len(text) > 1 && text[0] == '0' {
		return Token{}, &LexError{Kind: LeadingZero, Text: text}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, &LexError{Kind: NumberTooLarge, Text: text}
		}
		return Token{}, &LexError{Kind: UnknownToken, Text: text}
	}
	return NumberToken(n), nil
}

// Tokenize reads all tokens. On error no tokens are returned.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := []Token{}
	for !l.Done() {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Lex tokenizes a line of text.
func Lex(text string) ([]Token, error) {
	return NewLexer([]byte(text)).Tokenize()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
