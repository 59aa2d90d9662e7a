package parser

import "fmt"

type Option func(*Parser)

// WithMaxDepth limits how deeply parentheses and prefix operators may
// nest. Zero, the default, means no limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser builds an expression tree from tokens with one token of
// lookahead. Every operator is left-associative, including ^.
type Parser struct {
	tokens   []Token
	pos      int
	parens   int
	depth    int
	maxDepth int
}

func NewParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete expression. An empty token sequence yields the
// literal 0.
func Parse(tokens []Token, opts ...Option) (*Node, error) {
	return NewParser(tokens, opts...).Parse()
}

func (p *Parser) Parse() (*Node, error) {
	p.pos, p.parens, p.depth = 0, 0, 0
	if len(p.tokens) == 0 {
		return Leaf(0), nil
	}

	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	// parseExpr only stops early at a closing parenthesis.
	if _, ok := p.peek(); ok {
		return nil, &ParseError{Kind: UnexpectedCloseParenthesis}
	}
	return node, nil
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// afterOperator reports whether the previously consumed token was an
// operator.
func (p *Parser) afterOperator() bool {
	return p.pos > 0 && p.tokens[p.pos-1].Kind == TokenOperator
}

func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return &ParseError{Kind: NestingTooDeep, Detail: fmt.Sprintf("limit is %d", p.maxDepth)}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// expr := operand (binop operand)*
func (p *Parser) parseExpr() (*Node, error) {
	return p.parseBinary(1)
}

// parseBinary parses operands joined by operators of at least minPrec.
// Operators of equal precedence fold into the left operand, so every
// level is left-associative, and literals, groups and prefix
// applications are never split.
func (p *Parser) parseBinary(minPrec int) (*Node, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return left, nil
		}
		switch tok.Kind {
		case TokenCloseParen:
			return left, nil
		case TokenNumber, TokenOpenParen:
			return nil, &ParseError{
				Kind:   MalformedExpression,
				Detail: fmt.Sprintf("missing operator before %q", tok.Literal()),
			}
		}
		if tok.Op.Precedence() < minPrec {
			return left, nil
		}
		p.advance()

		right, err := p.parseBinary(tok.Op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = Binary(tok.Op, left, right)
	}
}

// operand := ('+' | '-')* primary
func (p *Parser) parseOperand() (*Node, error) {
	tok, ok := p.peek()
	if !ok {
		if p.parens > 0 {
			return nil, &ParseError{Kind: UnclosedParenthesis}
		}
		return nil, &ParseError{Kind: MalformedExpression, Detail: "missing operand at end of input"}
	}

	switch tok.Kind {
	case TokenNumber:
		p.advance()
		return Leaf(tok.Value), nil
	case TokenOpenParen:
		return p.parseGroup()
	case TokenCloseParen:
		if p.parens == 0 {
			return nil, &ParseError{Kind: UnexpectedCloseParenthesis}
		}
		return nil, &ParseError{Kind: MalformedExpression, Detail: `missing operand before ")"`}
	}

	if !tok.Op.IsPrefix() {
		if p.afterOperator() {
			return nil, &ParseError{
				Kind:   InvalidUnaryOperator,
				Detail: fmt.Sprintf("%q cannot be used as a prefix", tok.Op.Symbol()),
			}
		}
		return nil, &ParseError{
			Kind:   MalformedExpression,
			Detail: fmt.Sprintf("missing operand before %q", tok.Op.Symbol()),
		}
	}
	p.advance()

	if err := p.enter(); err != nil {
		return nil, err
	}
	operand, err := p.parseOperand()
	p.leave()
	if err != nil {
		return nil, err
	}
	return Unary(tok.Op, operand), nil
}

// primary := '(' expr ')'
func (p *Parser) parseGroup() (*Node, error) {
	p.advance()
	if err := p.enter(); err != nil {
		return nil, err
	}
	p.parens++
	inner, err := p.parseExpr()
	p.parens--
	p.leave()
	if err != nil {
		return nil, err
	}

	if _, ok := p.peek(); !ok {
		return nil, &ParseError{Kind: UnclosedParenthesis}
	}
	p.advance()
	return inner.group(), nil
}
