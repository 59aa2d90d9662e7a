package parser

import "fmt"

type LexErrorKind int

const (
	UnknownToken LexErrorKind = iota
	LeadingZero
	NumberTooLarge
)

var lexErrorKindNames = map[LexErrorKind]string{
	UnknownToken:   "UnknownToken",
	LeadingZero:    "LeadingZero",
	NumberTooLarge: "NumberTooLarge",
}

func (k LexErrorKind) String() string {
	if name, ok := lexErrorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LexError is returned by Lex. Text holds the offending character or
// digit run when one is known.
type LexError struct {
	Kind LexErrorKind
	Text string
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnknownToken:
		if e.Text != "" {
			return fmt.Sprintf("unknown token %q", e.Text)
		}
		return "unknown token"
	case LeadingZero:
		if e.Text != "" {
			return fmt.Sprintf("cannot have leading zeroes for numbers: %s", e.Text)
		}
		return "cannot have leading zeroes for numbers"
	case NumberTooLarge:
		if e.Text != "" {
			return fmt.Sprintf("number out of range: %s", e.Text)
		}
		return "number out of range"
	}
	return "lex error"
}

// Is matches any LexError of the same kind, so callers can write
// errors.Is(err, parser.ErrLeadingZero).
func (e *LexError) Is(target error) bool {
	t, ok := target.(*LexError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnknownToken   = &LexError{Kind: UnknownToken}
	ErrLeadingZero    = &LexError{Kind: LeadingZero}
	ErrNumberTooLarge = &LexError{Kind: NumberTooLarge}
)

type ParseErrorKind int

const (
	UnclosedParenthesis ParseErrorKind = iota
	UnexpectedCloseParenthesis
	InvalidUnaryOperator
	MalformedExpression
	NestingTooDeep
)

var parseErrorKindNames = map[ParseErrorKind]string{
	UnclosedParenthesis:        "UnclosedParenthesis",
	UnexpectedCloseParenthesis: "UnexpectedCloseParenthesis",
	InvalidUnaryOperator:       "InvalidUnaryOperator",
	MalformedExpression:        "MalformedExpression",
	NestingTooDeep:             "NestingTooDeep",
}

func (k ParseErrorKind) String() string {
	if name, ok := parseErrorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case UnclosedParenthesis:
		msg = "unclosed parenthesis"
	case UnexpectedCloseParenthesis:
		msg = "unexpected closing parenthesis"
	case InvalidUnaryOperator:
		msg = "invalid unary operator"
	case MalformedExpression:
		msg = "malformed expression"
	case NestingTooDeep:
		msg = "expression nested too deeply"
	default:
		msg = "parse error"
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnclosedParenthesis        = &ParseError{Kind: UnclosedParenthesis}
	ErrUnexpectedCloseParenthesis = &ParseError{Kind: UnexpectedCloseParenthesis}
	ErrInvalidUnaryOperator       = &ParseError{Kind: InvalidUnaryOperator}
	ErrMalformedExpression        = &ParseError{Kind: MalformedExpression}
	ErrNestingTooDeep             = &ParseError{Kind: NestingTooDeep}
)
