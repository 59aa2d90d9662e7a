package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/calc/parser"
	"golang.org/x/exp/ebnf"
)

func TestEmbeddedGrammarVerifies(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Verify(g); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	for _, name := range TokenProductions {
		if _, ok := g[name]; !ok {
			t.Errorf("token production %q missing from grammar", name)
		}
	}
}

func TestVerifyRejectsBrokenGrammar(t *testing.T) {
	g, err := ebnf.Parse("broken", strings.NewReader(`Expression = Operand .`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Verify(g); err == nil {
		t.Error("Verify accepted a grammar with a missing production")
	}
}

func TestScanner(t *testing.T) {
	g := MustLoad()

	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"12", []string{`0 Number "12"`}},
		{"0", []string{`0 Number "0"`}},
		{"(1+20)", []string{`0 OpenParen "("`, `1 Number "1"`, `2 BinaryOperator "+"`, `3 Number "20"`, `5 CloseParen ")"`}},
		{" -\t3 ", []string{`1 BinaryOperator "-"`, `3 Number "3"`}},
		{"01", []string{`0 Number "0"`, `1 Number "1"`}},
		{"7", []string{`0 Number "7"`}},
		{"1+1", []string{`0 Number "1"`, `1 BinaryOperator "+"`, `2 Number "1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewScanner(g, []byte(tt.input)).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(tt.expected))
			}
			for i, tok := range tokens {
				if tok.String() != tt.expected[i] {
					t.Errorf("token %d: got %s, want %s", i, tok, tt.expected[i])
				}
			}
		})
	}
}

func TestLexAgreesWithParserLexer(t *testing.T) {
	g := MustLoad()

	inputs := []string{
		"",
		"0",
		"1 + 1",
		"3 - 4 * 5 + 3 ^ 2",
		"(4 - 3) * (3 - 5)",
		"1 * -----1",
		"((1) + 1",
		"9223372036854775807",
		"10 / 100",
		"1 2 3 4 5 6 7 8 9",
		"2^2^2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			want, err := parser.Lex(input)
			if err != nil {
				t.Fatalf("parser.Lex: %v", err)
			}
			got, err := Lex(g, input)
			if err != nil {
				t.Fatalf("grammar Lex: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestLexErrorsAgreeWithParserLexer(t *testing.T) {
	g := MustLoad()

	tests := []struct {
		input string
		want  error
	}{
		{"01 + 1", parser.ErrLeadingZero},
		{"1 + 007", parser.ErrLeadingZero},
		{"1 _ 1", parser.ErrUnknownToken},
		{"9223372036854775808", parser.ErrNumberTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, err := parser.Lex(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("parser.Lex: got %v, want %v", err, tt.want)
			}
			if _, err := Lex(g, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("grammar Lex: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSingleDigitNumbers(t *testing.T) {
	g := MustLoad()

	for d := '0'; d <= '9'; d++ {
		input := string(d)
		tokens, err := Lex(g, input)
		if err != nil {
			t.Errorf("%s: %v", input, err)
			continue
		}
		if len(tokens) != 1 || tokens[0] != parser.NumberToken(int64(d-'0')) {
			t.Errorf("%s: got %v", input, tokens)
		}
	}
}

func TestRepetitionMayMatchNothing(t *testing.T) {
	g, err := ebnf.Parse("optional", strings.NewReader(`
Number = digit { digit } [ "." ] .
OpenParen = "(" .
CloseParen = ")" .
BinaryOperator = "+" .
digit = "0" … "9" .
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tokens, err := NewScanner(g, []byte("4+25.")).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{`0 Number "4"`, `1 BinaryOperator "+"`, `2 Number "25."`}
	if len(tokens) != len(want) {
		t.Fatalf("got %v, want %v", tokens, want)
	}
	for i, tok := range tokens {
		if tok.String() != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok, want[i])
		}
	}
}

func TestLeadingZeroReportsWholeRun(t *testing.T) {
	g := MustLoad()

	for _, input := range []string{"0012", "1 + 007", "00"} {
		want, wantErr := parser.Lex(input)
		got, err := Lex(g, input)
		if want != nil || got != nil {
			t.Errorf("%s: got tokens %v / %v, want none", input, got, want)
		}
		if err == nil || wantErr == nil || err.Error() != wantErr.Error() {
			t.Errorf("%s: got %v, want %v", input, err, wantErr)
		}
	}
}

func TestSourceIsCopy(t *testing.T) {
	a := Source()
	a[0] = 'X'
	if Source()[0] == 'X' {
		t.Error("Source returned the embedded slice")
	}
}
