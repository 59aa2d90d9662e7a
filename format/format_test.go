package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/calc/parser"
)

func parse(t *testing.T, input string) *parser.Node {
	t.Helper()
	tokens, err := parser.Lex(input)
	if err != nil {
		t.Fatal(err)
	}
	node, err := parser.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestTreeJSONEncoder(t *testing.T) {
	var sb strings.Builder
	if err := NewTreeJSONEncoder(&sb).Encode(parse(t, "-1 * (2 + 0)")); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, sb.String())
	}

	if got["kind"] != "binary" || got["op"] != "Multiply" {
		t.Errorf("root = %v, want binary Multiply", got)
	}
	left := got["left"].(map[string]any)
	if left["kind"] != "unary" || left["op"] != "Subtract" {
		t.Errorf("left = %v, want unary Subtract", left)
	}
	if _, ok := left["left"]; ok {
		t.Errorf("unary node has a left child: %v", left)
	}
	right := got["right"].(map[string]any)
	if right["group"] != true {
		t.Errorf("right = %v, want group", right)
	}
	zero := right["right"].(map[string]any)
	if v, ok := zero["value"]; !ok || v != float64(0) {
		t.Errorf("literal 0 lost its value: %v", zero)
	}
}

func TestSExprEncoder(t *testing.T) {
	var sb strings.Builder
	if err := NewSExprEncoder(&sb).Encode(parse(t, "2^2^2")); err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "(^ (^ 2 2) 2)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"json", "sexpr"} {
		if _, err := NewEncoder(name, &strings.Builder{}); err != nil {
			t.Errorf("NewEncoder(%q): %v", name, err)
		}
	}
	if _, err := NewEncoder("xml", &strings.Builder{}); err == nil {
		t.Error("NewEncoder accepted unknown format")
	}
}

func TestTokenEncoder(t *testing.T) {
	tokens, err := parser.Lex("(12 / 3) ^ -1")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := NewTokenEncoder(&sb).Encode(tokens); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"OpenParen",
		"Number 12",
		"Divide",
		"Number 3",
		"CloseParen",
		"Exponent",
		"Subtract",
		"Number 1",
	}, "\n") + "\n"
	if sb.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}
