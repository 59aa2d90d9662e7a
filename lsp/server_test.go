package lsp

import (
	"strings"
	"testing"

	"github.com/dhamidi/calc/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const document = "1 + 1\n\n  1 / 0\n2^2^2\r\n1-*1\n"

func TestEvaluate(t *testing.T) {
	lines := Evaluate(document)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	tests := []struct {
		number int
		text   string
		start  int
		value  int64
		failed bool
	}{
		{0, "1 + 1", 0, 2, false},
		{2, "1 / 0", 2, 0, true},
		{3, "2^2^2", 0, 16, false},
		{4, "1-*1", 0, 0, true},
	}
	for i, tt := range tests {
		l := lines[i]
		if l.Number != tt.number || l.Text != tt.text || l.Start != tt.start {
			t.Errorf("line %d: got (%d, %q, %d), want (%d, %q, %d)", i, l.Number, l.Text, l.Start, tt.number, tt.text, tt.start)
		}
		if (l.Err != nil) != tt.failed {
			t.Errorf("line %d: err = %v, want failed=%v", i, l.Err, tt.failed)
		}
		if !tt.failed && l.Value != tt.value {
			t.Errorf("line %d: value = %d, want %d", i, l.Value, tt.value)
		}
	}
}

func TestDiagnose(t *testing.T) {
	diagnostics := Diagnose(document)
	if len(diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diagnostics))
	}

	d := diagnostics[0]
	if d.Range.Start.Line != 2 || d.Range.Start.Character != 2 || d.Range.End.Character != 7 {
		t.Errorf("range = %+v, want line 2 columns 2-7", d.Range)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if d.Source == nil || *d.Source != "calc" {
		t.Errorf("source = %v, want calc", d.Source)
	}
	if d.Message != "eval error: division by zero" {
		t.Errorf("message = %q", d.Message)
	}

	if !strings.HasPrefix(diagnostics[1].Message, "parse error: invalid unary operator") {
		t.Errorf("message = %q", diagnostics[1].Message)
	}
}

func TestDiagnoseCleanDocument(t *testing.T) {
	diagnostics := Diagnose("1\n2 * 3\n")
	if diagnostics == nil || len(diagnostics) != 0 {
		t.Errorf("got %v, want empty non-nil slice", diagnostics)
	}
}

func TestDiagnoseParserOptions(t *testing.T) {
	diagnostics := Diagnose("((1))", parser.WithMaxDepth(1))
	if len(diagnostics) != 1 || !strings.Contains(diagnostics[0].Message, "nested too deeply") {
		t.Errorf("got %v, want one nesting diagnostic", diagnostics)
	}
}

func TestHover(t *testing.T) {
	tests := []struct {
		line int
		want string
	}{
		{0, "= 2"},
		{2, "eval error: division by zero"},
		{3, "= 16"},
	}
	for _, tt := range tests {
		h := Hover(document, tt.line)
		if h == nil {
			t.Fatalf("line %d: no hover", tt.line)
		}
		content, ok := h.Contents.(protocol.MarkupContent)
		if !ok {
			t.Fatalf("line %d: contents %T", tt.line, h.Contents)
		}
		if content.Value != tt.want {
			t.Errorf("line %d: got %q, want %q", tt.line, content.Value, tt.want)
		}
	}

	if h := Hover(document, 1); h != nil {
		t.Errorf("blank line hover = %v, want nil", h)
	}
	if h := Hover(document, 99); h != nil {
		t.Errorf("out of range hover = %v, want nil", h)
	}
}

func TestServerPublishesDiagnostics(t *testing.T) {
	s := NewServer("test")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				t.Errorf("unexpected notification %s", method)
				return
			}
			published = append(published, params.(protocol.PublishDiagnosticsParams))
		},
	}

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///tmp/a.calc", Text: "1 / 0\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || len(published[0].Diagnostics) != 1 {
		t.Fatalf("published %v, want one diagnostic", published)
	}

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.calc"},
			Position:     protocol.Position{Line: 0},
		},
	})
	if err != nil || hover == nil {
		t.Fatalf("hover = %v, %v", hover, err)
	}

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.calc"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 2 || len(published[1].Diagnostics) != 0 {
		t.Errorf("close did not clear diagnostics: %v", published)
	}
	if _, ok := s.document("file:///tmp/a.calc"); ok {
		t.Error("document still tracked after close")
	}
}

func TestDiagnoseRangesInUTF16(t *testing.T) {
	tests := []struct {
		text  string
		start uint32
		end   uint32
	}{
		{"\t1 + é", 1, 6},
		{"  😀", 2, 4},
		{"\u00a01", 0, 2},
	}
	for _, tt := range tests {
		diagnostics := Diagnose(tt.text)
		if len(diagnostics) != 1 {
			t.Fatalf("%q: got %d diagnostics, want 1", tt.text, len(diagnostics))
		}
		r := diagnostics[0].Range
		if uint32(r.Start.Character) != tt.start || uint32(r.End.Character) != tt.end {
			t.Errorf("%q: got columns %d-%d, want %d-%d", tt.text, r.Start.Character, r.End.Character, tt.start, tt.end)
		}
		if !strings.HasPrefix(diagnostics[0].Message, "lex error: unknown token") {
			t.Errorf("%q: message = %q", tt.text, diagnostics[0].Message)
		}
	}
}

func TestEvaluateTrimsOnlyBlanks(t *testing.T) {
	lines := Evaluate(" \t2 * 3\t \n\u00a0\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "2 * 3" || lines[0].Start != 2 || lines[0].Value != 6 {
		t.Errorf("got %+v", lines[0])
	}
	if lines[1].Number != 1 || lines[1].Err == nil {
		t.Errorf("no-break space line: got %+v, want a lex error", lines[1])
	}
}
