package highlight

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDetectLanguageSkipsPlainText(t *testing.T) {
	if lang := DetectLanguage("notes.txt"); lang != "" {
		t.Fatalf("expected no language for .txt, got %q", lang)
	}
	if lang := DetectLanguage("main.go"); lang != "Go" {
		t.Fatalf("expected Go, got %q", lang)
	}
}

func TestLinesKeepsLineCount(t *testing.T) {
	h := New()
	text := "package main\n\nfunc main() {}\n"
	lines := h.Lines(text, "Go", tcell.StyleDefault)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	var joined string
	for _, tok := range lines[2].Tokens {
		joined += tok.Text
	}
	if joined != "func main() {}" {
		t.Fatalf("expected tokens to rebuild the line, got %q", joined)
	}
	if again := h.Lines(text, "Go", tcell.StyleDefault); &again[0] != &lines[0] {
		t.Fatalf("expected cached result for unchanged text")
	}
}

func TestLinesPlainTextUsesBaseStyle(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.ColorRed)
	lines := New().Lines("a\nb", "", base)
	if len(lines) != 2 || lines[1].Tokens[0].Text != "b" || lines[1].Tokens[0].Style != base {
		t.Fatalf("unexpected plain lines: %+v", lines)
	}
}
