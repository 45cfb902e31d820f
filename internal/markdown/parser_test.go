package markdown

import (
	"strings"
	"testing"
)

func TestParserRendersMarkdown(t *testing.T) {
	parser := NewParser(Options{})

	html, err := parser.Parse([]byte("# Carta\n\nPlatos **de temporada**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Carta</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Carta</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>de temporada</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestParserHardWraps(t *testing.T) {
	parser := NewParser(Options{HardWraps: true})

	html, err := parser.HTML("Calle Mayor 1\nMadrid")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(html), "Calle Mayor 1<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", html)
	}
}

func TestParserDropsRawHTML(t *testing.T) {
	parser := NewParser(Options{})

	html, err := parser.HTML("hola <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML omitted, got %q", html)
	}
}

func TestParserBlankInput(t *testing.T) {
	html, err := NewParser(Options{}).HTML("   ")
	if err != nil || html != "" {
		t.Fatalf("expected empty fragment got %q (%v)", html, err)
	}
}
