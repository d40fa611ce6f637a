package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got, err := RenderString(tt.input)
		if err != nil {
			t.Fatalf("RenderString(%q) failed: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("RenderString(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got, err := RenderString("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if !strings.Contains(got, "<pre><code") || !strings.Contains(got, "fmt.Println") {
		t.Errorf("code block not rendered: %q", got)
	}
}

func TestRenderHeadings(t *testing.T) {
	got, err := RenderString("# One\n\n## Two\n\n### Three")
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	for _, want := range []string{"<h1", ">One</h1>", "<h2", ">Two</h2>", "<h3", ">Three</h3>"} {
		if !strings.Contains(got, want) {
			t.Errorf("headings output missing %q: %q", want, got)
		}
	}
}

func TestRenderLists(t *testing.T) {
	got, err := RenderString("- a\n- b\n\n1. one\n2. two")
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if !strings.Contains(got, "<ul>") || !strings.Contains(got, "<ol>") {
		t.Errorf("lists not rendered: %q", got)
	}
	if strings.Count(got, "<li>") != 4 {
		t.Errorf("list items = %d, want 4: %q", strings.Count(got, "<li>"), got)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	got, err := RenderString("hello\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">link</a>")
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	for _, bad := range []string{"<script", "javascript:", "onclick"} {
		if strings.Contains(got, bad) {
			t.Errorf("output contains %q: %q", bad, got)
		}
	}
}

func TestRenderKeepsSafeLinks(t *testing.T) {
	got, err := RenderString("[site](https://ofcr.se/) and [local](/about)")
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if !strings.Contains(got, `href="https://ofcr.se/"`) || !strings.Contains(got, `href="/about"`) {
		t.Errorf("links missing: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("Hello *world*").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<em>world</em>") {
		t.Errorf("component output = %q", buf.String())
	}
}
