package md

import (
	"strings"
	"testing"
)

func TestRenderBasic(t *testing.T) {
	html, err := Render("plain *emphasis* text", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("html = %q", html)
	}
}

func TestRenderSubscriptSuperscript(t *testing.T) {
	html, err := Render("H[2]{.subscript}O and x[2]{.superscript}", Options{Unsafe: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<sub>2</sub>") {
		t.Errorf("missing subscript: %q", html)
	}
	if !strings.Contains(html, "<sup>2</sup>") {
		t.Errorf("missing superscript: %q", html)
	}
}

func TestRenderRewritesMarkdownLinks(t *testing.T) {
	html, err := Render("[next chapter](other.md)", Options{Unsafe: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `href="other.html"`) {
		t.Errorf("link not rewritten: %q", html)
	}
}

func TestRenderSanitizesByDefault(t *testing.T) {
	html, err := Render("hello <script>alert(1)</script>", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("script not sanitized: %q", html)
	}

	unsafe, err := Render("hello <script>alert(1)</script>", Options{Unsafe: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(unsafe, "<script>") {
		t.Errorf("unsafe mode should keep raw html: %q", unsafe)
	}
}

func TestRenderTitle(t *testing.T) {
	if got := RenderTitle("*fancy* title", Options{}); got != "<em>fancy</em> title" {
		t.Errorf("got %q", got)
	}
	if got := RenderTitle("plain", Options{}); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func TestDropParagraph(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>inner</p>", "inner"},
		{"  <p>inner</p>\n", "inner"},
		{"<div>keep</div>", "<div>keep</div>"},
		{"<p>one</p><p>two</p>", "one</p><p>two"},
	}
	for _, tc := range tests {
		if got := DropParagraph(tc.in); got != tc.want {
			t.Errorf("DropParagraph(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
