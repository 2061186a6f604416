package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML([]byte("# Title\n\nSome **bold** text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("output missing heading, got: %s", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("output missing strong tag, got: %s", out)
	}
}

func TestToHTMLList(t *testing.T) {
	out, err := ToHTML([]byte("- one\n- two\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<ul>") || !strings.Contains(out, "<li>one</li>") {
		t.Errorf("output missing list markup, got: %s", out)
	}
}

func TestIsMarkdownExt(t *testing.T) {
	for ext, want := range map[string]bool{
		".md":       true,
		".markdown": true,
		".html":     false,
		"":          false,
	} {
		if got := IsMarkdownExt(ext); got != want {
			t.Errorf("IsMarkdownExt(%q) = %v, want %v", ext, got, want)
		}
	}
}
