// Package markdown renders Markdown to HTML so Markdown sources can flow
// through the HTML converter unchanged.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// ToHTML renders Markdown source to an HTML fragment.
func ToHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// IsMarkdownExt reports whether ext names a Markdown file.
func IsMarkdownExt(ext string) bool {
	return ext == ".md" || ext == ".markdown"
}
