package convert

import (
	"fmt"
	"math"

	"github.com/editorconv/htmldocx/internal/htmltree"
	"golang.org/x/net/html"
)

// resolveParaAttrs accumulates block-level formatting for n by walking its
// ancestor chain up to the body. Fields already set by a nearer node win by
// simply not being overwritten. Detection order per node: heading, code
// style, alignment, list decoration, then the image check.
//
// An <img> is terminal: its source is materialized, an image block is
// appended, and the walk reports done=true so the caller skips the paragraph.
func (b *builder) resolveParaAttrs(n *html.Node, attrs *ParaAttrs) (done bool, err error) {
	return b.resolveParaAttrsFrom(n, n, attrs)
}

// resolveParaAttrsFrom carries the node the resolution started from: list
// nesting depth is always measured at the starting node, even when the
// decoration itself is detected on an ancestor.
func (b *builder) resolveParaAttrsFrom(start, n *html.Node, attrs *ParaAttrs) (done bool, err error) {
	if attrs.Heading == 0 {
		attrs.Heading = htmltree.HeadingLevel(n)
	}
	if attrs.Style == "" && htmltree.IsElement(n, "code") {
		attrs.Style = StyleCode
	}
	if attrs.Alignment == "" && htmltree.IsAlignment(n) {
		attrs.Alignment = Alignment(n.Data)
	}
	if attrs.List.Kind == ListNone {
		attrs.List = listDecoration(start, n)
	}

	if htmltree.IsElement(n, "img") {
		path, err := b.images.Resolve(b.ctx, htmltree.Attr(n, "src"))
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrImageResolve, err)
		}
		b.appendImage(path)
		return true, nil
	}

	if n.Parent == nil || htmltree.IsElement(n, "body") {
		return false, nil
	}
	return b.resolveParaAttrsFrom(start, n.Parent, attrs)
}

// listDecoration classifies n as one list decoration kind. The nesting depth
// is measured at start via the list-ancestor count; an indent marker outside
// any list falls back to plain nesting depth.
func listDecoration(start, n *html.Node) ListDecoration {
	switch {
	case htmltree.IsBulletList(n):
		depth, ok := htmltree.Depth(start, true)
		if !ok {
			depth = 0
		}
		return ListDecoration{Kind: ListBullet, Depth: depth}
	case htmltree.IsElement(n, "ol"):
		depth, ok := htmltree.Depth(start, true)
		if !ok {
			depth = 0
		}
		return ListDecoration{Kind: ListNumber, Depth: depth, Ref: NumberingRef}
	case htmltree.IsList(n) && htmltree.IsIndentList(n):
		depth, ok := htmltree.Depth(start, true)
		if !ok {
			depth, _ = htmltree.Depth(start, false)
		}
		return ListDecoration{Kind: ListIndent, Depth: depth}
	}
	return ListDecoration{}
}

// collectRuns walks n's subtree depth-first, threading the inline format by
// value so each branch only sees the flags accumulated along its own path.
// Text nodes finalize the current format into a Run. Nested lists are left
// for the list flattener.
func (b *builder) collectRuns(n *html.Node, runs *[]Run, f runFormat) {
	if word, ok := htmltree.ColorClass(n); ok {
		if hex, ok := b.styles.ColorHex(word); ok {
			f.Color = hex
		}
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "strong":
			f.Bold = true
		case "em":
			f.Italic = true
		case "u":
			f.Underline = true
		case "s":
			f.Strike = true
		}
	}
	if px, ok := htmltree.FontSizePx(n); ok {
		f.Size = halfPoints(px)
	}

	if n.Type == html.TextNode {
		*runs = append(*runs, Run{Text: n.Data, runFormat: f})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if htmltree.IsList(c) {
			continue
		}
		b.collectRuns(c, runs, f)
	}
}

// halfPoints converts a CSS pixel size to OOXML half-points: px → points at
// 0.75pt/px rounded to the nearest half point, then doubled.
func halfPoints(px int) int {
	points := math.Round(float64(px)*0.75*2) / 2
	return int(points * 2)
}
