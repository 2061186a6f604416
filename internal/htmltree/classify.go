package htmltree

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	headingRe    = regexp.MustCompile(`^h[0-6]$`)
	colorClassRe = regexp.MustCompile(`^color:(\w+)$`)
)

// IsElement reports whether n is an element node with the given tag name.
func IsElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == name
}

// IsHeading reports whether n is an h0..h6 element.
func IsHeading(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && headingRe.MatchString(n.Data)
}

// HeadingLevel returns the numeric level of a heading element, or 0.
func HeadingLevel(n *html.Node) int {
	if !IsHeading(n) {
		return 0
	}
	return int(n.Data[1] - '0')
}

// IsAlignment reports whether n is one of the editor's alignment wrappers.
func IsAlignment(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "center", "justify", "left", "right":
		return true
	}
	return false
}

// ColorClass extracts the color word from a class of the form "color:<word>".
func ColorClass(n *html.Node) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	m := colorClassRe.FindStringSubmatch(Attr(n, "class"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsColor reports whether n carries a "color:<word>" class.
func IsColor(n *html.Node) bool {
	_, ok := ColorClass(n)
	return ok
}

// IsFontSize reports whether n's class mentions a font size.
func IsFontSize(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode &&
		strings.Contains(Attr(n, "class"), "font-size")
}

// FontSizePx extracts the pixel value from a "font-size:<px>" class.
func FontSizePx(n *html.Node) (int, bool) {
	if !IsFontSize(n) {
		return 0, false
	}
	class := Attr(n, "class")
	i := strings.Index(class, "font-size")
	rest := class[i+len("font-size"):]
	rest = strings.TrimPrefix(rest, ":")
	var px int
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		px = px*10 + int(r-'0')
	}
	if px == 0 {
		return 0, false
	}
	return px, true
}

// IsList reports whether n is a ul, ol or li element.
func IsList(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "ul", "ol", "li":
		return true
	}
	return false
}

// IsBulletList reports whether n is a <ul class="bullet">.
func IsBulletList(n *html.Node) bool {
	return IsElement(n, "ul") && Attr(n, "class") == "bullet"
}

// IsIndentList reports whether n or any descendant carries class "indent".
func IsIndentList(n *html.Node) bool {
	return n != nil && FindClass(n, "indent") != nil
}

// IsText reports whether n contributes inline content: a text node, one of
// the inline formatting tags, or a color/font-size marker.
func IsText(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == html.TextNode {
		return true
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "s", "u", "em", "strong":
			return true
		}
	}
	return IsColor(n) || IsFontSize(n)
}

// IsParagraph reports whether n is block-level content, i.e. not inline text.
func IsParagraph(n *html.Node) bool {
	return !IsText(n)
}
