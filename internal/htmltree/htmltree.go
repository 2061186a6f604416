// Package htmltree wraps golang.org/x/net/html with the node helpers the
// converter needs: body lookup, attribute access, and class-based searches.
package htmltree

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

var ErrNoBody = errors.New("document has no body element")

// Parse parses an HTML document and returns its <body> element.
// x/net/html synthesizes html/head/body for fragments, so a missing body
// only happens on truly broken input.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return nil, ErrNoBody
	}
	return body, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// FindClass returns the first node in document order (n itself included)
// whose class attribute exactly equals class, or nil. The tree is acyclic by
// construction, so a plain depth-first search is safe; depth is bounded
// defensively for pathological input.
func FindClass(n *html.Node, class string) *html.Node {
	return findClass(n, class, 0)
}

const maxSearchDepth = 512

func findClass(n *html.Node, class string, depth int) *html.Node {
	if n == nil || depth > maxSearchDepth {
		return nil
	}
	if Attr(n, "class") == class {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findClass(c, class, depth+1); m != nil {
			return m
		}
	}
	return nil
}
