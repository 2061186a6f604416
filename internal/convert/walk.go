package convert

import (
	"github.com/editorconv/htmldocx/internal/htmltree"
	"golang.org/x/net/html"
)

// walkBody dispatches each direct child of the body, in document order, into
// list flattening, paragraph construction, or bare inline-text construction.
func (b *builder) walkBody(body *html.Node) error {
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case htmltree.IsList(child):
			if err := b.walkList(child); err != nil {
				return err
			}

		case htmltree.IsParagraph(child):
			// The resolver runs once for the node and once more per
			// grandchild. The extra passes can re-apply heading/alignment
			// detection from a shared ancestor; attributes are set-if-unset,
			// so the duplication is harmless but deliberately kept to match
			// the editor's established output.
			var attrs ParaAttrs
			image, err := b.resolveParaAttrs(child, &attrs)
			if err != nil {
				return err
			}
			for gc := child.FirstChild; gc != nil; gc = gc.NextSibling {
				done, err := b.resolveParaAttrs(gc, &attrs)
				if err != nil {
					return err
				}
				if done {
					image = true
					continue
				}
				b.collectRuns(gc, &attrs.Runs, runFormat{})
			}
			if !image || len(attrs.Runs) > 0 {
				b.appendParagraph(attrs)
			}

		default:
			var attrs ParaAttrs
			b.collectRuns(child, &attrs.Runs, runFormat{})
			b.appendParagraph(attrs)
		}
	}
	return nil
}

// collectListItems gathers the list items nested under n, in document order.
// An li whose child is inline text matches as the li itself; an li whose
// child is a heading matches as that heading. A match stops the scan of that
// li's subtree: lists nested inside it are flattened by the re-walk in
// walkList, not by this pass.
func collectListItems(n *html.Node) []*html.Node {
	var items []*html.Node
	var scan func(*html.Node)
	scan = func(n *html.Node) {
		if htmltree.IsElement(n, "li") {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if htmltree.IsText(c) {
					items = append(items, n)
					return
				}
				if htmltree.IsHeading(c) {
					items = append(items, c)
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			scan(c)
		}
	}
	scan(n)
	return items
}

// walkList flattens a list structure into a run of Paragraph blocks. Each
// matched item is emitted with depth-aware decoration; the item's own
// children are then re-walked so lists nested inside it follow immediately,
// one level deeper, still in document order.
func (b *builder) walkList(el *html.Node) error {
	items := collectListItems(el)
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		var attrs ParaAttrs
		if _, err := b.resolveParaAttrs(item, &attrs); err != nil {
			return err
		}
		b.collectRuns(item, &attrs.Runs, runFormat{})
		b.appendParagraph(attrs)

		for c := item.FirstChild; c != nil; c = c.NextSibling {
			if err := b.walkList(c); err != nil {
				return err
			}
		}
	}
	return nil
}
