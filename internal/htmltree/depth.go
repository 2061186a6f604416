package htmltree

import "golang.org/x/net/html"

// Depth counts how deeply n is nested, walking parent links up to the body.
//
// In list mode (listOnly=true) only ul/ol container boundaries count: an li
// parent never increments, so li→li transitions are not double-counted. The
// first qualifying container yields depth 0; ok=false means no list ancestor
// was found and the node is not actually nested in a list.
//
// Otherwise every non-body ancestor counts and ok is always true.
func Depth(n *html.Node, listOnly bool) (depth int, ok bool) {
	if !listOnly {
		ok = true
	}
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		parent := cur.Parent
		if IsElement(parent, "body") {
			break
		}
		if listOnly {
			if !IsList(parent) || IsElement(parent, "li") {
				continue
			}
			if !ok {
				ok = true
				continue // first container is depth 0
			}
		}
		depth++
	}
	return depth, ok
}
