package deck

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// walk visits every node in the tree in document (pre-) order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the element's class list contains the given class.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent collects the concatenated text of all descendant text nodes.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// renderNode serializes a node back to HTML.
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// findTitle returns the document <title> text, or "".
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return strings.TrimSpace(textContent(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// findSlideContainers returns the outermost elements carrying the slide
// marker class, in document order. Descendants of a matched container are
// not matched again.
func findSlideContainers(root *html.Node) []*html.Node {
	var out []*html.Node
	var search func(*html.Node)
	search = func(n *html.Node) {
		if hasClass(n, SlideMarkerClass) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(root)
	return out
}

// canvasElements returns all descendant canvas elements that carry an id.
func canvasElements(n *html.Node) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == atom.Canvas && attrVal(c, "id") != "" {
			out = append(out, c)
		}
	})
	return out
}

// CanvasIDsIn parses an HTML string and returns the ids of every canvas
// element in it, in document order.
func CanvasIDsIn(fragment string) []string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	var ids []string
	for _, c := range canvasElements(root) {
		ids = append(ids, attrVal(c, "id"))
	}
	return ids
}
