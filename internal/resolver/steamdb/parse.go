package steamdb

import (
	"strings"

	"golang.org/x/net/html"
)

// latestManifestID extracts the newest manifest id from a depot history
// page. The page lists manifests in a table under a "Previously seen
// manifests" heading, newest first; the id lives in the third cell of the
// first body row. An empty string means the page carries no usable history.
func latestManifestID(doc *html.Node) string {
	heading := findManifestHeading(doc)
	if heading == nil {
		return ""
	}
	table := nextElement(heading, "table")
	if table == nil {
		return ""
	}
	body := findElement(table, "tbody")
	if body == nil {
		return ""
	}
	row := findElement(body, "tr")
	if row == nil {
		return ""
	}
	cells := collectElements(row, "td")
	if len(cells) < 3 {
		return ""
	}
	return manifestIDPattern.FindString(textContent(cells[2]))
}

// findManifestHeading returns the first h2 or h3 element whose text
// mentions the manifest history section.
func findManifestHeading(doc *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			if strings.Contains(textContent(n), manifestHeadingText) {
				found = n
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if doc != nil {
		walk(doc)
	}
	return found
}

// nextElement returns the first element named name that follows after in
// document order.
func nextElement(after *html.Node, name string) *html.Node {
	for node := nextNode(after); node != nil; node = nextNode(node) {
		if node.Type == html.ElementNode && node.Data == name {
			return node
		}
	}
	return nil
}

// nextNode advances one step in depth-first document order.
func nextNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// findElement returns the first descendant of root named name.
func findElement(root *html.Node, name string) *html.Node {
	if root == nil {
		return nil
	}
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n != root && n.Type == html.ElementNode && n.Data == name {
			found = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return found
}

// collectElements returns all descendants of root named name in document
// order.
func collectElements(root *html.Node, name string) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n != root && n.Type == html.ElementNode && n.Data == name {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// textContent flattens the text nodes under a node, trimming each fragment
// and joining with single spaces so adjacent numeric runs stay separate.
func textContent(node *html.Node) string {
	if node == nil {
		return ""
	}
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(parts, " ")
}
