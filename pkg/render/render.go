// Package render converts sanitized HTML fragments into plain text or
// Markdown. Both renderers fold the tree functionally: nodes are never
// mutated or replaced, so rendering order cannot corrupt the source tree
// and a fragment can be rendered more than once.
package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatRich     Format = "rich"
)

// Render converts a sanitized fragment using the named format. Unknown
// formats fall back to plain text.
func Render(frag *sanitize.Fragment, format Format) string {
	switch format {
	case FormatMarkdown:
		return Markdown(frag)
	case FormatRich:
		return Rich(frag)
	default:
		return Text(frag)
	}
}

// collapse normalizes all interior whitespace runs to single spaces and
// trims the edges.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nodeText concatenates all text descendants of n in document order.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return sb.String()
}

// findAll collects descendant elements matching any of the given tags, in
// document order.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			for _, tag := range tags {
				if c.Data == tag {
					out = append(out, c)
					break
				}
			}
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// findFirst returns the first descendant element with the given tag.
func findFirst(n *html.Node, tag string) *html.Node {
	matches := findAll(n, tag)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
