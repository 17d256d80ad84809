package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

// blockTags flatten to their trimmed content wrapped in newlines.
var blockTags = map[string]bool{
	"div": true, "p": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "aside": true, "main": true,
}

// Text flattens a sanitized fragment into plain text. Structure that plain
// text extraction would garble is preserved as line breaks: tables become
// tab-separated rows, code blocks keep their raw text, list items get
// bullet or number prefixes, and block-level elements are separated by
// newlines. Text always returns a string and never fails; degraded
// fragments render as their stripped text.
func Text(frag *sanitize.Fragment) string {
	if frag == nil {
		return ""
	}
	if frag.Degraded() {
		return frag.Text()
	}
	root := frag.Root()
	if root == nil {
		return ""
	}
	var sb strings.Builder
	flattenChildren(&sb, root)
	return strings.TrimSpace(sb.String())
}

// flattenChildren folds every child of n into the builder, inserting a line
// break between adjacent siblings that read as separate lines (long spans,
// buttons). Block-level children delimit themselves in flattenNode.
func flattenChildren(sb *strings.Builder, n *html.Node) {
	var prev *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if prev != nil && needsBreak(prev, c) {
				sb.WriteString("\n")
			}
			prev = c
		}
		flattenNode(sb, c)
	}
}

// needsBreak decides whether two adjacent element siblings belong on
// separate lines. Pairs where either side carries almost no text are
// treated as decorative (icons) and left alone.
func needsBreak(a, b *html.Node) bool {
	at := collapse(nodeText(a))
	bt := collapse(nodeText(b))
	if len(at) < 3 || len(bt) < 3 {
		return false
	}
	if a.Data == "button" || b.Data == "button" {
		return true
	}
	if a.Data == "span" && b.Data == "span" && len(at) > 10 && len(bt) > 10 {
		return true
	}
	return false
}

func flattenNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)

	case html.ElementNode:
		switch n.Data {
		case "br":
			sb.WriteString("\n")

		case "table":
			flattenTable(sb, n)

		case "pre", "code":
			sb.WriteString("\n")
			sb.WriteString(nodeText(n))
			sb.WriteString("\n")

		case "ul", "ol":
			flattenList(sb, n)

		default:
			if blockTags[n.Data] {
				var inner strings.Builder
				flattenChildren(&inner, n)
				if t := strings.TrimSpace(inner.String()); t != "" {
					sb.WriteString("\n")
					sb.WriteString(t)
					sb.WriteString("\n")
				}
				return
			}
			flattenChildren(sb, n)
		}
	}
}

// flattenTable renders one line per row with cells joined by a single tab.
// Each cell is flattened independently and collapsed to a single line so a
// row always occupies exactly one line. A table with no rows degrades to
// its raw text content.
func flattenTable(sb *strings.Builder, table *html.Node) {
	rows := findAll(table, "tr")
	if len(rows) == 0 {
		if t := collapse(nodeText(table)); t != "" {
			sb.WriteString("\n")
			sb.WriteString(t)
			sb.WriteString("\n")
		}
		return
	}

	sb.WriteString("\n\n")
	for _, tr := range rows {
		cells := findAll(tr, "td", "th")
		parts := make([]string, 0, len(cells))
		for _, cell := range cells {
			var cb strings.Builder
			flattenChildren(&cb, cell)
			parts = append(parts, collapse(cb.String()))
		}
		sb.WriteString(strings.Join(parts, "\t"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// flattenList renders one prefixed line per item. An item that flattens to
// nothing is skipped; the rest of the list still renders.
func flattenList(sb *strings.Builder, list *html.Node) {
	ordered := list.Data == "ol"

	sb.WriteString("\n\n")
	index := 0
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		var ib strings.Builder
		flattenChildren(&ib, c)
		text := collapse(ib.String())
		if text == "" {
			continue
		}
		if ordered {
			fmt.Fprintf(sb, "%d. %s\n", index+1, text)
		} else {
			sb.WriteString("• ")
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		index++
	}
	sb.WriteString("\n")
}
