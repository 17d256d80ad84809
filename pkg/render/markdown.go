package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

// Markdown renders a sanitized fragment as Markdown. The supported tag set
// is the closed switch in renderNode; anything outside it passes its
// children through unchanged, so unknown structures degrade to plain text
// instead of failing. Children are rendered first and the tag's converter
// wraps the result.
func Markdown(frag *sanitize.Fragment) string {
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
	renderChildren(&sb, root)
	return tidyMarkdown(sb.String())
}

func renderChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(sb, c)
	}
}

// childMarkdown renders the children of n into a fresh buffer.
func childMarkdown(n *html.Node) string {
	var sb strings.Builder
	renderChildren(&sb, n)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		writeText(sb, n.Data)

	case html.ElementNode:
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			if t := strings.TrimSpace(childMarkdown(n)); t != "" {
				sb.WriteString(strings.Repeat("#", level))
				sb.WriteString(" ")
				sb.WriteString(t)
				sb.WriteString("\n\n")
			}

		case "p":
			if t := strings.TrimSpace(childMarkdown(n)); t != "" {
				sb.WriteString(t)
				sb.WriteString("\n\n")
			}

		case "br":
			sb.WriteString("\n")

		case "strong", "b":
			if t := strings.TrimSpace(childMarkdown(n)); t != "" {
				sb.WriteString("**")
				sb.WriteString(t)
				sb.WriteString("**")
			}

		case "em", "i":
			if t := strings.TrimSpace(childMarkdown(n)); t != "" {
				sb.WriteString("*")
				sb.WriteString(t)
				sb.WriteString("*")
			}

		case "code":
			if t := collapse(nodeText(n)); t != "" {
				sb.WriteString("`")
				sb.WriteString(t)
				sb.WriteString("`")
			}

		case "a":
			t := strings.TrimSpace(childMarkdown(n))
			href := attr(n, "href")
			if href == "" {
				sb.WriteString(t)
				return
			}
			sb.WriteString("[")
			sb.WriteString(t)
			sb.WriteString("](")
			sb.WriteString(href)
			sb.WriteString(")")

		case "img":
			renderImage(sb, n)

		case "blockquote":
			t := strings.TrimSpace(childMarkdown(n))
			if t == "" {
				return
			}
			for _, line := range strings.Split(t, "\n") {
				sb.WriteString("> ")
				sb.WriteString(strings.TrimSpace(line))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")

		case "ul", "ol":
			renderList(sb, n)

		case "table":
			renderTable(sb, n)

		case "pre":
			renderCodeBlock(sb, n)

		default:
			renderChildren(sb, n)
		}
	}
}

// writeText collapses a text node's whitespace while keeping single-space
// boundaries against neighboring inline output. Boundary spaces are dropped
// at the start of a line.
func writeText(sb *strings.Builder, data string) {
	core := collapse(data)
	atLineStart := sb.Len() == 0 || strings.HasSuffix(sb.String(), "\n")
	if core == "" {
		if data != "" && !atLineStart {
			sb.WriteString(" ")
		}
		return
	}
	if !atLineStart && startsWithSpace(data) {
		sb.WriteString(" ")
	}
	sb.WriteString(core)
	if endsWithSpace(data) {
		sb.WriteString(" ")
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\n\r") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\n\r") != s
}

func renderImage(sb *strings.Builder, n *html.Node) {
	alt := strings.TrimSpace(attr(n, "alt"))
	if alt == "" {
		alt = collapse(nodeText(n))
	}
	src := attr(n, "src")
	if src != "" {
		sb.WriteString("![")
		sb.WriteString(alt)
		sb.WriteString("](")
		sb.WriteString(src)
		sb.WriteString(")")
		return
	}
	if alt != "" {
		sb.WriteString("[Image: ")
		sb.WriteString(alt)
		sb.WriteString("]")
	}
}

// renderList emits one line per item. Ordered items are numbered by their
// position among the parent's element children; nesting beyond one prefix
// level is not attempted.
func renderList(sb *strings.Builder, list *html.Node) {
	ordered := list.Data == "ol"
	counter := 0
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		counter++
		if ordered {
			fmt.Fprintf(sb, "%d. ", counter)
		} else {
			sb.WriteString("- ")
		}
		sb.WriteString(strings.TrimSpace(childMarkdown(c)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// renderTable emits one pipe-delimited line per row, with a "---" separator
// after the first row. Cells are flattened to single-line text with literal
// pipes escaped. An empty table renders to nothing.
func renderTable(sb *strings.Builder, table *html.Node) {
	rows := findAll(table, "tr")
	if len(rows) == 0 {
		return
	}
	for i, tr := range rows {
		cells := findAll(tr, "td", "th")
		parts := make([]string, 0, len(cells))
		for _, cell := range cells {
			var cb strings.Builder
			flattenChildren(&cb, cell)
			text := collapse(cb.String())
			parts = append(parts, strings.ReplaceAll(text, "|", `\|`))
		}
		sb.WriteString("| ")
		sb.WriteString(strings.Join(parts, " | "))
		sb.WriteString(" |\n")
		if i == 0 {
			sb.WriteString("|")
			sb.WriteString(strings.Repeat(" --- |", len(cells)))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

// renderCodeBlock emits a fenced block from the first descendant code
// element, falling back to the pre's own text. The language tag comes from
// a language-*/lang-* class or a data-language attribute.
func renderCodeBlock(sb *strings.Builder, pre *html.Node) {
	text := nodeText(pre)
	lang := codeLanguage(pre)
	if code := findFirst(pre, "code"); code != nil {
		text = nodeText(code)
		if l := codeLanguage(code); l != "" {
			lang = l
		}
	}
	sb.WriteString("```")
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(strings.Trim(text, "\n"))
	sb.WriteString("\n```\n\n")
}

func codeLanguage(n *html.Node) string {
	for _, cls := range strings.Fields(attr(n, "class")) {
		if lang, ok := strings.CutPrefix(cls, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(cls, "lang-"); ok {
			return lang
		}
	}
	return strings.TrimSpace(attr(n, "data-language"))
}

// tidyMarkdown trims trailing space per line, collapses blank-line runs to
// a single blank line, and trims the edges.
func tidyMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks <= 1 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
