// Package sanitize parses untrusted HTML fragments and strips executable
// content before rendering. It is a block-list sanitizer (scripts, styles,
// event handlers, dangerous URL schemes), not a full allow-list policy:
// treat it as defense-in-depth, not an XSS-proof guarantee.
package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// urlAttrs are the attributes checked for dangerous URL schemes.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"data":       true,
}

// dangerousSchemes removed from urlAttrs when the trimmed, lower-cased
// attribute value starts with one of them.
var dangerousSchemes = []string{
	"javascript:",
	"data:",
	"vbscript:",
	"file:",
}

// Fragment is a sanitized, detached HTML subtree built fresh from one
// message's markup. It is owned exclusively by the caller and discarded
// after rendering; no node is ever shared across fragments.
type Fragment struct {
	sel  *goquery.Selection // body of the parsed fragment; nil in degraded mode
	text string             // degraded-mode plain text
}

// Sanitize parses an HTML fragment leniently and removes script and style
// subtrees, every attribute whose name starts with "on", and URL-bearing
// attributes carrying a dangerous scheme. Malformed markup is repaired by
// the parser rather than rejected; an empty fragment yields an empty
// container. Sanitize never fails: if parsing itself breaks down, the
// result degrades to a text-only fragment produced by StripTags.
func Sanitize(fragment string) *Fragment {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return &Fragment{text: StripTags(fragment)}
	}

	doc.Find("script, style").Remove()

	body := doc.Find("body")
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		scrubAttributes(s.Nodes[0])
	})

	return &Fragment{sel: body}
}

// scrubAttributes drops event-handler attributes and dangerous-scheme URL
// attributes from a single element node.
func scrubAttributes(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if urlAttrs[key] && hasDangerousScheme(a.Val) {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func hasDangerousScheme(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}

// Degraded reports whether full parsing was unavailable and the fragment
// holds only regex-stripped text.
func (f *Fragment) Degraded() bool {
	return f.sel == nil
}

// Root returns the root node of the sanitized subtree, or nil in degraded
// mode.
func (f *Fragment) Root() *html.Node {
	if f.sel == nil || len(f.sel.Nodes) == 0 {
		return nil
	}
	return f.sel.Nodes[0]
}

// Selection returns the sanitized subtree as a goquery selection, or nil in
// degraded mode.
func (f *Fragment) Selection() *goquery.Selection {
	return f.sel
}

// HTML serializes the sanitized subtree back to markup. Degraded fragments
// serialize to their escaped text.
func (f *Fragment) HTML() string {
	if f.sel == nil {
		return html.EscapeString(f.text)
	}
	h, err := f.sel.Html()
	if err != nil {
		return ""
	}
	return h
}

// Text returns the raw concatenated text content of the fragment.
func (f *Fragment) Text() string {
	if f.sel == nil {
		return f.text
	}
	return f.sel.Text()
}
