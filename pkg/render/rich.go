package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

// Rich converts a sanitized fragment with the html-to-markdown library.
// It handles markup the hand-rolled renderer deliberately skips (nested
// lists, horizontal rules, definition lists) at the cost of output that is
// no longer tuned to chat-bubble markup. Conversion failures fall back to
// the plain-text flattener so Rich, like the other renderers, never fails.
func Rich(frag *sanitize.Fragment) string {
	if frag == nil {
		return ""
	}
	if frag.Degraded() {
		return frag.Text()
	}
	out, err := htmltomarkdown.ConvertString(frag.HTML())
	if err != nil {
		return Text(frag)
	}
	return strings.TrimSpace(out)
}
