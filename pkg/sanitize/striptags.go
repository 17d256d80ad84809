package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRegex = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagRegex         = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the fixed entity set supported in degraded mode.
// A single pass avoids double-decoding "&amp;lt;" into "<".
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripTags is the degraded-mode sanitizer used when real parsing is
// unavailable. It removes script and style blocks, strips all remaining
// tags, decodes a fixed set of entities, and collapses whitespace. Fidelity
// is intentionally low; this path only keeps the pipeline from failing.
func StripTags(fragment string) string {
	s := scriptBlockRegex.ReplaceAllString(fragment, "")
	s = styleBlockRegex.ReplaceAllString(s, "")
	s = tagRegex.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
