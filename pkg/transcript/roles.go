package transcript

import (
	"strings"
	"unicode"
)

// roleLabels maps known role tokens to display labels.
var roleLabels = map[string]string{
	"user":      "User",
	"assistant": "Assistant",
	"system":    "System",
	"claude":    "Claude",
	"gpt":       "ChatGPT",
	"gemini":    "Gemini",
	"grok":      "Grok",
}

// RoleDisplay returns the header label for a role token. Unknown roles are
// title-cased verbatim.
func RoleDisplay(role string) string {
	key := strings.ToLower(strings.TrimSpace(role))
	if label, ok := roleLabels[key]; ok {
		return label
	}
	return titleCase(strings.TrimSpace(role))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
