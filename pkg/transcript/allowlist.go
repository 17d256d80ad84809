package transcript

import (
	"net/url"
	"strings"
)

// allowedHosts is the fixed set of hosts whose URLs may appear in the
// document preamble. Subdomains of each entry are also accepted.
var allowedHosts = []string{
	"chat.openai.com",
	"chatgpt.com",
	"claude.ai",
	"gemini.google.com",
	"x.com",
	"grok.com",
}

// IsValidURL reports whether candidate may be embedded in the document
// preamble. Only well-formed http/https URLs on allow-listed hosts pass;
// everything else is rejected so an attacker-controlled page cannot spoof
// the "chat url" line.
func IsValidURL(candidate string) bool {
	u, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
