// Package extractor pulls ordered {role, html} message records out of a
// full chat page. Selection is deliberately thin and site-specific; the
// processing core only ever sees the records this package emits and does
// its own sanitization.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/chatscribe/chatscribe/pkg/transcript"
)

// Platform identifies a supported chat site.
type Platform string

const (
	PlatformChatGPT Platform = "chatgpt"
	PlatformClaude  Platform = "claude"
	PlatformGemini  Platform = "gemini"
	PlatformGrok    Platform = "grok"
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform maps a conversation URL to a platform.
func DetectPlatform(rawURL string) Platform {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case hostMatches(host, "chatgpt.com"), hostMatches(host, "chat.openai.com"):
		return PlatformChatGPT
	case hostMatches(host, "claude.ai"):
		return PlatformClaude
	case hostMatches(host, "gemini.google.com"):
		return PlatformGemini
	case hostMatches(host, "grok.com"), hostMatches(host, "x.com"):
		return PlatformGrok
	default:
		return PlatformUnknown
	}
}

func hostMatches(host, allowed string) bool {
	return host == allowed || strings.HasSuffix(host, "."+allowed)
}

// Messages extracts the ordered message list from a chat page.
func Messages(pageHTML string, platform Platform) ([]transcript.Message, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	switch platform {
	case PlatformChatGPT:
		return chatgptMessages(doc), nil
	case PlatformClaude:
		return claudeMessages(doc), nil
	case PlatformGemini:
		return geminiMessages(doc), nil
	case PlatformGrok:
		return grokMessages(doc), nil
	default:
		return fallbackMessages(doc), nil
	}
}

// chatgptMessages reads the author role ChatGPT annotates on every turn.
func chatgptMessages(doc *goquery.Document) []transcript.Message {
	var msgs []transcript.Message
	doc.Find("[data-message-author-role]").Each(func(_ int, s *goquery.Selection) {
		role := s.AttrOr("data-message-author-role", "user")
		body := s.Find(".markdown").First()
		if body.Length() == 0 {
			body = s
		}
		appendMessage(&msgs, role, body)
	})
	return msgs
}

// claudeMessages distinguishes turns by Claude's bubble test IDs.
func claudeMessages(doc *goquery.Document) []transcript.Message {
	var msgs []transcript.Message
	doc.Find(`div[data-testid="user-message"], div.font-claude-message`).Each(func(_ int, s *goquery.Selection) {
		role := "assistant"
		if s.Is(`div[data-testid="user-message"]`) {
			role = "user"
		}
		appendMessage(&msgs, role, s)
	})
	return msgs
}

// geminiMessages uses Gemini's custom elements for each side of a turn.
func geminiMessages(doc *goquery.Document) []transcript.Message {
	var msgs []transcript.Message
	doc.Find("user-query, model-response").Each(func(_ int, s *goquery.Selection) {
		role := "assistant"
		if goquery.NodeName(s) == "user-query" {
			role = "user"
		}
		appendMessage(&msgs, role, s)
	})
	return msgs
}

// grokMessages alternates roles by bubble position. Grok's markup carries
// no author annotation, so this is a best-effort heuristic, not a
// structural guarantee.
func grokMessages(doc *goquery.Document) []transcript.Message {
	var msgs []transcript.Message
	doc.Find("div.message-bubble").Each(func(i int, s *goquery.Selection) {
		role := "assistant"
		if i%2 == 0 {
			role = "user"
		}
		appendMessage(&msgs, role, s)
	})
	return msgs
}

// fallbackMessages degrades an unknown page to one assistant message
// holding the whole body, so capture still produces something readable.
func fallbackMessages(doc *goquery.Document) []transcript.Message {
	var msgs []transcript.Message
	appendMessage(&msgs, "assistant", doc.Find("body"))
	return msgs
}

func appendMessage(msgs *[]transcript.Message, role string, s *goquery.Selection) {
	h, err := s.Html()
	if err != nil || strings.TrimSpace(h) == "" {
		return
	}
	*msgs = append(*msgs, transcript.Message{Role: role, Content: h})
}
