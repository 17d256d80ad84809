// Package transcript assembles ordered chat messages into a single
// exported document. Each message's HTML content is sanitized and rendered
// independently; the assembler owns every intermediate tree and discards it
// once the message's block is produced, so calls are safe to run
// concurrently from independent call sites.
package transcript

import (
	"fmt"
	"strings"

	"github.com/chatscribe/chatscribe/pkg/render"
	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

// Message is one turn of a conversation. Content is a raw, untrusted HTML
// fragment. Messages are never mutated.
type Message struct {
	Role    string `json:"role" yaml:"role" validate:"required"`
	Content string `json:"content" yaml:"content" validate:"required"`
}

// Options configures document assembly.
type Options struct {
	// IncludeTimestamps is accepted for forward compatibility but has no
	// effect on output yet.
	IncludeTimestamps bool

	// IncludeMetadata controls the "chat url:" preamble line.
	IncludeMetadata bool

	// Platform names the source platform ("chatgpt", "claude", ...).
	Platform string

	// URL is the conversation source URL. It is embedded in the preamble
	// only if it passes the allow-list check.
	URL string
}

// DefaultOptions returns the assembly defaults.
func DefaultOptions() Options {
	return Options{
		IncludeMetadata: true,
		Platform:        "unknown",
	}
}

// Warning records a non-fatal degradation during assembly.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (%s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the assembled document plus any degradation warnings. Warnings
// never abort assembly; they exist for diagnostics.
type Result struct {
	Content  string    `json:"content"`
	Warnings []Warning `json:"warnings,omitempty"`
}

func (r *Result) addWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}

// HasWarnings reports whether any degradation occurred.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Assemble renders every message and joins the blocks into one document.
// Output is deterministic for identical input and assembly never fails;
// malformed content degrades per message.
func Assemble(msgs []Message, format render.Format, opts Options) string {
	return AssembleWithResult(msgs, format, opts).Content
}

// AssembleWithResult is Assemble plus degradation warnings.
func AssembleWithResult(msgs []Message, format render.Format, opts Options) *Result {
	res := &Result{}

	blocks := make([]string, 0, len(msgs))
	for i, m := range msgs {
		frag := sanitize.Sanitize(m.Content)
		if frag.Degraded() {
			res.addWarning("sanitize", "parse degraded to text fallback", fmt.Sprintf("message %d", i))
		}
		body := strings.TrimSpace(render.Render(frag, format))
		blocks = append(blocks, RoleDisplay(m.Role)+":\n"+body)
	}

	doc := strings.Join(blocks, "\n\n")

	if opts.IncludeMetadata && opts.URL != "" {
		if IsValidURL(opts.URL) {
			doc = "chat url: " + opts.URL + "\n\n" + doc
		} else {
			res.addWarning("preamble", "source URL rejected by allow-list", opts.URL)
		}
	}

	res.Content = strings.TrimSpace(doc)
	return res
}
