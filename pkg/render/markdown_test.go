package render

import (
	"strings"
	"testing"

	"github.com/chatscribe/chatscribe/pkg/sanitize"
)

func md(t *testing.T, input string) string {
	t.Helper()
	return Markdown(sanitize.Sanitize(input))
}

func TestMarkdown_Headings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "h1", input: `<h1>Title</h1>`, want: "# Title"},
		{name: "h2", input: `<h2>Section</h2>`, want: "## Section"},
		{name: "h3", input: `<h3>Sub</h3>`, want: "### Sub"},
		{name: "h6", input: `<h6>Deep</h6>`, want: "###### Deep"},
		{name: "empty heading dropped", input: `<h2>  </h2><p>body</p>`, want: "body"},
		{name: "heading then paragraph", input: `<h2>Title</h2><p>body</p>`, want: "## Title\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_InlineStyles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strong",
			input: `<p>Hello <strong>world</strong></p>`,
			want:  "Hello **world**",
		},
		{
			name:  "b treated as strong",
			input: `<p><b>bold</b> text</p>`,
			want:  "**bold** text",
		},
		{
			name:  "em",
			input: `<p>an <em>emphatic</em> word</p>`,
			want:  "an *emphatic* word",
		},
		{
			name:  "i treated as em",
			input: `<p><i>soft</i> voice</p>`,
			want:  "*soft* voice",
		},
		{
			name:  "inline code",
			input: `<p>run <code>go vet ./...</code> first</p>`,
			want:  "run `go vet ./...` first",
		},
		{
			name:  "nested strong inside em",
			input: `<p><em>very <strong>bold</strong></em></p>`,
			want:  "*very **bold***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_Links(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "link with href",
			input: `<p><a href="https://example.com">the site</a></p>`,
			want:  "[the site](https://example.com)",
		},
		{
			name:  "link without href keeps text",
			input: `<p><a>orphan</a></p>`,
			want:  "orphan",
		},
		{
			name:  "sanitized javascript link degrades to text",
			input: `<p><a href="javascript:alert(1)">click</a></p>`,
			want:  "click",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_Images(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "image with src and alt",
			input: `<p><img src="https://example.com/i.png" alt="a chart"></p>`,
			want:  "![a chart](https://example.com/i.png)",
		},
		{
			name:  "image without src keeps alt placeholder",
			input: `<p><img alt="diagram"></p>`,
			want:  "[Image: diagram]",
		},
		{
			name:  "sanitized data uri degrades to placeholder",
			input: `<p><img src="data:image/png;base64,AAAA" alt="inline pic"></p>`,
			want:  "[Image: inline pic]",
		},
		{
			name:  "image with neither renders nothing",
			input: `<p>before<img>after</p>`,
			want:  "beforeafter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_Blockquotes(t *testing.T) {
	t.Run("every line prefixed", func(t *testing.T) {
		got := md(t, `<blockquote>wise<br>words</blockquote>`)
		want := "> wise\n> words"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("quote with paragraphs", func(t *testing.T) {
		got := md(t, `<blockquote><p>one</p><p>two</p></blockquote>`)
		for _, line := range strings.Split(got, "\n") {
			if line != "" && !strings.HasPrefix(line, ">") {
				t.Errorf("line %q missing quote prefix in %q", line, got)
			}
		}
	})
}

func TestMarkdown_Lists(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unordered",
			input: `<ul><li>apples</li><li>pears</li></ul>`,
			want:  "- apples\n- pears",
		},
		{
			name:  "ordered",
			input: `<ol><li>first</li><li>second</li></ol>`,
			want:  "1. first\n2. second",
		},
		{
			name:  "item with inline markup",
			input: `<ul><li>use <code>make</code></li></ul>`,
			want:  "- use `make`",
		},
		{
			name:  "list between paragraphs",
			input: `<p>options:</p><ul><li>a</li><li>b</li></ul><p>done</p>`,
			want:  "options:\n\n- a\n- b\n\ndone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_Tables(t *testing.T) {
	t.Run("separator after first row", func(t *testing.T) {
		got := md(t, `<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`)
		want := "| A |\n| --- |\n| 1 |"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("multi column", func(t *testing.T) {
		got := md(t, `<table><tr><th>name</th><th>age</th></tr><tr><td>alice</td><td>30</td></tr></table>`)
		want := "| name | age |\n| --- | --- |\n| alice | 30 |"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("literal pipes escaped", func(t *testing.T) {
		got := md(t, `<table><tr><td>a|b</td></tr></table>`)
		if !strings.Contains(got, `a\|b`) {
			t.Errorf("Markdown() = %q, want escaped pipe", got)
		}
	})

	t.Run("empty table renders nothing", func(t *testing.T) {
		got := md(t, `<p>before</p><table></table><p>after</p>`)
		want := "before\n\nafter"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})
}

func TestMarkdown_CodeBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced with language class",
			input: `<pre><code class="language-go">fmt.Println(1)</code></pre>`,
			want:  "```go\nfmt.Println(1)\n```",
		},
		{
			name:  "lang- class prefix",
			input: `<pre><code class="lang-python">print(1)</code></pre>`,
			want:  "```python\nprint(1)\n```",
		},
		{
			name:  "data-language attribute",
			input: `<pre data-language="sh">ls -la</pre>`,
			want:  "```sh\nls -la\n```",
		},
		{
			name:  "no language",
			input: `<pre><code>plain()</code></pre>`,
			want:  "```\nplain()\n```",
		},
		{
			name:  "multiline body preserved",
			input: "<pre><code>line1\nline2</code></pre>",
			want:  "```\nline1\nline2\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_UnknownTagsPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "custom element",
			input: `<message-meta>sent today</message-meta>`,
			want:  "sent today",
		},
		{
			name:  "span wrapper invisible",
			input: `<p><span>wrapped</span> text</p>`,
			want:  "wrapped text",
		},
		{
			name:  "deeply wrapped strong survives",
			input: `<div><span><strong>bold</strong></span></div>`,
			want:  "**bold**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := md(t, tt.input); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown_Tidy(t *testing.T) {
	t.Run("at most one blank line between blocks", func(t *testing.T) {
		got := md(t, `<p>one</p><p></p><p>  </p><p>two</p>`)
		want := "one\n\ntwo"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("no leading or trailing whitespace", func(t *testing.T) {
		got := md(t, `  <p>body</p>  `)
		if got != strings.TrimSpace(got) {
			t.Errorf("Markdown() = %q, want trimmed", got)
		}
	})
}

func TestMarkdown_NilAndEmpty(t *testing.T) {
	if got := Markdown(nil); got != "" {
		t.Errorf("Markdown(nil) = %q, want empty", got)
	}
	if got := md(t, ""); got != "" {
		t.Errorf("Markdown(empty) = %q, want empty", got)
	}
}

func TestRender_FormatDispatch(t *testing.T) {
	frag := sanitize.Sanitize(`<p>Hello <strong>world</strong></p>`)

	if got := Render(frag, FormatText); got != "Hello world" {
		t.Errorf("Render(text) = %q", got)
	}
	if got := Render(frag, FormatMarkdown); got != "Hello **world**" {
		t.Errorf("Render(markdown) = %q", got)
	}
	// Unknown formats fall back to text.
	if got := Render(frag, Format("pdf")); got != "Hello world" {
		t.Errorf("Render(unknown) = %q", got)
	}
}
