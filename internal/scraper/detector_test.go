package scraper

import (
	"strings"
	"testing"
)

func TestNeedsJavaScript(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			name: "empty react root",
			html: `<html><body><div id="root"></div></body></html>`,
			want: true,
		},
		{
			name: "empty next root",
			html: `<html><body><div id="__next"></div></body></html>`,
			want: true,
		},
		{
			name: "angular shell",
			html: `<html><body><app-root></app-root></body></html>`,
			want: true,
		},
		{
			name: "short page with noscript",
			html: `<html><body><noscript>Enable JavaScript</noscript></body></html>`,
			want: true,
		},
		{
			name: "rendered content",
			html: `<html><body><article>` + strings.Repeat("real content ", 200) + `</article></body></html>`,
			want: false,
		},
		{
			name: "empty page",
			html: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsJavaScript(Page{HTML: tt.html}); got != tt.want {
				t.Errorf("needsJavaScript() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFetcher(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		f, err := NewFetcher(ModeStatic, DefaultConfig())
		if err != nil {
			t.Fatalf("NewFetcher() error: %v", err)
		}
		defer f.Close()
		if f.Type() != "static" {
			t.Errorf("Type() = %q, want static", f.Type())
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		if _, err := NewFetcher(Mode("carrier-pigeon"), DefaultConfig()); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}
