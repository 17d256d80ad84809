package scraper

import (
	"context"
	"fmt"
	"strings"
)

// Mode determines how pages are fetched.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// NewFetcher creates an appropriate fetcher for the mode.
func NewFetcher(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic:
		return NewStaticFetcher(cfg), nil
	case ModeDynamic:
		return NewDynamicFetcher(cfg)
	case ModeAuto:
		return NewAutoFetcher(cfg)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", mode)
	}
}

// AutoFetcher tries a static fetch first and falls back to the browser
// when the page looks like an unhydrated SPA shell.
type AutoFetcher struct {
	static  *StaticFetcher
	dynamic *DynamicFetcher
}

// NewAutoFetcher creates an auto-detecting fetcher.
func NewAutoFetcher(cfg Config) (*AutoFetcher, error) {
	dynamic, err := NewDynamicFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic fetcher: %w", err)
	}
	return &AutoFetcher{
		static:  NewStaticFetcher(cfg),
		dynamic: dynamic,
	}, nil
}

// Fetch tries static first, then dynamic if the page needs JavaScript.
func (f *AutoFetcher) Fetch(ctx context.Context, url string, opts Options) (Page, error) {
	page, err := f.static.Fetch(ctx, url, opts)
	if err != nil {
		return f.dynamic.Fetch(ctx, url, opts)
	}
	if needsJavaScript(page) {
		return f.dynamic.Fetch(ctx, url, opts)
	}
	return page, nil
}

// spaMarkers are empty mount points the major chat frontends ship before
// hydration.
var spaMarkers = []string{
	`<div id="root"></div>`,
	`<div id="app"></div>`,
	`<div id="__next"></div>`,
	`<div data-reactroot`,
	"<app-root></app-root>",
}

// needsJavaScript reports whether a fetched page appears to be an
// unhydrated client-side app.
func needsJavaScript(page Page) bool {
	html := strings.ToLower(page.HTML)
	for _, marker := range spaMarkers {
		if strings.Contains(html, marker) {
			return true
		}
	}

	// A conversation page with almost no body text was not hydrated.
	stripped := strings.TrimSpace(page.HTML)
	if len(stripped) > 0 && len(stripped) < 2048 && strings.Contains(html, "<noscript>") {
		return true
	}
	return false
}

// Close releases all fetcher resources.
func (f *AutoFetcher) Close() error {
	if f.dynamic != nil {
		return f.dynamic.Close()
	}
	return nil
}

// Type returns the fetcher type.
func (f *AutoFetcher) Type() string {
	return "auto"
}
