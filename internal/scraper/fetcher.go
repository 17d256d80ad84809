// Package scraper fetches live conversation pages for capture. Chat UIs
// are JavaScript-rendered SPAs, so the dynamic (headless browser) path is
// the one that usually works; static fetching exists for saved/exported
// pages and tests.
package scraper

import (
	"context"
	"time"
)

// Page is a fetched conversation page.
type Page struct {
	URL        string
	HTML       string
	Title      string
	StatusCode int
	FetchedAt  time.Time
}

// Options controls a single fetch.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	WaitSelector string        // CSS selector to wait for (dynamic only)
	WaitDuration time.Duration // additional settle time after load
	Headers      map[string]string
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves the page at url.
	Fetch(ctx context.Context, url string, opts Options) (Page, error)

	// Close releases resources (browser instances, etc.).
	Close() error

	// Type returns "static", "dynamic", or "auto".
	Type() string
}

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns sensible defaults. The browser user agent matters:
// chat frontends refuse to serve conversation markup to obvious bots.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}
