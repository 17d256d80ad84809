package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/chatscribe/chatscribe/internal/logger"
)

// DynamicFetcher renders pages in headless Chrome via chromedp. This is
// the path that works against live chat frontends, which ship an empty
// shell and hydrate the conversation client-side.
type DynamicFetcher struct {
	config   Config
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewDynamicFetcher creates a dynamic fetcher backed by one browser
// allocator; each Fetch gets its own tab context.
func NewDynamicFetcher(cfg Config) (*DynamicFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	logger.Debug("dynamic fetcher created", "user_agent", cfg.UserAgent, "timeout", cfg.Timeout)

	return &DynamicFetcher{
		config:   cfg,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Fetch renders the page and returns its hydrated HTML.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Page, error) {
	page := Page{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	waitSelector := opts.WaitSelector
	if waitSelector == "" {
		waitSelector = "body"
	}

	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitVisible(waitSelector),
	}
	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}

	var html, title string
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
	)

	logger.Debug("dynamic fetch starting", "url", targetURL, "wait_selector", waitSelector)
	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		return page, fmt.Errorf("browser automation failed: %w", err)
	}

	page.HTML = html
	page.Title = title
	page.StatusCode = 200 // chromedp doesn't easily expose status codes
	logger.Debug("dynamic fetch complete", "url", targetURL, "html_size", len(html))

	return page, nil
}

// Close releases browser resources.
func (f *DynamicFetcher) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
