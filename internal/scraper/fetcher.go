package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// Fetcher retrieves the HTML of an upstream page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

var (
	_ Fetcher = (*HTTPFetcher)(nil)
	_ Fetcher = (*BrowserFetcher)(nil)
)

// HTTPFetcher downloads pages with a plain GET. It is enough for pages that
// are rendered server-side.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates an HTTPFetcher that identifies as userAgent.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode(), url)
	}
	return string(resp.Body()), nil
}

func (f *HTTPFetcher) Close() error {
	return nil
}

// BrowserFetcher renders pages in a headless, stealth-patched Chrome for
// upstreams that block plain HTTP clients or build the page in JavaScript.
type BrowserFetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewBrowserFetcher launches the browser. Close must be called when done.
func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	return &BrowserFetcher{browser: browser, timeout: timeout}, nil
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	tab, err := stealth.Page(f.browser)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := tab.Close(); err != nil {
			logger.Printf("Failed to close page for %s: %v", url, err)
		}
	}()

	page := tab.Context(ctx)
	if f.timeout > 0 {
		page = page.Timeout(f.timeout)
	}

	// Must* helpers panic; rod.Try turns that back into an error.
	err = rod.Try(func() {
		page.MustNavigate(url)
		page.MustWaitStable()
	})
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}

	return page.HTML()
}

func (f *BrowserFetcher) Close() error {
	return f.browser.Close()
}
