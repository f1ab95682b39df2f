package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"ShopScraper/pkg/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// BrowserFetcher loads pages in a headless Chrome through a stealth page.
// It is used when the plain HTTP client gets a bot-check page instead of results.
type BrowserFetcher struct {
	Browser *rod.Browser
	Timeout time.Duration
}

// NewBrowserFetcher launches a browser according to conf.
func NewBrowserFetcher(conf config.ScraperConfig) (*BrowserFetcher, error) {
	u, err := launcher.New().Headless(conf.Headless).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	return &BrowserFetcher{Browser: browser, Timeout: conf.Timeout}, nil
}

// Fetch navigates to url and returns the rendered document HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	page, err := stealth.Page(f.Browser)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not open page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.Timeout)

	// The status of the main document is only visible through the network events.
	status := 0
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			status = e.Response.Status
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("navigation failed: %w", err)}
	}
	waitResponse()

	if status != 0 && (status < 200 || status > 299) {
		return nil, &FetchError{
			Kind:       KindHTTPStatus,
			URL:        url,
			StatusCode: status,
			Err:        fmt.Errorf("received non-2xx status code: %d", status),
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("failed to wait for load: %w", err)}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not read page HTML: %w", err)}
	}

	log.Printf("Fetched %s in browser (status %d, %d bytes)", url, status, len(html))
	return []byte(html), nil
}

func (f *BrowserFetcher) Close() error {
	return f.Browser.Close()
}

// NewFetcher picks the fetcher configured in conf.
func NewFetcher(conf config.ScraperConfig) (Fetcher, error) {
	if conf.UseBrowser {
		return NewBrowserFetcher(conf)
	}
	return NewHTTPFetcher(conf), nil
}
