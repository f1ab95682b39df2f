package scraper

import (
	"ShopScraper/pkg/config"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// HTTPFetcher fetches pages with a plain net/http client.
type HTTPFetcher struct {
	Client         *http.Client
	UserAgent      string
	AcceptLanguage string
	MaxBodyBytes   int64
}

// NewHTTPFetcher creates a fetcher whose client gives up after conf.Timeout.
func NewHTTPFetcher(conf config.ScraperConfig) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: conf.Timeout,
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				DisableCompression: true, // bodies are decoded in decompressReader, brotli included
			},
		},
		UserAgent:      conf.UserAgent,
		AcceptLanguage: conf.AcceptLanguage,
		MaxBodyBytes:   conf.MaxBodyBytes,
	}
}

// Fetch sends one GET request and returns the body converted to UTF-8.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept-Language", f.AcceptLanguage)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Kind:       KindHTTPStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("received non-2xx status code: %d", resp.StatusCode),
		}
	}

	decoded, err := decompressReader(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not decode body: %w", err)}
	}

	// The cap applies to the decoded page, so a small compressed body cannot expand past it.
	// One extra byte tells a page of exactly MaxBodyBytes from a longer one.
	if f.MaxBodyBytes > 0 {
		decoded = io.LimitReader(decoded, f.MaxBodyBytes+1)
	}
	raw, err := io.ReadAll(decoded)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not read response body: %w", err)}
	}
	if f.MaxBodyBytes > 0 && int64(len(raw)) > f.MaxBodyBytes {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.MaxBodyBytes)}
	}

	reader, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not detect charset: %w", err)}
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("could not convert body to UTF-8: %w", err)}
	}

	log.Printf("Fetched %s (status %d, %d bytes, %s)", url, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))
	return body, nil
}

// Close drops idle keep-alive connections.
func (f *HTTPFetcher) Close() error {
	f.Client.CloseIdleConnections()
	return nil
}

// decompressReader wraps a reader with the decoder for the given Content-Encoding.
func decompressReader(encoding string, reader io.Reader) (io.Reader, error) {
	switch encoding {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
