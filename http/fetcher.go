// Package http provides HTTP-based implementations of docgram.Fetcher and a
// sitemap-backed docgram.ListingSource for sites whose listing pages are
// unavailable or have changed format.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mkowalik/docgram"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. Document
// downloads are larger than listing pages, so this is more generous than a
// typical page-fetch timeout.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements docgram.Fetcher at compile time.
var _ docgram.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves listing pages and binary documents over HTTP.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: "docgram/1.0",
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a GET and returns the response body. Transport failures
// and non-2xx responses are reported as EUNAVAILABLE so the pipeline treats
// them as per-candidate failures, retryable on the next run.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docgram.Errorf(docgram.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, docgram.Errorf(docgram.EUNAVAILABLE, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, docgram.Errorf(docgram.EUNAVAILABLE, "GET %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, docgram.Errorf(docgram.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return body, nil
}

// LastModified performs a HEAD and returns the Last-Modified header value.
// An absent header or a failed HEAD returns the empty string without error:
// the value is only ever a last-resort fallback for metadata extraction.
func (f *Fetcher) LastModified(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", docgram.Errorf(docgram.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()

	return resp.Header.Get("Last-Modified"), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
