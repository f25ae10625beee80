package docgram

import "context"

// Fetcher retrieves remote resources over HTTP.
type Fetcher interface {
	// Fetch performs a GET and returns the response body. Listing pages
	// and binary documents both go through this method. Network and
	// non-2xx failures return EUNAVAILABLE.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// LastModified performs a HEAD and returns the Last-Modified header
	// value, or the empty string when absent. Used as the final fallback
	// in the metadata date chain.
	LastModified(ctx context.Context, url string) (string, error)

	// Close releases client resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for outbound fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the URL's
	// domain. Returns an error if the context is canceled.
	Wait(ctx context.Context, url string) error
}
