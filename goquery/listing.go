// Package goquery provides HTML-based implementations of
// docgram.ListingSource and docgram.ArtifactResolver using CSS selectors.
package goquery

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/mkowalik/docgram"
)

// Pagination and dedup bounds for listing scans.
const (
	// defaultMaxPages bounds how many listing pages a single scan follows.
	defaultMaxPages = 3
	// expectedListingEntries sizes the Bloom filter used for within-scan
	// dedup across paginated listings.
	expectedListingEntries = 10000
	// dedupFalsePositiveRate is acceptable: a false positive drops a
	// candidate from one scan, and the next run sees it again.
	dedupFalsePositiveRate = 0.001
)

// paginationSelectors locate the "next page" link, most specific first.
var paginationSelectors = []string{
	"a[rel='next']",
	"li.pager-next a",
	"li.pager__item--next a",
}

// Ensure ListingSource implements docgram.ListingSource at compile time.
var _ docgram.ListingSource = (*ListingSource)(nil)

// ListingSource extracts document references from HTML listing pages. It
// recognizes two listing shapes: tabular listings (document link, subject
// and published columns) and plain anchor listings. Paginated listings are
// followed via rel=next links up to a bounded page count.
type ListingSource struct {
	fetcher  docgram.Fetcher
	maxPages int
}

// ListingOption configures a ListingSource.
type ListingOption func(*ListingSource)

// WithMaxPages bounds pagination depth. Defaults to defaultMaxPages.
func WithMaxPages(n int) ListingOption {
	return func(s *ListingSource) {
		s.maxPages = n
	}
}

// NewListingSource creates a ListingSource backed by the given fetcher.
func NewListingSource(fetcher docgram.Fetcher, opts ...ListingOption) *ListingSource {
	s := &ListingSource{
		fetcher:  fetcher,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source identifier.
func (s *ListingSource) Name() string { return "listing" }

// Discover fetches the listing page (and its pagination successors) and
// returns references in listing order, deduplicated by normalized locator.
func (s *ListingSource) Discover(ctx context.Context, listingURL string) ([]docgram.DocumentReference, error) {
	seen := bloom.NewWithEstimates(expectedListingEntries, dedupFalsePositiveRate)
	var refs []docgram.DocumentReference

	pageURL := listingURL
	for page := 0; page < s.maxPages && pageURL != ""; page++ {
		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			// First page failing means the source yielded nothing; a broken
			// later page keeps what was already collected.
			if page == 0 {
				return nil, err
			}
			break
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, docgram.Errorf(docgram.EINVALID, "parsing listing HTML: %v", err)
		}

		base, err := url.Parse(pageURL)
		if err != nil {
			return nil, docgram.Errorf(docgram.EINVALID, "invalid listing URL %q: %v", pageURL, err)
		}

		refs = appendTableRows(refs, doc, base, seen)
		refs = appendAnchors(refs, doc, base, seen)

		pageURL = nextPageURL(doc, base)
	}

	return refs, nil
}

// appendTableRows extracts references from tabular listings where each row
// carries a document link, a subject column and a published column.
func appendTableRows(refs []docgram.DocumentReference, doc *goquery.Document, base *url.URL, seen *bloom.BloomFilter) []docgram.DocumentReference {
	doc.Find("div.view-content table tbody tr, table.documents-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		anchor := cols.Eq(0).Find("a[href]").First()
		href, exists := anchor.Attr("href")
		if !exists || href == "" {
			return
		}

		title := strings.TrimSpace(cols.Eq(1).Text())
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}
		if title == "" {
			return
		}

		var listedAt string
		if cols.Length() >= 3 {
			listedAt = strings.TrimSpace(cols.Eq(2).Text())
		}

		if ref, ok := newReference(base, href, title, listedAt, seen); ok {
			refs = append(refs, ref)
		}
	})
	return refs
}

// appendAnchors extracts references from plain anchor listings. A candidate
// anchor qualifies if it points at a document resource and has non-empty
// visible text to serve as display title.
func appendAnchors(refs []docgram.DocumentReference, doc *goquery.Document, base *url.URL, seen *bloom.BloomFilter) []docgram.DocumentReference {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !docgram.IsDocumentLocator(resolved) {
			return
		}

		if ref, ok := newReference(base, href, title, "", seen); ok {
			refs = append(refs, ref)
		}
	})
	return refs
}

// newReference resolves href against base and builds a deduplicated
// reference. Returns false for unresolvable or already-seen locators.
func newReference(base *url.URL, href, title, listedAt string, seen *bloom.BloomFilter) (docgram.DocumentReference, bool) {
	resolved := resolveURL(base, href)
	if resolved == "" {
		return docgram.DocumentReference{}, false
	}

	normalized, err := docgram.NormalizeLocator(resolved)
	if err != nil {
		return docgram.DocumentReference{}, false
	}
	if seen.TestString(normalized) {
		return docgram.DocumentReference{}, false
	}
	seen.AddString(normalized)

	return docgram.DocumentReference{
		Locator:  resolved,
		Title:    title,
		ListedAt: listedAt,
	}, true
}

// nextPageURL finds the pagination successor, if any.
func nextPageURL(doc *goquery.Document, base *url.URL) string {
	for _, selector := range paginationSelectors {
		href, exists := doc.Find(selector).First().Attr("href")
		if exists && href != "" {
			return resolveURL(base, href)
		}
	}
	return ""
}

// resolveURL resolves href against base, returning "" for unusable links.
func resolveURL(base *url.URL, href string) string {
	if isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink reports javascript:, mailto: and similar schemes.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
