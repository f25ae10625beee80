package http

import (
	"bufio"
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/mkowalik/docgram"
)

// Ensure SitemapSource implements docgram.ListingSource.
var _ docgram.ListingSource = (*SitemapSource)(nil)

// SitemapSource discovers document references from a site's sitemap. It is
// a fallback listing source: when the HTML listing yields nothing (layout
// change, previous-season URL gone), document URLs can still be recovered
// from robots.txt sitemap directives or /sitemap.xml.
type SitemapSource struct {
	fetcher docgram.Fetcher
}

// NewSitemapSource creates a SitemapSource backed by the given fetcher.
func NewSitemapSource(fetcher docgram.Fetcher) *SitemapSource {
	return &SitemapSource{fetcher: fetcher}
}

// Name returns the source identifier.
func (s *SitemapSource) Name() string { return "sitemap" }

// Discover finds document URLs from the site's sitemap. The listingURL only
// contributes its host (for sitemap discovery) and path (as a prefix
// filter). Titles are derived from the URL basename since sitemaps carry no
// display text.
func (s *SitemapSource) Discover(ctx context.Context, listingURL string) ([]docgram.DocumentReference, error) {
	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, docgram.Errorf(docgram.EINVALID, "invalid listing URL %q: %v", listingURL, err)
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return nil, nil
	}

	seenSitemaps := make(map[string]bool)
	seenLocators := make(map[string]bool)
	var refs []docgram.DocumentReference

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			// A broken sitemap shouldn't sink the whole fallback; try the rest.
			continue
		}
		for _, u := range urls {
			if !docgram.IsDocumentLocator(u) {
				continue
			}
			normalized, err := docgram.NormalizeLocator(u)
			if err != nil || seenLocators[normalized] {
				continue
			}
			seenLocators[normalized] = true
			refs = append(refs, docgram.DocumentReference{
				Locator: u,
				Title:   titleFromURL(u),
			})
		}
	}

	return refs, nil
}

// titleFromURL derives a display title from the URL basename:
// "2025_07_02_decision-042.pdf" becomes "2025 07 02 decision 042".
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	name := path.Base(u.Path)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ", "%20", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *SitemapSource) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps := s.sitemapsFromRobots(ctx, robotsURL.String()); len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	if _, err := s.fetcher.Fetch(ctx, sitemapURL.String()); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	return []string{sitemapURL.String()}, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
// Failures return nil; robots.txt is optional.
func (s *SitemapSource) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return nil
	}

	var sitemaps []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	return sitemaps
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents. Index entries are resolved recursively.
func (s *SitemapSource) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, docgram.Errorf(docgram.EINVALID, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docgram.Errorf(docgram.EINVALID, "empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			urls, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				continue
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}
