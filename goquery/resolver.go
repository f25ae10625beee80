package goquery

import (
	"bytes"
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowalik/docgram"
)

// Ensure ArtifactResolver implements docgram.ArtifactResolver at compile time.
var _ docgram.ArtifactResolver = (*ArtifactResolver)(nil)

// ArtifactResolver resolves the downloadable artifact from a document
// detail page. Some listings link to an intermediate page rather than the
// document itself; this second-stage fetch has its own "not found" failure
// mode (ERESOLUTION) which skips the candidate without aborting the scan.
type ArtifactResolver struct {
	fetcher docgram.Fetcher
}

// NewArtifactResolver creates an ArtifactResolver backed by the given fetcher.
func NewArtifactResolver(fetcher docgram.Fetcher) *ArtifactResolver {
	return &ArtifactResolver{fetcher: fetcher}
}

// Resolve fetches the detail page and returns the first qualifying document
// link. Returns ERESOLUTION when the page has no resolvable artifact.
func (r *ArtifactResolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	body, err := r.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", docgram.Errorf(docgram.EINVALID, "parsing detail page HTML: %v", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", docgram.Errorf(docgram.EINVALID, "invalid detail page URL %q: %v", pageURL, err)
	}

	var artifact string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return true
		}
		resolved := resolveURL(base, href)
		if resolved == "" || !docgram.IsDocumentLocator(resolved) {
			return true
		}
		artifact = resolved
		return false
	})

	if artifact == "" {
		return "", docgram.Errorf(docgram.ERESOLUTION, "no downloadable artifact on %q", pageURL)
	}
	return artifact, nil
}
