package docgram

import "context"

// DocumentReference identifies a document discovered on a listing page.
// References are transient: they are recomputed on every run and uniqueness
// is by normalized locator.
type DocumentReference struct {
	// Locator is the document URL, or the URL of a detail page from which
	// the downloadable artifact can be resolved.
	Locator string

	// Title is the display title from the listing anchor or subject column.
	Title string

	// ListedAt is the publish timestamp as shown on the listing, when
	// present. Raw listing text; not parsed.
	ListedAt string
}

// Validate returns an error if the reference contains invalid fields.
func (r *DocumentReference) Validate() error {
	if r.Locator == "" {
		return Errorf(EINVALID, "document locator required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	return nil
}

// Match is the tagged result of a single extraction strategy. A zero Match
// means no match; use Matched to construct a successful one.
type Match struct {
	Value string
	OK    bool
}

// Matched returns a successful Match carrying value.
func Matched(value string) Match {
	return Match{Value: value, OK: true}
}

// NoMatch is the unsuccessful Match.
var NoMatch = Match{}

// ExtractedMetadata holds best-effort structured fields recovered from
// document text. Either field may be absent; absence is valid output and
// never aborts the pipeline.
type ExtractedMetadata struct {
	IssuedDate Match
	Serial     Match
}

// MetadataExtractor recovers structured fields from extracted document text.
// The fallbackTimestamp (typically an HTTP Last-Modified value) is the last
// resort in the date fallback chain.
type MetadataExtractor interface {
	Extract(text string, fallbackTimestamp string) ExtractedMetadata
}

// ListingSource discovers document references from a configured listing URL.
// Implementations hide the listing format (HTML pages, sitemaps).
type ListingSource interface {
	// Discover fetches the listing and returns references in listing order,
	// deduplicated by normalized locator. An empty result is not an error;
	// it signals the next fallback source should be tried.
	Discover(ctx context.Context, listingURL string) ([]DocumentReference, error)

	// Name returns the source's identifier (e.g., "listing", "sitemap").
	Name() string
}

// ArtifactResolver resolves the downloadable artifact URL from a document
// detail page. Returns ERESOLUTION if the page has no resolvable artifact;
// that failure skips the candidate, never the whole scan.
type ArtifactResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}
