package docgram

import "context"

// RenderedAsset is a single raster image rendered from a document, ready to
// be hosted and published.
type RenderedAsset struct {
	Bytes  []byte // encoded JPEG
	Width  int
	Height int
}

// Renderer converts a document's first page into a raster image and
// extracts text for metadata recovery.
type Renderer interface {
	// Render rasterizes exactly the first page at a fixed resolution.
	// Returns EEMPTY for zero-page documents and ECORRUPT for unparsable
	// ones; both are fatal for that document only.
	Render(ctx context.Context, document []byte) (*RenderedAsset, error)

	// Text extracts textual content from at most the first maxPages pages.
	// Full-document extraction is unnecessary for metadata recovery.
	Text(document []byte, maxPages int) (string, error)
}
