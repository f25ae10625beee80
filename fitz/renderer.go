// Package fitz renders document first pages to raster images using MuPDF
// (via go-fitz), with pdfcpu providing structural validation and page
// counting up front.
package fitz

import (
	"bytes"
	"context"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
	"github.com/mkowalik/docgram"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Rendering parameters. Fixed so that rendering the same bytes twice yields
// images of identical dimensions.
const (
	// renderDPI is the rasterization resolution for the first page.
	renderDPI = 150
	// jpegQuality balances caption legibility against platform size limits.
	jpegQuality = 90
)

// Ensure Renderer implements docgram.Renderer at compile time.
var _ docgram.Renderer = (*Renderer)(nil)

// Renderer rasterizes exactly the first page of a PDF document to a JPEG at
// a fixed resolution, and extracts text for metadata recovery.
type Renderer struct {
	conf *model.Configuration
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conf := model.NewDefaultConfiguration()
	// Relaxed validation: real-world documents are frequently sloppy but
	// still renderable.
	conf.ValidationMode = model.ValidationRelaxed
	return &Renderer{conf: conf}
}

// Render validates the document, then rasterizes page one. Returns ECORRUPT
// for unparsable input and EEMPTY for zero-page documents; both are fatal
// for that document only, never for the run.
func (r *Renderer) Render(ctx context.Context, document []byte) (*docgram.RenderedAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(document) == 0 {
		return nil, docgram.Errorf(docgram.EEMPTY, "document has no content")
	}

	pages, err := api.PageCount(bytes.NewReader(document), r.conf)
	if err != nil {
		return nil, docgram.Errorf(docgram.ECORRUPT, "validating document: %v", err)
	}
	if pages == 0 {
		return nil, docgram.Errorf(docgram.EEMPTY, "document has zero pages")
	}

	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		return nil, docgram.Errorf(docgram.ECORRUPT, "opening document: %v", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, renderDPI)
	if err != nil {
		return nil, docgram.Errorf(docgram.ECORRUPT, "rasterizing first page: %v", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, docgram.Errorf(docgram.EINTERNAL, "encoding JPEG: %v", err)
	}

	bounds := img.Bounds()
	return &docgram.RenderedAsset{
		Bytes:  buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// Text extracts textual content from at most the first maxPages pages.
// Metadata lives on the first page or two; parsing the whole document is
// wasted work.
func (r *Renderer) Text(document []byte, maxPages int) (string, error) {
	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		return "", docgram.Errorf(docgram.ECORRUPT, "opening document: %v", err)
	}
	defer doc.Close()

	if maxPages <= 0 {
		maxPages = 1
	}
	if n := doc.NumPage(); n < maxPages {
		maxPages = n
	}

	var buf bytes.Buffer
	for i := 0; i < maxPages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			// Partial text is still useful for the extractor.
			break
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}
