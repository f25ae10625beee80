package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docgram.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, document []byte) (*docgram.RenderedAsset, error)
	TextFn   func(document []byte, maxPages int) (string, error)
}

func (r *Renderer) Render(ctx context.Context, document []byte) (*docgram.RenderedAsset, error) {
	return r.RenderFn(ctx, document)
}

func (r *Renderer) Text(document []byte, maxPages int) (string, error) {
	if r.TextFn == nil {
		return "", nil
	}
	return r.TextFn(document, maxPages)
}
