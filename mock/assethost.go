package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.AssetHost = (*AssetHost)(nil)

// AssetHost is a mock implementation of docgram.AssetHost.
type AssetHost struct {
	StoreFn func(ctx context.Context, name string, data []byte) (string, error)
}

func (h *AssetHost) Store(ctx context.Context, name string, data []byte) (string, error) {
	return h.StoreFn(ctx, name, data)
}
