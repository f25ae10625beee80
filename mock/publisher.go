package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of docgram.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, assetURL string, caption string) (*docgram.PublishResult, error)
}

func (p *Publisher) Publish(ctx context.Context, assetURL string, caption string) (*docgram.PublishResult, error) {
	return p.PublishFn(ctx, assetURL, caption)
}
