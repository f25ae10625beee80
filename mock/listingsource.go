package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.ListingSource = (*ListingSource)(nil)

// ListingSource is a mock implementation of docgram.ListingSource.
type ListingSource struct {
	DiscoverFn func(ctx context.Context, listingURL string) ([]docgram.DocumentReference, error)
	NameFn     func() string
}

func (s *ListingSource) Discover(ctx context.Context, listingURL string) ([]docgram.DocumentReference, error) {
	return s.DiscoverFn(ctx, listingURL)
}

func (s *ListingSource) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

var _ docgram.ArtifactResolver = (*ArtifactResolver)(nil)

// ArtifactResolver is a mock implementation of docgram.ArtifactResolver.
type ArtifactResolver struct {
	ResolveFn func(ctx context.Context, pageURL string) (string, error)
}

func (r *ArtifactResolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	return r.ResolveFn(ctx, pageURL)
}
