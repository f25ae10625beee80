package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.PostedStore = (*PostedStore)(nil)

// PostedStore is a mock implementation of docgram.PostedStore.
type PostedStore struct {
	CountFn    func(ctx context.Context) (int, error)
	ContainsFn func(ctx context.Context, identity string) (bool, error)
	CommitFn   func(ctx context.Context, identity string, locator string) error
}

func (s *PostedStore) Count(ctx context.Context) (int, error) {
	if s.CountFn == nil {
		return 0, nil
	}
	return s.CountFn(ctx)
}

func (s *PostedStore) Contains(ctx context.Context, identity string) (bool, error) {
	return s.ContainsFn(ctx, identity)
}

func (s *PostedStore) Commit(ctx context.Context, identity string, locator string) error {
	return s.CommitFn(ctx, identity, locator)
}
