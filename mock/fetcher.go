// Package mock provides function-field mock implementations of the docgram
// domain interfaces for use in tests.
package mock

import (
	"context"

	"github.com/mkowalik/docgram"
)

var _ docgram.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docgram.Fetcher.
type Fetcher struct {
	FetchFn        func(ctx context.Context, url string) ([]byte, error)
	LastModifiedFn func(ctx context.Context, url string) (string, error)
	CloseFn        func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) LastModified(ctx context.Context, url string) (string, error) {
	if f.LastModifiedFn == nil {
		return "", nil
	}
	return f.LastModifiedFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
