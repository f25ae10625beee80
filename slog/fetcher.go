// Package slog provides logging decorators for the docgram domain
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalik/docgram"
)

// Ensure LoggingFetcher implements docgram.Fetcher.
var _ docgram.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   docgram.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docgram.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (document []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(document),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// LastModified delegates to the wrapped fetcher.
func (f *LoggingFetcher) LastModified(ctx context.Context, url string) (string, error) {
	return f.next.LastModified(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
