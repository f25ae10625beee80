package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalik/docgram"
)

// Ensure LoggingListingSource implements docgram.ListingSource.
var _ docgram.ListingSource = (*LoggingListingSource)(nil)

// LoggingListingSource wraps a ListingSource with per-scan logging.
type LoggingListingSource struct {
	next   docgram.ListingSource
	logger *slog.Logger
}

// NewLoggingListingSource creates a new LoggingListingSource.
func NewLoggingListingSource(next docgram.ListingSource, logger *slog.Logger) *LoggingListingSource {
	return &LoggingListingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingListingSource) Discover(ctx context.Context, listingURL string) (refs []docgram.DocumentReference, err error) {
	defer func(begin time.Time) {
		s.logger.Info("listing scan",
			"source", s.next.Name(),
			"url", listingURL,
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, listingURL)
}

// Name delegates to the wrapped source.
func (s *LoggingListingSource) Name() string {
	return s.next.Name()
}
