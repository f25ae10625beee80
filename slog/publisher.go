package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalik/docgram"
)

// Ensure LoggingPublisher implements docgram.Publisher.
var _ docgram.Publisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a Publisher with per-publish logging.
type LoggingPublisher struct {
	next   docgram.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next docgram.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the operation.
func (p *LoggingPublisher) Publish(ctx context.Context, assetURL string, caption string) (result *docgram.PublishResult, err error) {
	defer func(begin time.Time) {
		remoteID := ""
		if result != nil {
			remoteID = result.RemoteID
		}
		p.logger.Info("publish",
			"asset_url", assetURL,
			"remote_id", remoteID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Publish(ctx, assetURL, caption)
}
