// Package slog provides logging decorators for the root interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/nausikt/wikiharvest"
)

// Ensure LoggingSink implements wikiharvest.ResourceSink.
var _ wikiharvest.ResourceSink = (*LoggingSink)(nil)

// LoggingSink wraps a ResourceSink with per-resource logging.
type LoggingSink struct {
	next   wikiharvest.ResourceSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next wikiharvest.ResourceSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// PersistResource delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) PersistResource(ctx context.Context, resource *wikiharvest.ScrapedResource, outputDir string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("persist resource",
			"url", resource.URL,
			"suffix", resource.Suffix,
			"bytes", len(resource.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PersistResource(ctx, resource, outputDir)
}
