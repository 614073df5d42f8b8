package mock

import (
	"context"

	"github.com/nausikt/wikiharvest"
)

var _ wikiharvest.ResourceSink = (*ResourceSink)(nil)

// ResourceSink is a mock implementation of wikiharvest.ResourceSink.
type ResourceSink struct {
	PersistResourceFn func(ctx context.Context, resource *wikiharvest.ScrapedResource, outputDir string) error
}

func (s *ResourceSink) PersistResource(ctx context.Context, resource *wikiharvest.ScrapedResource, outputDir string) error {
	return s.PersistResourceFn(ctx, resource, outputDir)
}
