package mock

import (
	"context"

	"github.com/nausikt/wikiharvest"
)

var _ wikiharvest.GitCollector = (*GitCollector)(nil)

// GitCollector is a mock implementation of wikiharvest.GitCollector.
type GitCollector struct {
	CollectFn func(ctx context.Context, urls []string) ([]*wikiharvest.ScrapedResource, error)
}

func (c *GitCollector) Collect(ctx context.Context, urls []string) ([]*wikiharvest.ScrapedResource, error) {
	return c.CollectFn(ctx, urls)
}
