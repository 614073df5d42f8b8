package mock

import (
	"context"

	"github.com/nausikt/wikiharvest"
)

var _ wikiharvest.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of wikiharvest.Catalog.
type Catalog struct {
	RecordFn           func(ctx context.Context, resource *wikiharvest.ScrapedResource, sourceType string) error
	HasFn              func(ctx context.Context, url string) (bool, error)
	URLsBySourceTypeFn func(ctx context.Context, sourceType string) ([]string, error)
}

func (c *Catalog) Record(ctx context.Context, resource *wikiharvest.ScrapedResource, sourceType string) error {
	return c.RecordFn(ctx, resource, sourceType)
}

func (c *Catalog) Has(ctx context.Context, url string) (bool, error) {
	return c.HasFn(ctx, url)
}

func (c *Catalog) URLsBySourceType(ctx context.Context, sourceType string) ([]string, error) {
	return c.URLsBySourceTypeFn(ctx, sourceType)
}
