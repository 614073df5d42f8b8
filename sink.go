package wikiharvest

import "context"

// ResourceSink persists scraped resources. Failures are the sink's concern;
// the crawl engine never inspects what happens to a resource after handing
// it over.
type ResourceSink interface {
	// PersistResource writes the resource under outputDir.
	PersistResource(ctx context.Context, resource *ScrapedResource, outputDir string) error
}

// GitCollector collects resources from git repositories. Repository
// collection is owned entirely by the implementation; the orchestrator only
// persists its output.
type GitCollector interface {
	Collect(ctx context.Context, urls []string) ([]*ScrapedResource, error)
}

// Catalog records which resources have been persisted and answers the
// queries the scheduling hooks need to re-collect known sources.
type Catalog interface {
	// Record registers a persisted resource under the given source type
	// ("links", "git", "sso").
	Record(ctx context.Context, resource *ScrapedResource, sourceType string) error

	// Has reports whether a resource with this URL has been recorded.
	Has(ctx context.Context, url string) (bool, error)

	// URLsBySourceType returns the recorded URLs for a source type.
	URLsBySourceType(ctx context.Context, sourceType string) ([]string, error)
}
