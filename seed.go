package wikiharvest

import "context"

// SeedDiscoverer finds additional crawl start URLs for a site, typically
// from its published sitemaps. Discovery is best effort: a site without
// sitemaps yields an empty list, not an error.
type SeedDiscoverer interface {
	DiscoverSeeds(ctx context.Context, baseURL string) ([]string, error)
}
