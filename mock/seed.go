package mock

import (
	"context"

	"github.com/nausikt/wikiharvest"
)

var _ wikiharvest.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of wikiharvest.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverSeedsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (m *SeedDiscoverer) DiscoverSeeds(ctx context.Context, baseURL string) ([]string, error) {
	return m.DiscoverSeedsFn(ctx, baseURL)
}
