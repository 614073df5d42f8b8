package mock

import (
	"context"
	"time"

	"github.com/nausikt/wikiharvest"
)

var _ wikiharvest.BrowserClient = (*BrowserClient)(nil)

// BrowserClient is a mock implementation of wikiharvest.BrowserClient.
type BrowserClient struct {
	AuthenticateAndNavigateFn func(ctx context.Context, url string) error
	AuthenticateFn            func(ctx context.Context, url string) ([]wikiharvest.Cookie, error)
	NavigateToFn              func(ctx context.Context, url string, wait time.Duration) error
	ExtractPageDataFn         func(ctx context.Context, url string) (*wikiharvest.PageData, error)
	LinksWithSameHostnameFn   func(ctx context.Context, url string) ([]string, error)
	CloseFn                   func() error
}

func (c *BrowserClient) AuthenticateAndNavigate(ctx context.Context, url string) error {
	return c.AuthenticateAndNavigateFn(ctx, url)
}

func (c *BrowserClient) Authenticate(ctx context.Context, url string) ([]wikiharvest.Cookie, error) {
	return c.AuthenticateFn(ctx, url)
}

func (c *BrowserClient) NavigateTo(ctx context.Context, url string, wait time.Duration) error {
	return c.NavigateToFn(ctx, url, wait)
}

func (c *BrowserClient) ExtractPageData(ctx context.Context, url string) (*wikiharvest.PageData, error) {
	return c.ExtractPageDataFn(ctx, url)
}

func (c *BrowserClient) LinksWithSameHostname(ctx context.Context, url string) ([]string, error) {
	return c.LinksWithSameHostnameFn(ctx, url)
}

func (c *BrowserClient) Close() error {
	return c.CloseFn()
}
