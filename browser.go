package wikiharvest

import (
	"context"
	"time"
)

// Cookie is a browser cookie returned by an authentication step, copied into
// the HTTP client when the crawl itself happens over plain HTTP.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires time.Time
	Secure  bool
}

// PageData is the already-rendered payload a browser client extracts from
// the current page.
type PageData struct {
	Content string
	Title   string
	Suffix  string
}

// BrowserClient is an external capability that performs login and/or
// JavaScript-rendered page retrieval on the crawl engine's behalf.
// Implementations may use browser automation; the engine never parses the
// rendered DOM itself.
type BrowserClient interface {
	// AuthenticateAndNavigate logs in (if needed) and navigates to url.
	// Called once before the first fetch when browser mode is active.
	AuthenticateAndNavigate(ctx context.Context, url string) error

	// Authenticate performs login for url and returns any session cookies,
	// or nil if no authentication took place. Called once before the loop
	// when the crawl itself happens over plain HTTP.
	Authenticate(ctx context.Context, url string) ([]Cookie, error)

	// NavigateTo loads url and suspends until the page has rendered,
	// waiting at least wait after load for client-side rendering.
	NavigateTo(ctx context.Context, url string, wait time.Duration) error

	// ExtractPageData returns the rendered content of the current page.
	ExtractPageData(ctx context.Context, url string) (*PageData, error)

	// LinksWithSameHostname returns the links on the current page whose
	// hostname equals that of url.
	LinksWithSameHostname(ctx context.Context, url string) ([]string, error)

	// Close releases browser resources. Must be called exactly once when
	// the client is no longer needed.
	Close() error
}

// NoopBrowserClient is the null BrowserClient for the default,
// unauthenticated plain-HTTP path.
type NoopBrowserClient struct{}

var _ BrowserClient = (*NoopBrowserClient)(nil)

func (NoopBrowserClient) AuthenticateAndNavigate(ctx context.Context, url string) error {
	return nil
}

func (NoopBrowserClient) Authenticate(ctx context.Context, url string) ([]Cookie, error) {
	return nil, nil
}

func (NoopBrowserClient) NavigateTo(ctx context.Context, url string, wait time.Duration) error {
	return nil
}

func (NoopBrowserClient) ExtractPageData(ctx context.Context, url string) (*PageData, error) {
	return nil, Errorf(ENOTIMPLEMENTED, "noop browser client cannot extract page data")
}

func (NoopBrowserClient) LinksWithSameHostname(ctx context.Context, url string) ([]string, error) {
	return nil, nil
}

func (NoopBrowserClient) Close() error { return nil }
