package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/nausikt/wikiharvest"
)

// Ensure LoggingBrowserClient implements wikiharvest.BrowserClient.
var _ wikiharvest.BrowserClient = (*LoggingBrowserClient)(nil)

// LoggingBrowserClient wraps a BrowserClient with operation logging.
type LoggingBrowserClient struct {
	next   wikiharvest.BrowserClient
	logger *slog.Logger
}

// NewLoggingBrowserClient creates a new LoggingBrowserClient.
func NewLoggingBrowserClient(next wikiharvest.BrowserClient, logger *slog.Logger) *LoggingBrowserClient {
	return &LoggingBrowserClient{next: next, logger: logger}
}

// AuthenticateAndNavigate delegates to the wrapped client and logs the
// operation.
func (c *LoggingBrowserClient) AuthenticateAndNavigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("browser authenticate and navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.AuthenticateAndNavigate(ctx, url)
}

// Authenticate delegates to the wrapped client and logs the operation.
func (c *LoggingBrowserClient) Authenticate(ctx context.Context, url string) (cookies []wikiharvest.Cookie, err error) {
	defer func(begin time.Time) {
		c.logger.Info("browser authenticate",
			"url", url,
			"cookies", len(cookies),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Authenticate(ctx, url)
}

// NavigateTo delegates to the wrapped client and logs the operation.
func (c *LoggingBrowserClient) NavigateTo(ctx context.Context, url string, wait time.Duration) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("browser navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.NavigateTo(ctx, url, wait)
}

// ExtractPageData delegates to the wrapped client and logs the operation.
func (c *LoggingBrowserClient) ExtractPageData(ctx context.Context, url string) (page *wikiharvest.PageData, err error) {
	defer func(begin time.Time) {
		size := 0
		if page != nil {
			size = len(page.Content)
		}
		c.logger.Debug("browser extract page data",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ExtractPageData(ctx, url)
}

// LinksWithSameHostname delegates to the wrapped client and logs the
// operation.
func (c *LoggingBrowserClient) LinksWithSameHostname(ctx context.Context, url string) (links []string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("browser collect links",
			"url", url,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.LinksWithSameHostname(ctx, url)
}

// Close delegates to the wrapped client.
func (c *LoggingBrowserClient) Close() error {
	return c.next.Close()
}
