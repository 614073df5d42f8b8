// Package crawl implements the breadth-first crawl engine and the
// orchestrator that drives it across configured sources.
package crawl

import (
	"context"
	"iter"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/nausikt/wikiharvest"
)

// DefaultFetchTimeout bounds a single HTTP page fetch.
const DefaultFetchTimeout = 30 * time.Second

// Scraper is the frontier-driven crawl engine. It traverses pages
// breadth-first from a start URL, one URL in flight at a time; the only
// suspension points are the politeness sleep and the fetch itself.
//
// The zero value is usable: no filters, no delay, TLS verification off.
// Scraper holds no traversal state; each Crawl/CrawlIter call builds a
// fresh crawlState, so a single Scraper can serve many invocations.
type Scraper struct {
	// Filter constrains which pages yield resources and, on wiki-style
	// hosts, which discovered links are collected at all.
	Filter *wikiharvest.PathFilter

	// Delay and DelayJitter control the politeness sleep applied before
	// every fetch: Delay ± uniform(-DelayJitter, +DelayJitter), clamped
	// at zero.
	Delay       time.Duration
	DelayJitter time.Duration

	// VerifyURLs enables TLS certificate verification for HTTP fetches.
	VerifyURLs bool

	// FetchTimeout bounds a single HTTP fetch. Defaults to
	// DefaultFetchTimeout.
	FetchTimeout time.Duration

	// Transport overrides the HTTP transport. Used by tests to serve
	// fixture responses without a network.
	Transport http.RoundTripper

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Options configure a single crawl invocation.
type Options struct {
	// Client is the external browser client, if any. With BrowserMode off
	// it is only consulted once for authentication cookies.
	Client wikiharvest.BrowserClient

	// MaxDepth bounds how many link hops from the start URL are followed.
	MaxDepth int

	// MaxPages caps the number of pages visited; 0 means unlimited.
	MaxPages int

	// BrowserMode fetches every page through Client instead of HTTP.
	BrowserMode bool
}

// Crawl crawls pages breadth-first from startURL and returns the collected
// resources. Per-page failures are logged and skipped; they never abort the
// crawl.
func (s *Scraper) Crawl(ctx context.Context, startURL string, opts Options) []*wikiharvest.ScrapedResource {
	var resources []*wikiharvest.ScrapedResource
	for resource := range s.CrawlIter(ctx, startURL, opts) {
		resources = append(resources, resource)
	}
	return resources
}

// CrawlIter exposes the same traversal as a finite, forward-only lazy
// sequence of resources, one per successful filter-passing fetch. Every
// call starts from fresh state; an abandoned sequence simply stops
// crawling. The traversal runs on the caller's goroutine.
func (s *Scraper) CrawlIter(ctx context.Context, startURL string, opts Options) iter.Seq[*wikiharvest.ScrapedResource] {
	return func(yield func(*wikiharvest.ScrapedResource) bool) {
		logger := s.logger()

		start, ok := Normalize(startURL)
		if !ok {
			logger.Error("failed to crawl: could not normalize URL", "url", startURL)
			return
		}

		st := newCrawlState(start)
		logger.Info("base hostname for crawling", "host", hostname(start))

		// The session stays nil in browser mode; every fetch goes through
		// the client instead.
		var session *httpSession
		switch {
		case opts.BrowserMode:
			if opts.Client == nil {
				logger.Error("failed to crawl: browser mode requires a browser client", "url", start)
				return
			}
			if err := opts.Client.AuthenticateAndNavigate(ctx, start); err != nil {
				logger.Error("failed to crawl: browser authentication failed", "url", start, "err", err)
				return
			}
		case opts.Client != nil:
			// HTTP fetching with client-assisted authentication: run the
			// login once and copy any session cookies into the jar.
			session = s.newSession()
			cookies, err := opts.Client.Authenticate(ctx, start)
			if err != nil {
				logger.Error("failed to crawl: authentication failed", "url", start, "err", err)
				return
			}
			session.setCookies(start, cookies)
		default:
			session = s.newSession()
		}

		for {
			if len(st.frontier) == 0 || st.depth >= opts.MaxDepth || ctx.Err() != nil {
				break
			}
			if opts.MaxPages > 0 && st.pagesVisited >= opts.MaxPages {
				logger.Info("reached max pages; stopping crawl early", "max_pages", opts.MaxPages)
				break
			}

			current, _ := st.pop()
			if resource := s.visit(ctx, session, st, current, opts); resource != nil {
				if !yield(resource) {
					return
				}
			}

			st.advanceIfLevelDone()
		}

		logger.Info("crawling complete", "pages_visited", st.pagesVisited)
	}
}

// visit processes one popped URL: skip, throttle, fetch, reap, enqueue.
// It returns the page's resource if one passed the filter, nil otherwise.
// Any per-page failure marks the URL visited (suppressing retries within
// this invocation) and returns nil.
func (s *Scraper) visit(
	ctx context.Context,
	session *httpSession,
	st *crawlState,
	current string,
	opts Options,
) *wikiharvest.ScrapedResource {
	logger := s.logger()

	if st.isVisited(current) {
		return nil
	}
	if isImageURL(current) {
		logger.Debug("skipping image URL", "url", current)
		st.markVisited(current)
		return nil
	}

	if !s.politenessSleep(ctx) {
		return nil
	}

	logger.Info("crawling", "depth", st.depth+1, "max_depth", opts.MaxDepth, "url", current)

	var fetched *fetchResult
	var err error
	if opts.BrowserMode {
		fetched, err = fetchBrowser(ctx, opts.Client, current)
	} else {
		fetched, err = session.fetch(ctx, current)
	}
	if err != nil {
		logger.Info("error crawling page", "url", current, "err", err)
		st.markVisited(current)
		return nil
	}

	st.pagesVisited++

	links, resource, err := s.reap(ctx, fetched, current, opts.BrowserMode, opts.Client, st)
	if err != nil {
		logger.Info("error reaping page", "url", current, "err", err)
		return nil
	}

	for _, link := range links {
		normalized, ok := Normalize(link)
		if !ok {
			continue
		}
		if st.enqueue(normalized) {
			logger.Info("found new link", "url", normalized, "pages_visited", st.pagesVisited)
		}
	}

	// The yield-time filter tests the current page's own path, not the
	// paths of its links.
	if !s.Filter.Allowed(pagePath(current)) {
		return nil
	}
	return resource
}

// politenessSleep applies the pre-fetch throttle, even before the very
// first fetch. Returns false if the context was canceled while sleeping.
func (s *Scraper) politenessSleep(ctx context.Context) bool {
	d := s.Delay
	if jitter := s.DelayJitter; jitter > 0 {
		d += time.Duration((rand.Float64()*2 - 1) * float64(jitter))
	}
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (s *Scraper) fetchTimeout() time.Duration {
	if s.FetchTimeout > 0 {
		return s.FetchTimeout
	}
	return DefaultFetchTimeout
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
