// Package http implements sitemap-based seed discovery over HTTP.
package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/nausikt/wikiharvest"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// maxConcurrentSitemaps bounds how many child sitemaps of one index are
// resolved at a time.
const maxConcurrentSitemaps = 4

// Ensure SitemapService implements wikiharvest.SeedDiscoverer.
var _ wikiharvest.SeedDiscoverer = (*SitemapService)(nil)

// SitemapService discovers crawl seeds from a site's sitemaps. Sitemap URLs
// come from robots.txt Sitemap: directives, falling back to /sitemap.xml;
// sitemap indexes are resolved recursively and concurrently. Fetches are
// rate limited per host.
type SitemapService struct {
	client *http.Client
	filter *wikiharvest.PathFilter
	rps    rate.Limit
	burst  int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a SitemapService.
type Option func(*SitemapService)

// WithPathFilter drops discovered URLs whose path fails the filter.
func WithPathFilter(f *wikiharvest.PathFilter) Option {
	return func(s *SitemapService) {
		s.filter = f
	}
}

// WithRequestRate sets the per-host request rate in requests per second.
func WithRequestRate(rps float64) Option {
	return func(s *SitemapService) {
		s.rps = rate.Limit(rps)
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...Option) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:   client,
		rps:      rate.Limit(2),
		burst:    1,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverSeeds finds URLs from baseURL's sitemaps. When baseURL has a
// non-root path (e.g. https://example.com/docs/), only URLs under that
// prefix are returned. Returns an empty slice if the site has no sitemaps.
func (s *SitemapService) DiscoverSeeds(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "invalid base URL: %v", err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the domain root regardless of where the docs do.
	root := *base
	root.Path = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	w := &walk{svc: s, seen: make(map[string]struct{})}
	for _, sitemapURL := range sitemapURLs {
		if err := w.run(ctx, sitemapURL); err != nil {
			return nil, err
		}
	}

	return s.selectSeeds(w.urls, pathPrefix), nil
}

// selectSeeds deduplicates discovered URLs and applies prefix and path
// filtering.
func (s *SitemapService) selectSeeds(urls []string, pathPrefix string) []string {
	seeds := []string{}
	seen := make(map[string]struct{})
	for _, raw := range urls {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if pathPrefix != "" && !underPrefix(u.Path, pathPrefix) {
			continue
		}
		if !s.filter.Allowed(u.Path) {
			continue
		}
		seeds = append(seeds, raw)
	}
	return seeds
}

// underPrefix reports whether path sits under prefix, respecting path
// boundaries: /docs matches /docs/intro but not /documentation.
func underPrefix(path, prefix string) bool {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(path, prefix) || path+"/" == prefix
}

// findSitemapURLs reads Sitemap: directives from robots.txt, falling back
// to /sitemap.xml when robots.txt names none.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL)
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	exists, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := cutPrefixFold(line, "sitemap:"); ok {
			if sitemapURL := strings.TrimSpace(rest); sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding on the prefix.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// walk accumulates URLs across a recursive, concurrent sitemap traversal.
type walk struct {
	svc *SitemapService

	mu   sync.Mutex
	seen map[string]struct{}
	urls []string
}

// run resolves one sitemap URL, recursing into sitemap indexes.
func (w *walk) run(ctx context.Context, sitemapURL string) error {
	w.mu.Lock()
	if _, dup := w.seen[sitemapURL]; dup {
		w.mu.Unlock()
		return nil
	}
	w.seen[sitemapURL] = struct{}{}
	w.mu.Unlock()

	body, err := w.svc.fetch(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentSitemaps)
		for _, child := range locValues(root, "sitemap") {
			g.Go(func() error {
				return w.run(ctx, child)
			})
		}
		return g.Wait()
	}

	w.mu.Lock()
	w.urls = append(w.urls, locValues(root, "url")...)
	w.mu.Unlock()
	return nil
}

// locValues returns the non-empty <loc> values of root's children with the
// given tag.
func locValues(root *etree.Element, tag string) []string {
	var values []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// fetch retrieves a URL, honoring the per-host rate limit.
func (s *SitemapService) fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	if err := s.wait(ctx, targetURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists checks whether a URL answers 200 to a HEAD request.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	if err := s.wait(ctx, targetURL); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// wait blocks until the host's rate limiter admits another request.
func (s *SitemapService) wait(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return wikiharvest.Errorf(wikiharvest.EINVALID, "invalid sitemap URL: %v", err)
	}

	s.mu.Lock()
	limiter, ok := s.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(s.rps, s.burst)
		s.limiters[u.Host] = limiter
	}
	s.mu.Unlock()

	return limiter.Wait(ctx)
}
