package crawl

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/nausikt/wikiharvest"
	"golang.org/x/net/publicsuffix"
)

// Browser-like defaults to reduce firewall/WAF blocks (institutional sites
// that drop bot User-Agents).
var defaultHTTPHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// browserNavigateWait is the post-load wait passed to the browser client so
// client-side rendering can finish.
const browserNavigateWait = 2 * time.Second

// fetchResult is whatever the active fetch strategy produced for a URL:
// a rendered-page payload in browser mode, a raw HTTP response otherwise.
type fetchResult struct {
	page *wikiharvest.PageData

	body        []byte
	contentType string
	encoding    string
}

// httpSession is the HTTP fetch strategy: one persistent connection-pooled
// client per crawl invocation, carrying a fixed browser-like header set and
// any cookies injected from a prior authentication step.
type httpSession struct {
	client *http.Client
}

// newSession builds the per-invocation HTTP session.
func (s *Scraper) newSession() *httpSession {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	transport := s.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if !s.VerifyURLs {
			t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		transport = t
	}

	return &httpSession{
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   s.fetchTimeout(),
		},
	}
}

// setCookies copies cookies returned by an authentication step into the
// session's jar so subsequent plain-HTTP fetches carry them.
func (hs *httpSession) setCookies(rawURL string, cookies []wikiharvest.Cookie) {
	if len(cookies) == 0 {
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	hc := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		hc = append(hc, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    path,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}
	hs.client.Jar.SetCookies(u, hc)
}

// fetch retrieves a single page. A non-success status is a hard failure for
// that page.
func (hs *httpSession) fetch(ctx context.Context, rawURL string) (*fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range defaultHTTPHeaders {
		req.Header.Set(k, v)
	}

	resp, err := hs.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	var encoding string
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		encoding = params["charset"]
	}

	return &fetchResult{
		body:        body,
		contentType: contentType,
		encoding:    encoding,
	}, nil
}

// fetchBrowser retrieves a page through the browser client: navigate,
// suspend until rendered, then pull the rendered payload.
func fetchBrowser(ctx context.Context, client wikiharvest.BrowserClient, rawURL string) (*fetchResult, error) {
	if err := client.NavigateTo(ctx, rawURL, browserNavigateWait); err != nil {
		return nil, err
	}
	page, err := client.ExtractPageData(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return &fetchResult{page: page}, nil
}
