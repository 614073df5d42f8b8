package crawl

import (
	"context"
	"net/url"
	"strings"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/goquery"
)

// reap converts a raw fetch result into a typed resource plus the list of
// same-hostname links discovered on that page. The current URL is marked
// visited before any processing, regardless of outcome.
//
// In browser mode the rendered payload carries content, title and suffix,
// and the next-link list comes from the browser client; the engine never
// parses the rendered DOM itself. In HTTP mode PDF responses short-circuit
// into a pdf resource with no link extraction, while HTML responses are
// parsed for same-host anchors. On wiki-style hosts each retained link must
// additionally pass the path filter and is stored in canonical form.
func (s *Scraper) reap(
	ctx context.Context,
	fetched *fetchResult,
	currentURL string,
	browserMode bool,
	client wikiharvest.BrowserClient,
	st *crawlState,
) ([]string, *wikiharvest.ScrapedResource, error) {
	st.markVisited(currentURL)

	sourceType := wikiharvest.SourceWeb
	if client != nil {
		sourceType = wikiharvest.SourceSSO
	}

	if browserMode {
		suffix := fetched.page.Suffix
		if suffix == "" {
			suffix = wikiharvest.SuffixHTML
		}
		resource := &wikiharvest.ScrapedResource{
			URL:        currentURL,
			Content:    []byte(fetched.page.Content),
			Suffix:     suffix,
			SourceType: sourceType,
			Metadata: map[string]string{
				wikiharvest.MetaTitle:       fetched.page.Title,
				wikiharvest.MetaContentType: "rendered_html",
				wikiharvest.MetaRenderer:    "browser",
			},
		}
		links, err := client.LinksWithSameHostname(ctx, currentURL)
		if err != nil {
			return nil, nil, err
		}
		return links, resource, nil
	}

	if strings.HasSuffix(strings.ToLower(currentURL), ".pdf") {
		resource := &wikiharvest.ScrapedResource{
			URL:        currentURL,
			Content:    fetched.body,
			Suffix:     wikiharvest.SuffixPDF,
			SourceType: sourceType,
			Metadata: map[string]string{
				wikiharvest.MetaContentType: fetched.contentType,
			},
		}
		return nil, resource, nil
	}

	resource := &wikiharvest.ScrapedResource{
		URL:        currentURL,
		Content:    fetched.body,
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: sourceType,
		Metadata: map[string]string{
			wikiharvest.MetaContentType: fetched.contentType,
			wikiharvest.MetaEncoding:    fetched.encoding,
		},
	}
	return s.sameHostLinks(string(fetched.body), currentURL), resource, nil
}

// sameHostLinks extracts the page's anchors, resolves them against the
// current URL and keeps only links on the same host. The returned list is
// order-preserving and de-duplicated.
func (s *Scraper) sameHostLinks(html, currentURL string) []string {
	base, ok := Normalize(currentURL)
	if !ok {
		base = currentURL
	}
	baseHost := hostname(base)

	hrefs, err := goquery.ExtractHrefs(html, base)
	if err != nil {
		s.logger().Debug("failed to parse page for links", "url", currentURL, "err", err)
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	for _, href := range hrefs {
		normalized, ok := Normalize(href)
		if !ok {
			continue
		}
		u, err := url.Parse(normalized)
		if err != nil || u.Host != baseHost {
			continue
		}
		if isWikiHost(baseHost) {
			if !s.Filter.Allowed(u.Path) {
				continue
			}
			normalized = Canonicalize(normalized)
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	}
	return links
}
