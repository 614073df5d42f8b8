// Package goquery provides HTML anchor extraction for the crawl engine.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nausikt/wikiharvest"
)

// ExtractHrefs parses HTML and returns every anchor href resolved against
// baseURL, in document order. No host or path filtering happens here; the
// caller decides which candidates are worth keeping.
func ExtractHrefs(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		hrefs = append(hrefs, base.ResolveReference(ref).String())
	})

	return hrefs, nil
}

// Title returns the document's <title> text, trimmed.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// isNonHTTPLink reports whether href uses a scheme that can never be
// crawled (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
