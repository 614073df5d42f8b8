package crawl

import (
	"net/url"
	"strings"
)

// imageExtensions are path suffixes the engine skips without fetching.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".ico", ".webp"}

// Normalize canonicalizes a URL for identity comparison: the fragment is
// stripped and scheme and host are lower-cased, leaving path and query
// untouched. Scheme-less (relative or malformed) input is returned
// fragment-stripped as-is. The bool result is false for empty or
// unparseable input.
//
// Normalize is idempotent: Normalize(Normalize(u)) == Normalize(u).
func Normalize(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}

	defragged := rawURL
	if idx := strings.Index(defragged, "#"); idx != -1 {
		defragged = defragged[:idx]
	}

	u, err := url.Parse(defragged)
	if err != nil {
		return "", false
	}
	if u.Scheme == "" {
		return defragged, true
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), true
}

// Canonicalize strips both query string and fragment, keeping
// scheme+host+path only. It collapses revision/skin query-string variants
// of wiki pages (?rev=195, ?skin=...) into one storage identity.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	c := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return c.String()
}

// isWikiHost reports whether links on this host get filtered and
// canonicalized at collection time.
func isWikiHost(host string) bool {
	return strings.Contains(host, "twiki")
}

// isImageURL reports whether the URL path points at an image file.
func isImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// hostname returns the lower-cased host of rawURL, or "" if it cannot be
// parsed.
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// pagePath returns the URL's path, or "/" when it has none. The yield-time
// filter tests this path, not the paths of outgoing links.
func pagePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
