package wikiharvest

// Resource suffix tags. The suffix identifies the stored format of a
// scraped resource, not the Content-Type the server claimed.
const (
	SuffixHTML = "html"
	SuffixPDF  = "pdf"
)

// Resource source types.
const (
	SourceWeb = "web"
	SourceSSO = "sso"
)

// Well-known metadata keys on a ScrapedResource.
const (
	MetaTitle       = "title"
	MetaContentType = "content_type"
	MetaEncoding    = "encoding"
	MetaRenderer    = "renderer"
	MetaContentHash = "content_hash"
)

// ScrapedResource is a single fetched page. It is created exactly once per
// successfully fetched, filter-passing page and never mutated afterwards;
// ownership passes to the persistence sink immediately after creation.
type ScrapedResource struct {
	// URL is the identity key for persistence.
	URL string

	// Content holds the raw page bytes. For HTML resources this is the
	// decoded document text; for PDF resources the raw body.
	Content []byte

	// Suffix is the format tag: SuffixHTML or SuffixPDF.
	Suffix string

	// SourceType records how the resource was obtained: SourceWeb for plain
	// HTTP, SourceSSO when an authenticator/browser client was involved.
	SourceType string

	// Metadata carries free-form string pairs (title, content type,
	// encoding, renderer).
	Metadata map[string]string
}

// Validate returns an error if the resource contains invalid fields.
func (r *ScrapedResource) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "resource URL required")
	}
	switch r.Suffix {
	case SuffixHTML, SuffixPDF:
	default:
		return Errorf(EINVALID, "unknown resource suffix %q", r.Suffix)
	}
	switch r.SourceType {
	case SourceWeb, SourceSSO:
	default:
		return Errorf(EINVALID, "unknown resource source type %q", r.SourceType)
	}
	return nil
}

// Meta returns the metadata value for key, or "" if absent.
func (r *ScrapedResource) Meta(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}
