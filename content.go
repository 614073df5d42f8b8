package wikiharvest

// ExtractResult is the outcome of main-content extraction from a fetched
// HTML page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor pulls the main content out of raw HTML, dropping navigation and
// other boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter turns HTML into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
