// Package fs persists scraped resources to the local filesystem.
package fs

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nausikt/wikiharvest"
)

// URLToPath converts a resource URL to a relative file path, rooted at the
// URL's host so resources from different sites never collide.
// Example: https://twiki.test/CMSPublic/WorkBook → twiki.test/CMSPublic/WorkBook.html
func URLToPath(rawURL, suffix string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", wikiharvest.Errorf(wikiharvest.EINVALID, "invalid resource URL: %v", err)
	}

	host := u.Host
	if host == "" {
		host = "unknown-host"
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}

	ext := "." + suffix
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return filepath.Join(host, path), nil
	}
	return filepath.Join(host, path+ext), nil
}

// Ensure Sink implements wikiharvest.ResourceSink at compile time.
var _ wikiharvest.ResourceSink = (*Sink)(nil)

// Sink writes resources under an output directory, one file per resource.
// With a markdown pipeline configured, HTML resources are reduced to their
// main content and stored as Markdown with YAML frontmatter; everything else
// is stored verbatim.
type Sink struct {
	extractor wikiharvest.Extractor
	converter wikiharvest.Converter
	logger    *slog.Logger
}

// Option configures a Sink.
type Option func(*Sink)

// WithMarkdownPipeline enables extract-then-convert storage for HTML
// resources.
func WithMarkdownPipeline(e wikiharvest.Extractor, c wikiharvest.Converter) Option {
	return func(s *Sink) {
		s.extractor = e
		s.converter = c
	}
}

// WithLogger sets the sink's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// NewSink creates a new Sink.
func NewSink(opts ...Option) *Sink {
	s := &Sink{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PersistResource writes the resource under outputDir.
func (s *Sink) PersistResource(ctx context.Context, resource *wikiharvest.ScrapedResource, outputDir string) error {
	if err := resource.Validate(); err != nil {
		return err
	}

	if s.extractor != nil && s.converter != nil && resource.Suffix == wikiharvest.SuffixHTML {
		err := s.persistMarkdown(resource, outputDir)
		if err == nil {
			return nil
		}
		// Fall back to the raw payload so a pipeline failure never loses
		// the resource.
		s.logger.Warn("markdown pipeline failed; storing raw HTML", "url", resource.URL, "err", err)
	}

	relPath, err := URLToPath(resource.URL, resource.Suffix)
	if err != nil {
		return err
	}
	return write(filepath.Join(outputDir, relPath), resource.Content)
}

func (s *Sink) persistMarkdown(resource *wikiharvest.ScrapedResource, outputDir string) error {
	extracted, err := s.extractor.Extract(string(resource.Content))
	if err != nil {
		return err
	}
	markdown, err := s.converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}

	title := extracted.Title
	if title == "" {
		title = resource.Meta(wikiharvest.MetaTitle)
	}

	relPath, err := URLToPath(resource.URL, "md")
	if err != nil {
		return err
	}
	content := formatMarkdown(resource.URL, title, markdown)
	return write(filepath.Join(outputDir, relPath), []byte(content))
}

// formatMarkdown renders a markdown document with YAML frontmatter.
func formatMarkdown(sourceURL, title, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(sourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(title)
	b.WriteString("\ncrawled: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

func write(fullPath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0o644)
}
