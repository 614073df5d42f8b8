package fs_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/fs"
	"github.com/nausikt/wikiharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		suffix string
		want   string
	}{
		{
			name:   "wiki page",
			url:    "https://twiki.test/CMSPublic/WorkBook",
			suffix: "html",
			want:   filepath.Join("twiki.test", "CMSPublic", "WorkBook.html"),
		},
		{
			name:   "root path",
			url:    "https://docs.test/",
			suffix: "html",
			want:   filepath.Join("docs.test", "index.html"),
		},
		{
			name:   "trailing slash",
			url:    "https://docs.test/guides/",
			suffix: "html",
			want:   filepath.Join("docs.test", "guides", "index.html"),
		},
		{
			name:   "pdf keeps its extension",
			url:    "https://docs.test/files/manual.pdf",
			suffix: "pdf",
			want:   filepath.Join("docs.test", "files", "manual.pdf"),
		},
		{
			name:   "query ignored",
			url:    "https://docs.test/page?rev=2",
			suffix: "html",
			want:   filepath.Join("docs.test", "page.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url, tt.suffix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSink_PersistResource_writes_raw_content(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewSink()

	err := sink.PersistResource(context.Background(), &wikiharvest.ScrapedResource{
		URL:        "https://twiki.test/CMSPublic/WorkBook",
		Content:    []byte("<html>workbook</html>"),
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: wikiharvest.SourceWeb,
	}, dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "twiki.test", "CMSPublic", "WorkBook.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>workbook</html>", string(content))
}

func TestSink_PersistResource_rejects_invalid_resources(t *testing.T) {
	t.Parallel()

	sink := fs.NewSink()

	err := sink.PersistResource(context.Background(), &wikiharvest.ScrapedResource{
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: wikiharvest.SourceWeb,
	}, t.TempDir())
	assert.Equal(t, wikiharvest.EINVALID, wikiharvest.ErrorCode(err))
}

func TestSink_PersistResource_markdown_pipeline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewSink(fs.WithMarkdownPipeline(
		&mock.Extractor{
			ExtractFn: func(html string) (*wikiharvest.ExtractResult, error) {
				return &wikiharvest.ExtractResult{Title: "WorkBook", ContentHTML: "<h1>WorkBook</h1>"}, nil
			},
		},
		&mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "# WorkBook", nil
			},
		},
	))

	err := sink.PersistResource(context.Background(), &wikiharvest.ScrapedResource{
		URL:        "https://twiki.test/CMSPublic/WorkBook",
		Content:    []byte("<html><h1>WorkBook</h1></html>"),
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: wikiharvest.SourceWeb,
	}, dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "twiki.test", "CMSPublic", "WorkBook.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "source: https://twiki.test/CMSPublic/WorkBook")
	assert.Contains(t, string(content), "title: WorkBook")
	assert.Contains(t, string(content), "# WorkBook")
}

func TestSink_PersistResource_markdown_failure_stores_raw_html(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewSink(
		fs.WithMarkdownPipeline(
			&mock.Extractor{
				ExtractFn: func(html string) (*wikiharvest.ExtractResult, error) {
					return nil, wikiharvest.Errorf(wikiharvest.EINTERNAL, "extraction failed")
				},
			},
			&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }},
		),
		fs.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	err := sink.PersistResource(context.Background(), &wikiharvest.ScrapedResource{
		URL:        "https://twiki.test/CMSPublic/WorkBook",
		Content:    []byte("<html>raw</html>"),
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: wikiharvest.SourceWeb,
	}, dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "twiki.test", "CMSPublic", "WorkBook.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>raw</html>", string(content))
}

func TestSink_PersistResource_pdf_bypasses_markdown_pipeline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := fs.NewSink(fs.WithMarkdownPipeline(
		&mock.Extractor{ExtractFn: func(string) (*wikiharvest.ExtractResult, error) {
			t.Fatal("extractor must not run for pdf resources")
			return nil, nil
		}},
		&mock.Converter{ConvertFn: func(string) (string, error) { return "", nil }},
	))

	err := sink.PersistResource(context.Background(), &wikiharvest.ScrapedResource{
		URL:        "https://docs.test/files/manual.pdf",
		Content:    []byte("%PDF-1.4"),
		Suffix:     wikiharvest.SuffixPDF,
		SourceType: wikiharvest.SourceWeb,
	}, dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "docs.test", "files", "manual.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}
