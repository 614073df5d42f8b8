package goquery_test

import (
	"testing"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHrefs_resolves_relative_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="SWGuideCrab">Crab</a>
		<a href="/CMSPublic/WorkBook">WorkBook</a>
		<a href="https://deepwiki.test/dmwm/CRABServer">Deep Wiki</a>
	</body></html>`

	hrefs, err := goquery.ExtractHrefs(html, "https://twiki.test/CMSPublic/SWGuide")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://twiki.test/CMSPublic/SWGuideCrab",
		"https://twiki.test/CMSPublic/WorkBook",
		"https://deepwiki.test/dmwm/CRABServer",
	}, hrefs)
}

func TestExtractHrefs_skips_non_http_schemes(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="mailto:admin@twiki.test">mail</a>
		<a href="javascript:void(0)">js</a>
		<a href="tel:+41227676111">phone</a>
		<a href="SWGuide">ok</a>
	</body></html>`

	hrefs, err := goquery.ExtractHrefs(html, "https://twiki.test/CMSPublic/SWGuide")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://twiki.test/CMSPublic/SWGuide"}, hrefs)
}

func TestExtractHrefs_invalid_base_URL(t *testing.T) {
	t.Parallel()

	_, err := goquery.ExtractHrefs("<html></html>", "://bad")
	assert.Equal(t, wikiharvest.EINVALID, wikiharvest.ErrorCode(err))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SWGuide", goquery.Title("<html><head><title> SWGuide </title></head></html>"))
	assert.Empty(t, goquery.Title("<html><body>no title</body></html>"))
}
