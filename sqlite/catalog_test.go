package sqlite_test

import (
	"context"
	"testing"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource(url string) *wikiharvest.ScrapedResource {
	return &wikiharvest.ScrapedResource{
		URL:        url,
		Content:    []byte("<html>" + url + "</html>"),
		Suffix:     wikiharvest.SuffixHTML,
		SourceType: wikiharvest.SourceWeb,
	}
}

func TestCatalog_Record_and_Has(t *testing.T) {
	t.Parallel()

	catalog := sqlite.NewCatalog(mustOpenDB(t))
	ctx := context.Background()

	resource := testResource("https://twiki.test/CMSPublic/SWGuideCrab")
	require.NoError(t, catalog.Record(ctx, resource, "links"))

	has, err := catalog.Has(ctx, "https://twiki.test/CMSPublic/SWGuideCrab")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = catalog.Has(ctx, "https://twiki.test/CMSPublic/WorkBook")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCatalog_Record_sets_content_hash_metadata(t *testing.T) {
	t.Parallel()

	catalog := sqlite.NewCatalog(mustOpenDB(t))

	resource := testResource("https://twiki.test/CMSPublic/SWGuideCrab")
	require.NoError(t, catalog.Record(context.Background(), resource, "links"))

	assert.NotEmpty(t, resource.Meta(wikiharvest.MetaContentHash))
}

func TestCatalog_Record_updates_existing_url(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	catalog := sqlite.NewCatalog(db)
	ctx := context.Background()

	resource := testResource("https://twiki.test/CMSPublic/SWGuideCrab")
	require.NoError(t, catalog.Record(ctx, resource, "links"))

	updated := testResource("https://twiki.test/CMSPublic/SWGuideCrab")
	updated.Content = []byte("<html>revised</html>")
	require.NoError(t, catalog.Record(ctx, updated, "sso"))

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM resources").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	urls, err := catalog.URLsBySourceType(ctx, "sso")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://twiki.test/CMSPublic/SWGuideCrab"}, urls)
}

func TestCatalog_Record_rejects_invalid_resources(t *testing.T) {
	t.Parallel()

	catalog := sqlite.NewCatalog(mustOpenDB(t))

	err := catalog.Record(context.Background(), &wikiharvest.ScrapedResource{}, "links")
	assert.Equal(t, wikiharvest.EINVALID, wikiharvest.ErrorCode(err))
}

func TestCatalog_URLsBySourceType_filters_by_type(t *testing.T) {
	t.Parallel()

	catalog := sqlite.NewCatalog(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, catalog.Record(ctx, testResource("https://twiki.test/CMSPublic/SWGuideCrab"), "links"))
	require.NoError(t, catalog.Record(ctx, testResource("https://intranet.test/wiki/Home"), "sso"))
	require.NoError(t, catalog.Record(ctx, testResource("https://twiki.test/CMSPublic/WorkBook"), "links"))

	urls, err := catalog.URLsBySourceType(ctx, "links")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"https://twiki.test/CMSPublic/SWGuideCrab",
		"https://twiki.test/CMSPublic/WorkBook",
	}, urls)

	urls, err = catalog.URLsBySourceType(ctx, "git")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestCatalog_Has_sees_rows_from_earlier_connections(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/catalog.db"
	ctx := context.Background()

	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	catalog := sqlite.NewCatalog(db)
	require.NoError(t, catalog.Record(ctx, testResource("https://twiki.test/CMSPublic/SWGuideCrab"), "links"))
	require.NoError(t, db.Close())

	reopened := sqlite.NewDB(path)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	has, err := sqlite.NewCatalog(reopened).Has(ctx, "https://twiki.test/CMSPublic/SWGuideCrab")
	require.NoError(t, err)
	assert.True(t, has)
}
