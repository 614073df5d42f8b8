package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nausikt/wikiharvest"
	wikihttp "github.com/nausikt/wikiharvest/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlset(urls ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8"?><urlset>`
	for _, u := range urls {
		s += "<url><loc>" + u + "</loc></url>"
	}
	return s + "</urlset>"
}

func sitemapindex(urls ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8"?><sitemapindex>`
	for _, u := range urls {
		s += "<sitemap><loc>" + u + "</loc></sitemap>"
	}
	return s + "</sitemapindex>"
}

// fastService builds a SitemapService with a rate limit high enough to keep
// the tests instant.
func fastService(opts ...wikihttp.Option) *wikihttp.SitemapService {
	opts = append([]wikihttp.Option{wikihttp.WithRequestRate(10000)}, opts...)
	return wikihttp.NewSitemapService(nil, opts...)
}

func TestSitemapService_DiscoverSeeds_from_robots_txt(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nSitemap: %s/pages.xml\n", srv.URL)
	})
	mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/wiki/SWGuideCrab", srv.URL+"/wiki/WorkBook"))
	})

	seeds, err := fastService().DiscoverSeeds(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/wiki/SWGuideCrab", srv.URL + "/wiki/WorkBook"}, seeds)
}

func TestSitemapService_DiscoverSeeds_falls_back_to_sitemap_xml(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/wiki/SWGuideCrab"))
	})

	seeds, err := fastService().DiscoverSeeds(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/wiki/SWGuideCrab"}, seeds)
}

func TestSitemapService_DiscoverSeeds_resolves_sitemap_indexes(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "Sitemap: %s/index.xml\n", srv.URL)
	})
	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, sitemapindex(srv.URL+"/a.xml", srv.URL+"/b.xml", srv.URL+"/a.xml"))
	})
	mux.HandleFunc("/a.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/wiki/A"))
	})
	mux.HandleFunc("/b.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/wiki/B", srv.URL+"/wiki/A"))
	})

	seeds, err := fastService().DiscoverSeeds(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{srv.URL + "/wiki/A", srv.URL + "/wiki/B"}, seeds)
}

func TestSitemapService_DiscoverSeeds_scopes_to_base_path(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(
			srv.URL+"/docs/intro",
			srv.URL+"/documentation/other",
			srv.URL+"/blog/post",
		))
	})

	seeds, err := fastService().DiscoverSeeds(context.Background(), srv.URL+"/docs/")
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/docs/intro"}, seeds)
}

func TestSitemapService_DiscoverSeeds_applies_path_filter(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, urlset(
			srv.URL+"/wiki/SWGuideCrab",
			srv.URL+"/wiki/WebLeftBar",
		))
	})

	filter, err := wikiharvest.NewPathFilter(nil, []string{"LeftBar"})
	require.NoError(t, err)

	seeds, err := fastService(wikihttp.WithPathFilter(filter)).DiscoverSeeds(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/wiki/SWGuideCrab"}, seeds)
}

func TestSitemapService_DiscoverSeeds_no_sitemaps(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	seeds, err := fastService().DiscoverSeeds(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Empty(t, seeds)
	assert.NotNil(t, seeds)
}

func TestSitemapService_DiscoverSeeds_invalid_base_URL(t *testing.T) {
	t.Parallel()

	_, err := fastService().DiscoverSeeds(context.Background(), "://bad")
	assert.Equal(t, wikiharvest.EINVALID, wikiharvest.ErrorCode(err))
}
