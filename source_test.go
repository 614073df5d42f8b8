package wikiharvest_test

import (
	"strings"
	"testing"

	"github.com/nausikt/wikiharvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource_classifies_by_prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantKind wikiharvest.SourceKind
		wantURL  string
	}{
		{
			name:     "plain link",
			raw:      "https://twiki.test/CMSPublic/SWGuide",
			wantKind: wikiharvest.SourceKindLink,
			wantURL:  "https://twiki.test/CMSPublic/SWGuide",
		},
		{
			name:     "git prefix stripped",
			raw:      "git-https://github.com/dmwm/CRABServer",
			wantKind: wikiharvest.SourceKindGit,
			wantURL:  "https://github.com/dmwm/CRABServer",
		},
		{
			name:     "sso prefix stripped",
			raw:      "sso-https://internal.test/protected",
			wantKind: wikiharvest.SourceKindSSO,
			wantURL:  "https://internal.test/protected",
		},
		{
			name:     "prefix only recognized at start",
			raw:      "https://example.test/sso-docs",
			wantKind: wikiharvest.SourceKindLink,
			wantURL:  "https://example.test/sso-docs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := wikiharvest.ParseSource(tt.raw)
			assert.Equal(t, tt.wantKind, src.Kind)
			assert.Equal(t, tt.wantURL, src.URL)
		})
	}
}

func TestParseSourceList(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# documentation wikis",
		"",
		"https://twiki.test/CMSPublic/SWGuide,3",
		"  sso-https://internal.test/protected  ",
		"git-https://github.com/dmwm/CRABServer",
		"   ",
		"# trailing comment",
	}, "\n")

	sources, err := wikiharvest.ParseSourceList(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []wikiharvest.Source{
		{Kind: wikiharvest.SourceKindLink, URL: "https://twiki.test/CMSPublic/SWGuide"},
		{Kind: wikiharvest.SourceKindSSO, URL: "https://internal.test/protected"},
		{Kind: wikiharvest.SourceKindGit, URL: "https://github.com/dmwm/CRABServer"},
	}, sources)
}

func TestParseSourceList_discards_depth_field(t *testing.T) {
	t.Parallel()

	sources, err := wikiharvest.ParseSourceList(strings.NewReader("https://twiki.test/CMSPublic/WorkBook, 7\n"))
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "https://twiki.test/CMSPublic/WorkBook", sources[0].URL)
}
