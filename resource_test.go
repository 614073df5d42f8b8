package wikiharvest_test

import (
	"testing"

	"github.com/nausikt/wikiharvest"
	"github.com/stretchr/testify/assert"
)

func TestScrapedResource_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resource wikiharvest.ScrapedResource
		wantCode string
	}{
		{
			name: "valid html resource",
			resource: wikiharvest.ScrapedResource{
				URL:        "https://twiki.test/CMSPublic/SWGuide",
				Suffix:     wikiharvest.SuffixHTML,
				SourceType: wikiharvest.SourceWeb,
			},
		},
		{
			name: "valid pdf resource",
			resource: wikiharvest.ScrapedResource{
				URL:        "https://twiki.test/docs/manual.pdf",
				Suffix:     wikiharvest.SuffixPDF,
				SourceType: wikiharvest.SourceSSO,
			},
		},
		{
			name: "missing URL",
			resource: wikiharvest.ScrapedResource{
				Suffix:     wikiharvest.SuffixHTML,
				SourceType: wikiharvest.SourceWeb,
			},
			wantCode: wikiharvest.EINVALID,
		},
		{
			name: "unknown suffix",
			resource: wikiharvest.ScrapedResource{
				URL:        "https://twiki.test/CMSPublic/SWGuide",
				Suffix:     "docx",
				SourceType: wikiharvest.SourceWeb,
			},
			wantCode: wikiharvest.EINVALID,
		},
		{
			name: "unknown source type",
			resource: wikiharvest.ScrapedResource{
				URL:        "https://twiki.test/CMSPublic/SWGuide",
				Suffix:     wikiharvest.SuffixHTML,
				SourceType: "ftp",
			},
			wantCode: wikiharvest.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.resource.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, wikiharvest.ErrorCode(err))
			}
		})
	}
}

func TestScrapedResource_Meta(t *testing.T) {
	t.Parallel()

	r := &wikiharvest.ScrapedResource{
		Metadata: map[string]string{wikiharvest.MetaTitle: "SWGuide"},
	}
	assert.Equal(t, "SWGuide", r.Meta(wikiharvest.MetaTitle))
	assert.Empty(t, r.Meta(wikiharvest.MetaEncoding))

	var empty wikiharvest.ScrapedResource
	assert.Empty(t, empty.Meta(wikiharvest.MetaTitle))
}
