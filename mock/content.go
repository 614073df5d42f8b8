package mock

import "github.com/nausikt/wikiharvest"

var _ wikiharvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wikiharvest.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wikiharvest.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wikiharvest.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ wikiharvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikiharvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
