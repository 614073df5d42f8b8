package main

import (
	"fmt"
	"time"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/crawl"
	"github.com/nausikt/wikiharvest/fs"
	"github.com/nausikt/wikiharvest/htmltomarkdown"
	"github.com/nausikt/wikiharvest/trafilatura"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	filter, err := wikiharvest.NewPathFilter(c.Allow, c.Deny)
	if err != nil {
		return err
	}

	scraper := &crawl.Scraper{
		Filter:      filter,
		Delay:       time.Duration(c.Delay * float64(time.Second)),
		DelayJitter: time.Duration(c.Jitter * float64(time.Second)),
		VerifyURLs:  !c.Insecure,
		Logger:      deps.Logger,
	}

	opts := []fs.Option{fs.WithLogger(deps.Logger)}
	if c.Markdown {
		opts = append(opts, fs.WithMarkdownPipeline(trafilatura.NewExtractor(), htmltomarkdown.NewConverter()))
	}
	sink := fs.NewSink(opts...)

	var n int
	for resource := range scraper.CrawlIter(deps.Ctx, c.URL, crawl.Options{
		MaxDepth: c.Depth,
		MaxPages: c.MaxPages,
	}) {
		if err := sink.PersistResource(deps.Ctx, resource, c.Output); err != nil {
			return err
		}
		n++
	}

	fmt.Fprintf(deps.Stdout, "crawled %d pages into %s\n", n, c.Output)
	return nil
}
