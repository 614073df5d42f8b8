package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/config"
	"github.com/nausikt/wikiharvest/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config       *config.Config
	Orchestrator *crawl.Orchestrator
	Seeds        wikiharvest.SeedDiscoverer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"wikiharvest.yaml" help:"Path to the configuration file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Collect  CollectCmd  `cmd:"" help:"Collect every configured source"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a single site and persist its pages"`
	Schedule ScheduleCmd `cmd:"" help:"Re-collect sources recorded in the catalog"`
	Sources  SourcesCmd  `cmd:"" help:"Show how a source list is classified"`
	Seeds    SeedsCmd    `cmd:"" help:"Discover start URLs from a site's sitemaps"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct{}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL      string   `arg:"" help:"Start URL"`
	Depth    int      `short:"d" default:"2" help:"Crawl depth"`
	MaxPages int      `short:"m" help:"Page cap (0 = unlimited)"`
	Allow    []string `short:"a" help:"Allowed path regex (repeatable)"`
	Deny     []string `short:"D" help:"Denied path regex (repeatable)"`
	Delay    float64  `default:"1" help:"Politeness delay in seconds"`
	Jitter   float64  `default:"0.5" help:"Politeness jitter in seconds"`
	Output   string   `short:"o" default:"harvest" help:"Output directory"`
	Markdown bool     `help:"Store HTML pages as extracted markdown"`
	Insecure bool     `help:"Skip TLS certificate verification"`
}

// ScheduleCmd is the "schedule" subcommand.
type ScheduleCmd struct {
	Bucket string `arg:"" enum:"links,git,sso" help:"Source bucket to re-collect (links, git or sso)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	File string `arg:"" help:"Source list file"`
}

// SeedsCmd is the "seeds" subcommand.
type SeedsCmd struct {
	URL string `arg:"" help:"Site URL"`
}
