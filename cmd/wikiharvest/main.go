package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/nausikt/wikiharvest/config"
	"github.com/nausikt/wikiharvest/crawl"
	"github.com/nausikt/wikiharvest/fs"
	wikihttp "github.com/nausikt/wikiharvest/http"
	"github.com/nausikt/wikiharvest/rod"
	wikislog "github.com/nausikt/wikiharvest/slog"
	"github.com/nausikt/wikiharvest/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the resource catalog. Opened by Run for
	// commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikiharvest"),
		kong.Description("Crawl documentation wikis and persist their pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikiharvest --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// First word of the selected command, e.g. "schedule" for "schedule <bucket>".
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Commands driven by the configuration file get the full wiring.
	if cmd == "collect" || cmd == "schedule" {
		cfg, err := config.Load(cli.Config)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: pass --config to use a different configuration file")
			return err
		}
		deps.Config = cfg

		orchestrator, err := m.buildOrchestrator(cfg, deps.Logger)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Orchestrator = orchestrator
	}

	if cmd == "seeds" {
		deps.Seeds = wikihttp.NewSitemapService(nil)
	}

	return kongCtx.Run(deps)
}

// buildOrchestrator wires the full collection stack from configuration.
func (m *Main) buildOrchestrator(cfg *config.Config, logger *slog.Logger) (*crawl.Orchestrator, error) {
	filter, err := cfg.Scraper.PathFilter()
	if err != nil {
		return nil, err
	}

	scraper := &crawl.Scraper{
		Filter:      filter,
		Delay:       cfg.Scraper.DelayDuration(),
		DelayJitter: cfg.Scraper.DelayJitterDuration(),
		VerifyURLs:  cfg.Scraper.VerifyURLs,
		Logger:      logger,
	}

	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %q: %w", cfg.DataPath, err)
	}
	catalogPath := filepath.Join(cfg.DataPath, "catalog.db")
	m.DB = sqlite.NewDB(catalogPath)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open catalog at %q: %w", catalogPath, err)
	}

	classMap := make(map[string]crawl.AuthenticatorSpec, len(cfg.Browser.Classes))
	for name, class := range cfg.Browser.Classes {
		classMap[name] = crawl.AuthenticatorSpec{
			Implementation: class.Implementation,
			Args:           class.Args,
		}
	}

	return &crawl.Orchestrator{
		Scraper: scraper,
		Sink:    wikislog.NewLoggingSink(fs.NewSink(fs.WithLogger(logger)), logger),
		Catalog: sqlite.NewCatalog(m.DB),
		Authenticators: map[string]crawl.AuthenticatorFactory{
			"rod": rod.Factory,
		},
		BaseDepth:       cfg.Scraper.BaseDepth,
		MaxPages:        cfg.Scraper.MaxPagesLimit(logger),
		BrowserEnabled:  cfg.Browser.Enabled,
		BrowserScrape:   cfg.Browser.Scrape,
		BrowserClass:    cfg.Browser.Class,
		BrowserClassMap: classMap,
		DataPath:        cfg.DataPath,
		Logger:          logger,
	}, nil
}
