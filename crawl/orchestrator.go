package crawl

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nausikt/wikiharvest"
)

// Secret names required before any SSO source is attempted.
const (
	secretSSOUsername = "SSO_USERNAME"
	secretSSOPassword = "SSO_PASSWORD"
)

// AuthenticatorFactory constructs a browser client from the free-form
// argument map configured for an authenticator class.
type AuthenticatorFactory func(args map[string]any) (wikiharvest.BrowserClient, error)

// AuthenticatorSpec names a factory implementation and carries its
// constructor arguments. Specs come from configuration; the implementation
// name is resolved against Orchestrator.Authenticators at collection time.
type AuthenticatorSpec struct {
	Implementation string
	Args           map[string]any
}

// Orchestrator fans a classified source list out to the right collection
// path: plain links are crawled over HTTP, SSO sources get an authenticated
// client first, git sources are delegated wholesale. Every produced resource
// goes through the sink, and optionally into the catalog.
type Orchestrator struct {
	Scraper *Scraper
	Sink    wikiharvest.ResourceSink
	Git     wikiharvest.GitCollector

	// Catalog is optional. When set, every persisted resource is recorded
	// under its bucket's source type, which also enables the Schedule hooks.
	Catalog wikiharvest.Catalog

	// Authenticators maps implementation names to factories. An SSO bucket
	// whose configured class resolves to a name not present here is logged
	// and skipped.
	Authenticators map[string]AuthenticatorFactory

	// Secrets resolves named credentials. Nil falls back to os.Getenv.
	Secrets func(name string) string

	// BaseDepth and MaxPages bound every crawl the orchestrator starts.
	BaseDepth int
	MaxPages  int

	// BrowserEnabled gates SSO collection entirely; BrowserScrape switches
	// the SSO crawl from cookie-assisted HTTP fetching to full browser-mode
	// fetching.
	BrowserEnabled bool
	BrowserScrape  bool

	// BrowserClass selects an entry of BrowserClassMap for SSO sources.
	BrowserClass    string
	BrowserClassMap map[string]AuthenticatorSpec

	// DataPath is the root output directory. Link and SSO resources land
	// under websites/, git resources under git/.
	DataPath string

	Logger *slog.Logger
}

// CollectAll partitions sources by kind and runs each bucket. A failing
// bucket is logged and never stops the others; the joined error is returned
// alongside the total number of resources persisted.
func (o *Orchestrator) CollectAll(ctx context.Context, sources []wikiharvest.Source) (int, error) {
	var links, sso, git []string
	for _, src := range sources {
		switch src.Kind {
		case wikiharvest.SourceKindGit:
			git = append(git, src.URL)
		case wikiharvest.SourceKindSSO:
			sso = append(sso, src.URL)
		default:
			links = append(links, src.URL)
		}
	}

	var total int
	var errs []error

	n, err := o.CollectLinks(ctx, links)
	total += n
	if err != nil {
		o.logger().Error("link collection failed", "err", err)
		errs = append(errs, err)
	}

	n, err = o.CollectSSO(ctx, sso)
	total += n
	if err != nil {
		o.logger().Error("sso collection failed", "err", err)
		errs = append(errs, err)
	}

	n, err = o.CollectGit(ctx, git)
	total += n
	if err != nil {
		o.logger().Error("git collection failed", "err", err)
		errs = append(errs, err)
	}

	return total, errors.Join(errs...)
}

// CollectLinks crawls each plain-link source over HTTP and persists what
// comes back. One source failing is logged and never stops the rest.
func (o *Orchestrator) CollectLinks(ctx context.Context, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	o.logger().Info("collecting link sources", "count", len(urls))

	opts := Options{MaxDepth: o.BaseDepth, MaxPages: o.MaxPages}

	var total int
	for _, url := range urls {
		total += o.collectURL(ctx, url, opts, o.websitesDir(), wikiharvest.SourceKindLink)
	}
	return total, nil
}

// CollectSSO authenticates once per bucket and crawls each SSO source with
// the resulting client. Missing credentials or an unknown authenticator
// class abort the bucket with a log line, not an error; nothing sensible
// can be collected without them.
func (o *Orchestrator) CollectSSO(ctx context.Context, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	if !o.BrowserEnabled {
		o.logger().Info("browser disabled; skipping sso sources", "count", len(urls))
		return 0, nil
	}

	username := o.secret(secretSSOUsername)
	password := o.secret(secretSSOPassword)
	if username == "" || password == "" {
		o.logger().Warn("sso credentials not configured; skipping sso sources", "count", len(urls))
		return 0, nil
	}

	client, err := o.newAuthenticator(username, password)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, nil
	}
	defer func() {
		if err := client.Close(); err != nil {
			o.logger().Error("failed to close browser client", "err", err)
		}
	}()

	o.logger().Info("collecting sso sources", "count", len(urls))

	opts := Options{
		Client:      client,
		MaxDepth:    o.BaseDepth,
		MaxPages:    o.MaxPages,
		BrowserMode: o.BrowserScrape,
	}

	var total int
	for _, url := range urls {
		total += o.collectURL(ctx, url, opts, o.websitesDir(), wikiharvest.SourceKindSSO)
	}
	return total, nil
}

// CollectGit delegates repository collection and persists the output.
func (o *Orchestrator) CollectGit(ctx context.Context, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	if o.Git == nil {
		o.logger().Info("no git collector configured; skipping git sources", "count", len(urls))
		return 0, nil
	}
	o.logger().Info("collecting git sources", "count", len(urls))

	resources, err := o.Git.Collect(ctx, urls)
	if err != nil {
		return 0, err
	}

	var total int
	for _, resource := range resources {
		if !o.persist(ctx, resource, o.gitDir(), wikiharvest.SourceKindGit) {
			break
		}
		total++
	}
	return total, nil
}

// ScheduleLinks re-collects every link source previously recorded in the
// catalog.
func (o *Orchestrator) ScheduleLinks(ctx context.Context) (int, error) {
	urls, err := o.catalogURLs(ctx, wikiharvest.SourceKindLink)
	if err != nil {
		return 0, err
	}
	return o.CollectLinks(ctx, urls)
}

// ScheduleSSO re-collects every SSO source previously recorded in the
// catalog.
func (o *Orchestrator) ScheduleSSO(ctx context.Context) (int, error) {
	urls, err := o.catalogURLs(ctx, wikiharvest.SourceKindSSO)
	if err != nil {
		return 0, err
	}
	return o.CollectSSO(ctx, urls)
}

// ScheduleGit re-collects every git source previously recorded in the
// catalog.
func (o *Orchestrator) ScheduleGit(ctx context.Context) (int, error) {
	urls, err := o.catalogURLs(ctx, wikiharvest.SourceKindGit)
	if err != nil {
		return 0, err
	}
	return o.CollectGit(ctx, urls)
}

// collectURL crawls one source and persists everything it yields. A persist
// failure stops this source only.
func (o *Orchestrator) collectURL(
	ctx context.Context,
	url string,
	opts Options,
	outputDir string,
	sourceType wikiharvest.SourceKind,
) int {
	var count int
	for resource := range o.Scraper.CrawlIter(ctx, url, opts) {
		if !o.persist(ctx, resource, outputDir, sourceType) {
			break
		}
		count++
	}
	o.logger().Info("collected source", "url", url, "resources", count)
	return count
}

// persist hands a resource to the sink and records it in the catalog.
// Returns false if the sink rejected it.
func (o *Orchestrator) persist(
	ctx context.Context,
	resource *wikiharvest.ScrapedResource,
	outputDir string,
	sourceType wikiharvest.SourceKind,
) bool {
	if err := o.Sink.PersistResource(ctx, resource, outputDir); err != nil {
		o.logger().Error("failed to persist resource", "url", resource.URL, "err", err)
		return false
	}
	if o.Catalog != nil {
		if err := o.Catalog.Record(ctx, resource, string(sourceType)); err != nil {
			o.logger().Error("failed to record resource in catalog", "url", resource.URL, "err", err)
		}
	}
	return true
}

// newAuthenticator resolves the configured browser class and constructs a
// client with the credentials injected into the factory arguments. A nil,
// nil return means the class could not be resolved and the bucket should be
// skipped.
func (o *Orchestrator) newAuthenticator(username, password string) (wikiharvest.BrowserClient, error) {
	spec, ok := o.BrowserClassMap[o.BrowserClass]
	if !ok {
		o.logger().Error("unknown browser class; skipping sso sources", "class", o.BrowserClass)
		return nil, nil
	}
	factory, ok := o.Authenticators[spec.Implementation]
	if !ok {
		o.logger().Error("unknown authenticator implementation; skipping sso sources",
			"class", o.BrowserClass, "implementation", spec.Implementation)
		return nil, nil
	}

	args := make(map[string]any, len(spec.Args)+2)
	for k, v := range spec.Args {
		args[k] = v
	}
	args["username"] = username
	args["password"] = password

	client, err := factory(args)
	if err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINTERNAL,
			"constructing authenticator %q: %v", spec.Implementation, err)
	}
	return client, nil
}

func (o *Orchestrator) catalogURLs(ctx context.Context, kind wikiharvest.SourceKind) ([]string, error) {
	if o.Catalog == nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "scheduling requires a catalog")
	}
	return o.Catalog.URLsBySourceType(ctx, string(kind))
}

func (o *Orchestrator) websitesDir() string {
	return filepath.Join(o.DataPath, "websites")
}

func (o *Orchestrator) gitDir() string {
	return filepath.Join(o.DataPath, "git")
}

func (o *Orchestrator) secret(name string) string {
	if o.Secrets != nil {
		return o.Secrets(name)
	}
	return os.Getenv(name)
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
