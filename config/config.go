// Package config loads the YAML configuration file and converts its loosely
// typed values into the forms the rest of the system consumes.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/nausikt/wikiharvest"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration file surface.
type Config struct {
	// DataPath is the root output directory for persisted resources.
	DataPath string `yaml:"data_path"`

	Scraper Scraper `yaml:"scraper"`
	Browser Browser `yaml:"browser"`
	Inputs  Inputs  `yaml:"inputs"`
	Collect Collect `yaml:"collect"`
}

// Scraper holds the crawl engine settings.
type Scraper struct {
	// BaseDepth is the default crawl depth for every source.
	BaseDepth int `yaml:"base_depth"`

	// MaxPages is deliberately loose: operators write integers, quoted
	// integers, or garbage. Use MaxPagesLimit to read it.
	MaxPages any `yaml:"max_pages"`

	AllowedPathRegexes []string `yaml:"allowed_path_regexes"`
	DeniedPathRegexes  []string `yaml:"denied_path_regexes"`

	// Delay and DelayJitter are in seconds.
	Delay       float64 `yaml:"delay"`
	DelayJitter float64 `yaml:"delay_jitter"`

	VerifyURLs bool `yaml:"verify_urls"`
}

// Browser holds authenticated-crawl settings.
type Browser struct {
	Enabled bool   `yaml:"enabled"`
	Scrape  bool   `yaml:"scrape"`
	Class   string `yaml:"class"`

	// Classes maps a class name to the authenticator implementation and its
	// constructor arguments.
	Classes map[string]AuthenticatorClass `yaml:"classes"`
}

// AuthenticatorClass configures one named authenticator.
type AuthenticatorClass struct {
	Implementation string         `yaml:"implementation"`
	Args           map[string]any `yaml:"args"`
}

// Inputs names the source-list files to collect from.
type Inputs struct {
	SourceLists []string `yaml:"source_lists"`
}

// Collect toggles the three collection buckets.
type Collect struct {
	Links bool `yaml:"links"`
	Git   bool `yaml:"git"`
	SSO   bool `yaml:"sso"`
}

// Default returns the configuration used when a value is absent from the
// file.
func Default() *Config {
	return &Config{
		DataPath: "data",
		Scraper: Scraper{
			BaseDepth:  2,
			Delay:      1.0,
			VerifyURLs: true,
		},
		Collect: Collect{
			Links: true,
			Git:   true,
			SSO:   true,
		},
	}
}

// Load reads and parses the configuration file at path on top of the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wikiharvest.Errorf(wikiharvest.ENOTFOUND, "configuration file %q not found", path)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "parsing configuration: %v", err)
	}
	return cfg, nil
}

// MaxPagesLimit converts the loose max_pages value into a page limit.
// Absent or unusable values mean unlimited (0); unusable values are logged.
func (s Scraper) MaxPagesLimit(logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	switch v := s.MaxPages.(type) {
	case nil:
		return 0
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("invalid max_pages value; crawling without a page limit", "max_pages", v)
			return 0
		}
		return n
	default:
		logger.Warn("invalid max_pages value; crawling without a page limit", "max_pages", v)
		return 0
	}
}

// DelayDuration returns the politeness delay.
func (s Scraper) DelayDuration() time.Duration {
	return time.Duration(s.Delay * float64(time.Second))
}

// DelayJitterDuration returns the politeness jitter, clamped at zero.
func (s Scraper) DelayJitterDuration() time.Duration {
	if s.DelayJitter < 0 {
		return 0
	}
	return time.Duration(s.DelayJitter * float64(time.Second))
}

// PathFilter compiles the configured path regexes.
func (s Scraper) PathFilter() (*wikiharvest.PathFilter, error) {
	return wikiharvest.NewPathFilter(s.AllowedPathRegexes, s.DeniedPathRegexes)
}
