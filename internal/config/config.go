// Package config loads run settings: built-in defaults overlaid by an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/logger"
	"github.com/keiikegami/cirje-seminar-tracker/internal/scraper"
	"github.com/keiikegami/cirje-seminar-tracker/internal/storage"
	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	URL         string `yaml:"url"`          // replaces the built-in page URL
	Enabled     *bool  `yaml:"enabled"`      // nil keeps the source enabled
	DefaultYear int    `yaml:"default_year"` // 0 selects the academic year of the run
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`  // root of the artifact paths
	HTML string `yaml:"html"` // docs/index.html
	JSON string `yaml:"json"` // events.json
	ICS  string `yaml:"ics"`  // docs/events.ics
}

type Config struct {
	Timeout   time.Duration           `yaml:"timeout"` // per request
	UserAgent string                  `yaml:"user_agent"`
	LogLevel  string                  `yaml:"log_level"`
	Output    OutputConfig            `yaml:"output"`
	Sources   map[string]SourceConfig `yaml:"sources"` // keyed by source name
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Timeout:   scraper.Timeout,
		UserAgent: scraper.UserAgent,
		LogLevel:  "info",
		Output: OutputConfig{
			Dir:  ".",
			HTML: storage.DefaultHTMLPath,
			JSON: storage.DefaultJSONPath,
			ICS:  storage.DefaultICSPath,
		},
		Sources: map[string]SourceConfig{},
	}
}

// Load returns the defaults overlaid by the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks for unknown sources and unusable values
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	known := make(map[string]bool, len(scraper.SourceNames))
	for _, name := range scraper.SourceNames {
		known[name] = true
	}
	unknown := make([]string, 0)
	for name, sc := range c.Sources {
		if !known[name] {
			unknown = append(unknown, name)
		}
		if sc.DefaultYear < 0 {
			return fmt.Errorf("source %s: default_year must not be negative", name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown sources %v (known: %v)", unknown, scraper.SourceNames)
	}
	return nil
}

// Overrides converts the per-source settings for scraper.Sources.
// With only non-empty, sources not named are disabled.
func (c Config) Overrides(only []string) map[string]scraper.Override {
	selected := make(map[string]bool, len(only))
	for _, name := range only {
		selected[name] = true
	}

	overrides := make(map[string]scraper.Override, len(scraper.SourceNames))
	for _, name := range scraper.SourceNames {
		sc := c.Sources[name]
		o := scraper.Override{
			URL:         sc.URL,
			DefaultYear: sc.DefaultYear,
			Disabled:    sc.Enabled != nil && !*sc.Enabled,
		}
		if len(selected) > 0 && !selected[name] {
			o.Disabled = true
		}
		overrides[name] = o
	}
	return overrides
}

// Paths returns the artifact locations for storage.New
func (c Config) Paths() storage.Paths {
	return storage.Paths{
		HTML: c.Output.HTML,
		JSON: c.Output.JSON,
		ICS:  c.Output.ICS,
	}
}
