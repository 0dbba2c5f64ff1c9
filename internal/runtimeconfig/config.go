// Package runtimeconfig aggregates the knobs for the blog build pipeline.
// Fields intentionally use simple types so host applications can extend the
// configuration without touching the core packages.
package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/internal/markdown"
)

var (
	ErrSiteTitleRequired       = errors.New("blog config: site title is required")
	ErrOutputDirRequired       = errors.New("blog config: output directory is required")
	ErrCollectionNameRequired  = errors.New("blog config: collection name is required")
	ErrCollectionDirRequired   = errors.New("blog config: collection directory is required")
	ErrCollectionNameDuplicate = errors.New("blog config: duplicate collection name")
	ErrLoggingLevelInvalid     = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("blog config: logging format is invalid")
)

// Config aggregates site metadata, collection bindings, and adapter options.
type Config struct {
	Site        SiteConfig            `yaml:"site"`
	Collections []CollectionConfig    `yaml:"collections"`
	Output      OutputConfig          `yaml:"output"`
	Markdown    markdown.ParseOptions `yaml:"markdown"`
	Logging     LoggingConfig         `yaml:"logging"`
}

// SiteConfig carries site-wide metadata rendered into layouts and feeds.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author"`
}

// CollectionConfig binds a registered collection schema to a source
// directory. Strict opts the collection into rejecting undeclared
// front-matter fields.
type CollectionConfig struct {
	Name      string `yaml:"name"`
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
	Strict    bool   `yaml:"strict"`
}

// OutputConfig controls where and what the generator writes.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	GenerateFeed bool   `yaml:"generate_feed"`
}

// LoggingConfig selects the go-logger adapter behaviour.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns the configuration used when no site file overrides
// are present: a single "blog" collection under content/blog.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title: "Field Notes",
		},
		Collections: []CollectionConfig{
			{
				Name:      "blog",
				Dir:       "content/blog",
				Pattern:   "*.md",
				Recursive: true,
			},
		},
		Output: OutputConfig{
			Dir:          "public",
			GenerateFeed: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// FromFile loads a YAML site configuration and merges it over the defaults.
func FromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("blog config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("blog config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints before the pipeline boots.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Title) == "" {
		return ErrSiteTitleRequired
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return ErrOutputDirRequired
	}

	seen := map[string]struct{}{}
	for _, collection := range cfg.Collections {
		name := strings.TrimSpace(collection.Name)
		if name == "" {
			return ErrCollectionNameRequired
		}
		if strings.TrimSpace(collection.Dir) == "" {
			return fmt.Errorf("%w: %s", ErrCollectionDirRequired, name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrCollectionNameDuplicate, name)
		}
		seen[name] = struct{}{}
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "console", "json", "pretty":
		return true
	default:
		return false
	}
}
