// Package bootstrap assembles the blog module for the CLI entry points:
// configuration loading, logger construction, and pipeline wiring.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
)

// Options carry the CLI flag overrides applied on top of the site config.
type Options struct {
	// ConfigPath points at the YAML site configuration. When empty,
	// site.yml is used if present; otherwise defaults apply.
	ConfigPath string
	// OutputDir overrides the configured output directory when set.
	OutputDir string
	// LogLevel overrides the configured logging level when set.
	LogLevel string
}

// Runtime is the assembled module plus its root logger.
type Runtime struct {
	Module *blog.Module
	Logger logging.Logger
}

const defaultConfigPath = "site.yml"

// Build loads configuration, constructs the logger, and wires the module.
func Build(opts Options) (*Runtime, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Output.Dir = dir
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}
	logger := provider.GetLogger("blog")

	module, err := blog.New(cfg, blog.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("wire blog module: %w", err)
	}

	return &Runtime{
		Module: module,
		Logger: logger,
	}, nil
}

func loadConfig(path string) (blog.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return blog.DefaultConfig(), nil
		}
		path = defaultConfigPath
	}
	return blog.ConfigFromFile(path)
}

// SplitCollections turns a comma separated flag value into a filter list.
func SplitCollections(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
