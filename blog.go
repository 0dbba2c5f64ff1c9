// Package blog wires the content-collection validation core into a static
// site pipeline: schemas registered once at startup, Markdown documents
// validated against them at build time, and validated records rendered into
// pages, indexes, and a feed.
package blog

import (
	"io/fs"
	"os"

	"github.com/goliatone/go-blog/collections"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

// Registry exports the collection registry type for hosts that register
// additional collections.
type Registry = collections.Registry

// Schema exports the collection schema type.
type Schema = collections.Schema

// GeneratorService exports the static site generator.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build result.
type BuildResult = generator.BuildResult

// BlogSchema declares the metadata contract for the "blog" collection:
// title and description as required text, a required publication date
// coerced from ISO-8601 text, and a required list of tags. Undeclared
// front-matter fields (layout hints and the like) pass through untouched
// unless strict mode is enabled for the collection.
func BlogSchema() collections.Schema {
	return collections.Schema{
		Name: "blog",
		Fields: []collections.FieldRule{
			{Name: "title", Kind: collections.KindString},
			{Name: "description", Kind: collections.KindString},
			{Name: "date", Kind: collections.KindDate, Coerce: true},
			{Name: "tags", Kind: collections.KindStringArray},
		},
	}
}

// DefaultSchemas lists every schema registered by default.
func DefaultSchemas() []collections.Schema {
	return []collections.Schema{BlogSchema()}
}

// Module aggregates the wired pipeline for one site.
type Module struct {
	Config    runtimeconfig.Config
	Registry  *collections.Registry
	Generator *generator.Service
	Logger    logging.Logger
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	fsys    fs.FS
	writer  generator.ArtifactWriter
	logger  logging.Logger
	schemas []collections.Schema
}

// WithFS overrides the filesystem content directories are read from. The
// default is the current working directory.
func WithFS(fsys fs.FS) Option {
	return func(o *moduleOptions) { o.fsys = fsys }
}

// WithWriter overrides where generated artifacts land. The default writes
// beneath the configured output directory.
func WithWriter(writer generator.ArtifactWriter) Option {
	return func(o *moduleOptions) { o.writer = writer }
}

// WithLogger injects the pipeline logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(o *moduleOptions) { o.logger = logger }
}

// WithSchemas replaces the default schema set.
func WithSchemas(schemas ...collections.Schema) Option {
	return func(o *moduleOptions) { o.schemas = schemas }
}

// New validates cfg and wires the registry, parser, and generator into a
// ready-to-build module.
func New(cfg runtimeconfig.Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{
		fsys:    os.DirFS("."),
		logger:  logging.NoOp(),
		schemas: DefaultSchemas(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.writer == nil {
		options.writer = generator.NewOSWriter(cfg.Output.Dir)
	}

	registry, err := collections.NewRegistry(applyStrict(options.schemas, cfg.Collections)...)
	if err != nil {
		return nil, err
	}

	sources := make([]generator.CollectionSource, 0, len(cfg.Collections))
	for _, collection := range cfg.Collections {
		sources = append(sources, generator.CollectionSource{
			Name:      collection.Name,
			Dir:       collection.Dir,
			Pattern:   collection.Pattern,
			Recursive: collection.Recursive,
		})
	}

	service, err := generator.NewService(generator.Config{
		Site: generator.SiteMeta{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			BaseURL:     cfg.Site.BaseURL,
			Author:      cfg.Site.Author,
		},
		Sources:      sources,
		GenerateFeed: cfg.Output.GenerateFeed,
	}, generator.Dependencies{
		FS:       options.fsys,
		Registry: registry,
		Parser:   markdown.NewGoldmarkParser(cfg.Markdown),
		Writer:   options.writer,
		Logger:   options.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		Config:    cfg,
		Registry:  registry,
		Generator: service,
		Logger:    options.logger,
	}, nil
}

// applyStrict copies per-collection strict toggles from the runtime config
// onto the matching schemas before registration.
func applyStrict(schemas []collections.Schema, configs []runtimeconfig.CollectionConfig) []collections.Schema {
	strict := map[string]bool{}
	for _, collection := range configs {
		strict[collection.Name] = collection.Strict
	}

	out := make([]collections.Schema, len(schemas))
	for i, schema := range schemas {
		if enabled, ok := strict[schema.Name]; ok {
			schema.Strict = enabled
		}
		out[i] = schema
	}
	return out
}
