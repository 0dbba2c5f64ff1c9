// Package generator turns validated collection documents into a static
// site: one HTML page per document, an index per collection, and an RSS
// feed. Discovery and front-matter parsing are delegated to the markdown
// package; schema validation to the collections registry. The generator
// decides the per-document escalation policy: validation failures become
// diagnostics and skip the document unless the build runs in strict mode.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/collections"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
)

var (
	ErrRegistryRequired = errors.New("generator: collection registry is required")
	ErrParserRequired   = errors.New("generator: markdown parser is required")
	ErrSourcesRequired  = errors.New("generator: source filesystem is required")
	ErrBuildFailed      = errors.New("generator: build failed with validation diagnostics")
)

// SiteMeta carries site-wide metadata rendered into layouts and feeds.
type SiteMeta struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// CollectionSource binds a registered collection to a source directory.
type CollectionSource struct {
	Name      string
	Dir       string
	Pattern   string
	Recursive bool
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	Site         SiteMeta
	Sources      []CollectionSource
	GenerateFeed bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	// FS is the filesystem the collection source directories live in.
	FS       fs.FS
	Registry *collections.Registry
	Parser   markdown.Parser
	Writer   ArtifactWriter
	Logger   logging.Logger
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Collections restricts the run to the named collections; empty means all.
	Collections []string
	// DryRun renders every page but writes nothing.
	DryRun bool
	// Strict fails the build when any document fails validation. The
	// default is skip-and-warn: bad documents become diagnostics and the
	// rest of the site still builds.
	Strict bool
}

// RenderedPage reports one emitted page.
type RenderedPage struct {
	Collection  string
	SourcePath  string
	OutputPath  string
	Title       string
	Description string
	Date        time.Time
	Tags        []string
}

// Diagnostic reports one document that failed schema validation.
type Diagnostic struct {
	Collection string
	SourcePath string
	Violations []collections.Violation
}

func (d Diagnostic) String() string {
	parts := make([]string, 0, len(d.Violations))
	for _, violation := range d.Violations {
		parts = append(parts, violation.String())
	}
	return fmt.Sprintf("%s [%s]: %s", d.SourcePath, d.Collection, strings.Join(parts, "; "))
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	ID           uuid.UUID
	PagesBuilt   int
	PagesSkipped int
	Collections  []string
	Duration     time.Duration
	Rendered     []RenderedPage
	Diagnostics  []Diagnostic
	DryRun       bool
}

// Service builds static artifacts from collection sources.
type Service struct {
	cfg      Config
	fsys     fs.FS
	registry *collections.Registry
	parser   markdown.Parser
	writer   ArtifactWriter
	logger   logging.Logger
	now      func() time.Time
}

// NewService wires a generator with the provided configuration and
// dependencies. Writer defaults to a no-op sink and Logger to the no-op
// logger when omitted.
func NewService(cfg Config, deps Dependencies) (*Service, error) {
	if deps.Registry == nil {
		return nil, ErrRegistryRequired
	}
	if deps.Parser == nil {
		return nil, ErrParserRequired
	}
	if deps.FS == nil {
		return nil, ErrSourcesRequired
	}

	writer := deps.Writer
	if writer == nil {
		writer = noopWriter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		cfg:      cfg,
		fsys:     deps.FS,
		registry: deps.Registry,
		parser:   deps.Parser,
		writer:   writer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Build validates and renders every configured collection. All documents
// are processed before the outcome is decided so the result carries the
// complete diagnostic list, never just the first failure.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := s.now()
	result := &BuildResult{
		ID:     uuid.New(),
		DryRun: opts.DryRun,
	}

	for _, source := range s.selectSources(opts.Collections) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.buildCollection(ctx, source, opts, result); err != nil {
			return nil, err
		}
		result.Collections = append(result.Collections, source.Name)
	}

	if s.cfg.GenerateFeed && !opts.DryRun {
		if err := s.writeFeed(ctx, result.Rendered); err != nil {
			return nil, err
		}
	}

	result.Duration = s.now().Sub(started)

	if opts.Strict && len(result.Diagnostics) > 0 {
		return result, fmt.Errorf("%w: %d invalid document(s)", ErrBuildFailed, len(result.Diagnostics))
	}
	return result, nil
}

// Check validates every configured collection without rendering or writing
// anything. Used by the content check command for fast feedback.
func (s *Service) Check(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := s.now()
	result := &BuildResult{
		ID:     uuid.New(),
		DryRun: true,
	}

	for _, source := range s.selectSources(opts.Collections) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		schema, docs, err := s.loadCollection(ctx, source)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if _, err := collections.Validate(schema, doc.Document.Raw); err != nil {
				result.Diagnostics = append(result.Diagnostics, diagnosticFromError(source.Name, doc.Document.FilePath, err))
				continue
			}
			result.PagesBuilt++
		}
		result.Collections = append(result.Collections, source.Name)
	}

	result.Duration = s.now().Sub(started)

	if opts.Strict && len(result.Diagnostics) > 0 {
		return result, fmt.Errorf("%w: %d invalid document(s)", ErrBuildFailed, len(result.Diagnostics))
	}
	return result, nil
}

func (s *Service) selectSources(names []string) []CollectionSource {
	if len(names) == 0 {
		return s.cfg.Sources
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = struct{}{}
	}
	var sources []CollectionSource
	for _, source := range s.cfg.Sources {
		if _, ok := wanted[source.Name]; ok {
			sources = append(sources, source)
		}
	}
	return sources
}

func (s *Service) loadCollection(ctx context.Context, source CollectionSource) (collections.Schema, []*markdown.DocumentResult, error) {
	schema, err := s.registry.Lookup(source.Name)
	if err != nil {
		return collections.Schema{}, nil, err
	}

	loader := markdown.NewLoader(s.fsys, markdown.LoaderConfig{
		Pattern:   source.Pattern,
		Recursive: source.Recursive,
	})
	docs, err := loader.LoadDirectory(ctx, source.Dir)
	if err != nil {
		return collections.Schema{}, nil, fmt.Errorf("generator: load collection %s: %w", source.Name, err)
	}
	return schema, docs, nil
}

func (s *Service) buildCollection(ctx context.Context, source CollectionSource, opts BuildOptions, result *BuildResult) error {
	logger := logging.WithFields(s.logger, map[string]any{"collection": source.Name})

	schema, docs, err := s.loadCollection(ctx, source)
	if err != nil {
		return err
	}

	var pages []RenderedPage
	for _, doc := range docs {
		record, err := collections.Validate(schema, doc.Document.Raw)
		if err != nil {
			diagnostic := diagnosticFromError(source.Name, doc.Document.FilePath, err)
			logger.Warn("generator.document.invalid", "source", doc.Document.FilePath, "violations", len(diagnostic.Violations))
			result.Diagnostics = append(result.Diagnostics, diagnostic)
			result.PagesSkipped++
			continue
		}

		page, err := s.renderDocument(ctx, source, record, doc.Document, opts)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		result.PagesBuilt++
	}

	sortPagesByDate(pages)
	result.Rendered = append(result.Rendered, pages...)

	if !opts.DryRun {
		if err := s.writeIndex(ctx, source, pages); err != nil {
			return err
		}
	}

	logger.Info("generator.collection.done", "built", len(pages), "skipped", len(docs)-len(pages))
	return nil
}

func (s *Service) renderDocument(ctx context.Context, source CollectionSource, record *collections.Record, doc *markdown.Document, opts BuildOptions) (RenderedPage, error) {
	bodyHTML, err := s.parser.Parse(doc.Body)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("generator: render %s: %w", doc.FilePath, err)
	}

	page := RenderedPage{
		Collection:  source.Name,
		SourcePath:  doc.FilePath,
		OutputPath:  path.Join(source.Name, permalink(record, doc.FilePath), "index.html"),
		Title:       record.String("title"),
		Description: record.String("description"),
		Date:        record.Date("date"),
		Tags:        record.Strings("tags"),
	}

	if opts.DryRun {
		return page, nil
	}

	rendered, err := renderPost(s.cfg.Site, page, bodyHTML)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("generator: layout %s: %w", doc.FilePath, err)
	}
	if err := s.writer.WriteFile(ctx, page.OutputPath, rendered); err != nil {
		return RenderedPage{}, fmt.Errorf("generator: write %s: %w", page.OutputPath, err)
	}
	return page, nil
}

func (s *Service) writeIndex(ctx context.Context, source CollectionSource, pages []RenderedPage) error {
	rendered, err := renderIndex(s.cfg.Site, source.Name, pages)
	if err != nil {
		return fmt.Errorf("generator: index %s: %w", source.Name, err)
	}
	target := path.Join(source.Name, "index.html")
	if err := s.writer.WriteFile(ctx, target, rendered); err != nil {
		return fmt.Errorf("generator: write %s: %w", target, err)
	}
	return nil
}

func diagnosticFromError(collection, sourcePath string, err error) Diagnostic {
	diagnostic := Diagnostic{
		Collection: collection,
		SourcePath: sourcePath,
	}
	var failure *collections.Failure
	if errors.As(err, &failure) {
		diagnostic.Violations = failure.Violations
	} else {
		diagnostic.Violations = []collections.Violation{{
			Field:  "",
			Code:   collections.TypeMismatch,
			Reason: err.Error(),
		}}
	}
	return diagnostic
}

func sortPagesByDate(pages []RenderedPage) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Date.Equal(pages[j].Date) {
			return pages[i].SourcePath < pages[j].SourcePath
		}
		return pages[i].Date.After(pages[j].Date)
	})
}
