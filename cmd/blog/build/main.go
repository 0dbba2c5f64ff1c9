package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/commands/buildcmd"
	"github.com/goliatone/go-blog/internal/generator"
)

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the site configuration file (defaults to site.yml when present)")
	outputDir := fs.String("output", "", "Override the configured output directory")
	collectionsFlag := fs.String("collections", "", "Comma separated list of collections to build (defaults to all)")
	logLevel := fs.String("log-level", "", "Override the configured logging level")
	dryRun := fs.Bool("dry-run", false, "Validate and render without writing artifacts")
	strict := fs.Bool("strict", false, "Fail the build when any document fails schema validation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	runtime, err := bootstrap.Build(bootstrap.Options{
		ConfigPath: *configPath,
		OutputDir:  *outputDir,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	handler := buildcmd.NewBuildSiteHandler(runtime.Module.Generator, runtime.Logger)

	var result *generator.BuildResult
	cmd := buildcmd.BuildSiteCommand{
		Collections:    bootstrap.SplitCollections(*collectionsFlag),
		DryRun:         *dryRun,
		Strict:         *strict,
		ResultCallback: func(r *generator.BuildResult) { result = r },
	}

	execErr := handler.Execute(context.Background(), cmd)
	printSummary(result)
	if execErr != nil {
		return execErr
	}
	return nil
}

func printSummary(result *generator.BuildResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(os.Stdout, "build %s: %d page(s) built, %d skipped in %s\n",
		result.ID, result.PagesBuilt, result.PagesSkipped, result.Duration)
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "  invalid: %s\n", diagnostic)
	}
}
