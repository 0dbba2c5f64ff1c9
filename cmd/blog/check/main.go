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
	if err := runCheck(os.Args[1:]); err != nil {
		log.Fatalf("blog check: %v", err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("blog-check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the site configuration file (defaults to site.yml when present)")
	collectionsFlag := fs.String("collections", "", "Comma separated list of collections to check (defaults to all)")
	logLevel := fs.String("log-level", "", "Override the configured logging level")
	strict := fs.Bool("strict", true, "Exit non-zero when any document fails schema validation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	runtime, err := bootstrap.Build(bootstrap.Options{
		ConfigPath: *configPath,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	handler := buildcmd.NewCheckContentHandler(runtime.Module.Generator, runtime.Logger)

	var result *generator.BuildResult
	cmd := buildcmd.CheckContentCommand{
		Collections:    bootstrap.SplitCollections(*collectionsFlag),
		Strict:         *strict,
		ResultCallback: func(r *generator.BuildResult) { result = r },
	}

	execErr := handler.Execute(context.Background(), cmd)
	printReport(result)
	if execErr != nil {
		return execErr
	}
	return nil
}

func printReport(result *generator.BuildResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(os.Stdout, "check %s: %d valid document(s), %d invalid\n",
		result.ID, result.PagesBuilt, len(result.Diagnostics))
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "  invalid: %s\n", diagnostic)
	}
}
