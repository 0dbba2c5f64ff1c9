package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactWriter abstracts where generated files land so builds can target
// a real directory, a test sink, or nothing at all for dry runs.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// NewOSWriter returns a writer that materialises artifacts under root,
// creating intermediate directories as needed.
func NewOSWriter(root string) ArtifactWriter {
	return &osWriter{root: filepath.Clean(root)}
}

type osWriter struct {
	root string
}

func (w *osWriter) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("generator: write requires a path")
	}

	target := filepath.Join(w.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", name, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", name, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) WriteFile(context.Context, string, []byte) error { return nil }
