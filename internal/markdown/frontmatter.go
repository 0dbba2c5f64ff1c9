package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/collections"
)

// Document represents a Markdown file with parsed metadata and content.
// Raw carries the untyped front-matter fields exactly as the parser
// produced them; validation against a collection schema happens elsewhere.
type Document struct {
	FilePath     string
	Raw          collections.RawDocument
	Body         []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// build workflows can detect changes without re-reading sources.
	Checksum []byte
}

// ParseFrontMatter extracts the metadata map and the Markdown body from the
// provided source bytes. The returned map is untyped key/value data; the
// only guarantee is that the front-matter block was syntactically valid.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}

// BuildDocument assembles a Document from the supplied file path, raw
// content, and modification time.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &Document{
		FilePath:     path,
		Raw:          rawDocument(path, meta),
		Body:         body,
		LastModified: modified,
	}, nil
}

// rawDocument lowers the untyped metadata map into the closed variant type
// the validator consumes.
func rawDocument(path string, meta map[string]any) collections.RawDocument {
	fields := make(map[string]collections.RawValue, len(meta))
	for key, value := range meta {
		fields[key] = collections.FromAny(value)
	}
	return collections.RawDocument{
		SourcePath: path,
		Fields:     fields,
	}
}
