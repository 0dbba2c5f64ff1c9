package generator

import (
	"path"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/collections"
)

// permalink derives the output slug for a validated document. The title
// drives the URL; documents without a usable title fall back to the source
// file name so every page still gets a stable address.
func permalink(record *collections.Record, sourcePath string) string {
	if normalized, err := slug.Normalize(record.String("title")); err == nil && normalized != "" {
		return normalized
	}
	base := path.Base(sourcePath)
	base = strings.TrimSuffix(base, path.Ext(base))
	normalized, _ := slug.Normalize(base)
	return normalized
}
