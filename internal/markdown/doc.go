// Package markdown discovers Markdown source documents, splits front-matter
// metadata from body content, and renders bodies into HTML. Parsed metadata
// is handed to the collections package as raw untyped fields; this package
// never interprets it against a schema.
package markdown
