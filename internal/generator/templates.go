package generator

import (
	"bytes"
	"embed"
	"html/template"
	"path"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var layouts = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type postView struct {
	Site SiteMeta
	Page RenderedPage
	Body template.HTML
}

type indexEntry struct {
	Title       string
	Description string
	Date        time.Time
	OutputDir   string
}

type indexView struct {
	Site       SiteMeta
	Collection string
	Pages      []indexEntry
}

// renderPost wraps a rendered Markdown body in the post layout. The body is
// trusted output of the Markdown parser; everything else is escaped by
// html/template.
func renderPost(site SiteMeta, page RenderedPage, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := layouts.ExecuteTemplate(&buf, "post.html.tmpl", postView{
		Site: site,
		Page: page,
		Body: template.HTML(body),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderIndex emits the listing page for one collection, newest first.
func renderIndex(site SiteMeta, collection string, pages []RenderedPage) ([]byte, error) {
	view := indexView{
		Site:       site,
		Collection: collection,
		Pages:      make([]indexEntry, 0, len(pages)),
	}
	for _, page := range pages {
		view.Pages = append(view.Pages, indexEntry{
			Title:       page.Title,
			Description: page.Description,
			Date:        page.Date,
			OutputDir:   path.Dir(page.OutputPath),
		})
	}

	var buf bytes.Buffer
	if err := layouts.ExecuteTemplate(&buf, "index.html.tmpl", view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
