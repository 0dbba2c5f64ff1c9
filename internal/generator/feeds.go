package generator

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

const maxFeedItems = 100

// writeFeed emits a single RSS 2.0 document covering every rendered page,
// newest first, capped at maxFeedItems.
func (s *Service) writeFeed(ctx context.Context, pages []RenderedPage) error {
	items := append([]RenderedPage(nil), pages...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].SourcePath < items[j].SourcePath
		}
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > maxFeedItems {
		items = items[:maxFeedItems]
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"><channel>` + "\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(s.cfg.Site.Title))
	fmt.Fprintf(&b, "<link>%s</link>\n", html.EscapeString(s.cfg.Site.BaseURL))
	fmt.Fprintf(&b, "<description>%s</description>\n", html.EscapeString(s.cfg.Site.Description))

	for _, item := range items {
		link := absoluteURL(s.cfg.Site.BaseURL, pageRoute(item))
		b.WriteString("<item>\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(item.Title))
		fmt.Fprintf(&b, "<link>%s</link>\n", html.EscapeString(link))
		fmt.Fprintf(&b, "<guid>%s</guid>\n", html.EscapeString(link))
		fmt.Fprintf(&b, "<description>%s</description>\n", html.EscapeString(item.Description))
		if !item.Date.IsZero() {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>\n", item.Date.UTC().Format(time.RFC1123Z))
		}
		b.WriteString("</item>\n")
	}

	b.WriteString("</channel></rss>\n")

	if err := s.writer.WriteFile(ctx, "feed.xml", []byte(b.String())); err != nil {
		return fmt.Errorf("generator: write feed.xml: %w", err)
	}
	return nil
}

func pageRoute(page RenderedPage) string {
	route := strings.TrimSuffix(page.OutputPath, "index.html")
	return "/" + strings.Trim(route, "/") + "/"
}

func absoluteURL(baseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return route
	}
	return base + route
}
