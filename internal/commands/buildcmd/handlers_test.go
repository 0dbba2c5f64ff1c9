package buildcmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/collections"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
)

const fixturePost = `---
title: Holding Registers Demystified
description: What 4x addressing actually means
date: 2025-10-05
tags:
  - Modbus
---

Body.
`

const fixtureBroken = `---
description: No title here
date: 2025-10-06
tags: nope
---

Body.
`

func newService(t *testing.T, files map[string]string) *generator.Service {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}

	registry, err := collections.NewRegistry(collections.Schema{
		Name: "blog",
		Fields: []collections.FieldRule{
			{Name: "title", Kind: collections.KindString},
			{Name: "description", Kind: collections.KindString},
			{Name: "date", Kind: collections.KindDate, Coerce: true},
			{Name: "tags", Kind: collections.KindStringArray},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	service, err := generator.NewService(generator.Config{
		Site:    generator.SiteMeta{Title: "Field Notes"},
		Sources: []generator.CollectionSource{{Name: "blog", Dir: "content/blog", Recursive: true}},
	}, generator.Dependencies{
		FS:       fsys,
		Registry: registry,
		Parser:   markdown.NewGoldmarkParser(markdown.ParseOptions{}),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return service
}

func TestBuildSiteHandler_Execute(t *testing.T) {
	service := newService(t, map[string]string{
		"content/blog/registers.md": fixturePost,
	})

	var captured *generator.BuildResult
	handler := NewBuildSiteHandler(service, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{
		DryRun:         true,
		ResultCallback: func(result *generator.BuildResult) { captured = result },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if captured == nil || captured.PagesBuilt != 1 {
		t.Fatalf("expected callback with build result, got %#v", captured)
	}
}

func TestBuildSiteHandler_ValidationFailure(t *testing.T) {
	service := newService(t, nil)
	handler := NewBuildSiteHandler(service, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{Collections: []string{" "}})
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestBuildSiteHandler_StrictSurfacesDiagnostics(t *testing.T) {
	service := newService(t, map[string]string{
		"content/blog/registers.md": fixturePost,
		"content/blog/broken.md":    fixtureBroken,
	})

	var captured *generator.BuildResult
	handler := NewBuildSiteHandler(service, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{
		DryRun:         true,
		Strict:         true,
		ResultCallback: func(result *generator.BuildResult) { captured = result },
	})
	if err == nil {
		t.Fatalf("expected strict build to fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for rejected content, got %v", err)
	}
	if !errors.Is(err, generator.ErrBuildFailed) {
		t.Fatalf("expected wrapped build failure, got %v", err)
	}
	if captured == nil || len(captured.Diagnostics) != 1 {
		t.Fatalf("callback should still receive the diagnostic report: %#v", captured)
	}
}

func TestCheckContentHandler_Execute(t *testing.T) {
	service := newService(t, map[string]string{
		"content/blog/registers.md": fixturePost,
		"content/blog/broken.md":    fixtureBroken,
	})

	var captured *generator.BuildResult
	handler := NewCheckContentHandler(service, nil)

	err := handler.Execute(context.Background(), CheckContentCommand{
		ResultCallback: func(result *generator.BuildResult) { captured = result },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if captured == nil || captured.PagesBuilt != 1 || len(captured.Diagnostics) != 1 {
		t.Fatalf("unexpected check result: %#v", captured)
	}
}
