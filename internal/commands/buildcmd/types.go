// Package buildcmd exposes the site build and content check operations as
// go-command messages so hosts can dispatch them through a command bus or
// invoke the handlers directly.
package buildcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/internal/generator"
)

const (
	buildSiteMessageType    = "blog.site.build"
	checkContentMessageType = "blog.content.check"
)

// ResultCallback receives the build result produced by an operation. The
// callback is optional and invoked synchronously from the handler.
type ResultCallback func(*generator.BuildResult)

// BuildSiteCommand executes a generator build using the provided filters.
type BuildSiteCommand struct {
	Collections    []string       `json:"collections,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	Strict         bool           `json:"strict,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures collection filters are well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, collection := range m.Collections {
		if strings.TrimSpace(collection) == "" {
			errs["collections"] = validation.NewError("blog.site.build.collection_invalid", "collections must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckContentCommand validates collection documents without rendering or
// writing artifacts.
type CheckContentCommand struct {
	Collections    []string       `json:"collections,omitempty"`
	Strict         bool           `json:"strict,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (CheckContentCommand) Type() string { return checkContentMessageType }

// Validate ensures collection filters are well-formed.
func (m CheckContentCommand) Validate() error {
	errs := validation.Errors{}
	for _, collection := range m.Collections {
		if strings.TrimSpace(collection) == "" {
			errs["collections"] = validation.NewError("blog.content.check.collection_invalid", "collections must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func invokeCallback(callback ResultCallback, result *generator.BuildResult) {
	if callback == nil || result == nil {
		return
	}
	callback(result)
}
