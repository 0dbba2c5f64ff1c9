package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/collections"
	"github.com/goliatone/go-blog/internal/generator"
)

type stubMessage struct {
	invalid bool
}

func (stubMessage) Type() string { return "blog.test.stub" }

func (m stubMessage) Validate() error {
	if m.invalid {
		return errors.New("stub message invalid")
	}
	return nil
}

func TestRunner_Success(t *testing.T) {
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		return &generator.BuildResult{PagesBuilt: 2}, nil
	})

	result, err := runner.Run(context.Background(), stubMessage{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || result.PagesBuilt != 2 {
		t.Fatalf("expected build result to pass through, got %#v", result)
	}
}

func TestRunner_WrapsMessageErrors(t *testing.T) {
	called := false
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		called = true
		return nil, nil
	})

	_, err := runner.Run(context.Background(), stubMessage{invalid: true})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatalf("expected run not to execute when the message is invalid")
	}
}

func TestRunner_TagsInvalidContent(t *testing.T) {
	report := &generator.BuildResult{
		Diagnostics: []generator.Diagnostic{{Collection: "blog", SourcePath: "broken.md"}},
	}
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		return report, fmt.Errorf("%w: 1 invalid document(s)", generator.ErrBuildFailed)
	})

	result, err := runner.Run(context.Background(), stubMessage{})
	if err == nil {
		t.Fatalf("expected content failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for rejected content, got %v", err)
	}
	if !errors.Is(err, generator.ErrBuildFailed) {
		t.Fatalf("expected wrapped build failure, got %v", err)
	}
	if result == nil || len(result.Diagnostics) != 1 {
		t.Fatalf("diagnostic report must survive the failure: %#v", result)
	}
}

func TestRunner_TagsUnknownCollection(t *testing.T) {
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		return nil, &collections.UnknownCollectionError{Collection: "docs"}
	})

	_, err := runner.Run(context.Background(), stubMessage{})
	if err == nil {
		t.Fatalf("expected unknown collection error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, collections.ErrUnknownCollection) {
		t.Fatalf("expected wrapped unknown collection cause, got %v", err)
	}
}

func TestRunner_WrapsRuntimeErrors(t *testing.T) {
	boom := errors.New("boom")
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		return nil, boom
	})

	_, err := runner.Run(context.Background(), stubMessage{})
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	called := false
	runner := NewRunner(func(context.Context, stubMessage) (*generator.BuildResult, error) {
		called = true
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, stubMessage{})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatalf("expected run not to execute on a cancelled context")
	}
}
