package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/collections"
	"github.com/goliatone/go-blog/internal/generator"
)

const (
	messageInvalidCode    = "BLOG_MESSAGE_INVALID"
	runCancelledCode      = "BLOG_RUN_CANCELLED"
	runTimeoutCode        = "BLOG_RUN_TIMEOUT"
	runContextCode        = "BLOG_RUN_CONTEXT_ERROR"
	contentInvalidCode    = "BLOG_CONTENT_INVALID"
	collectionUnknownCode = "BLOG_COLLECTION_UNKNOWN"
	runFailedCode         = "BLOG_RUN_FAILED"
)

func wrapMessageError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(messageInvalidCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline run cancelled").
			WithTextCode(runCancelledCode)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline run deadline exceeded").
			WithTextCode(runTimeoutCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline run context error").
			WithTextCode(runContextCode)
	}
}

// wrapPipelineError tags generator failures with their blog-level cause so
// dispatchers can tell invalid content apart from an unregistered collection
// or a plain runtime failure without unwrapping generator internals. Strict
// builds that reject documents surface as validation errors because the
// remedy is fixing front-matter, not retrying the run.
func wrapPipelineError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, generator.ErrBuildFailed):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "collection content failed validation").
			WithTextCode(contentInvalidCode)
	case errors.Is(err, collections.ErrUnknownCollection):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "collection is not registered").
			WithTextCode(collectionUnknownCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline run failed").
			WithTextCode(runFailedCode)
	}
}
