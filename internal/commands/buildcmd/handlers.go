package buildcmd

import (
	"context"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
)

// BuildSiteHandler orchestrates generator builds through the shared pipeline
// runner.
type BuildSiteHandler struct {
	inner *commands.Runner[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator
// service.
func NewBuildSiteHandler(service *generator.Service, logger logging.Logger, opts ...commands.RunnerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	run := func(ctx context.Context, msg BuildSiteCommand) (*generator.BuildResult, error) {
		return service.Build(ctx, generator.BuildOptions{
			Collections: msg.Collections,
			DryRun:      msg.DryRun,
			Strict:      msg.Strict,
		})
	}

	runnerOpts := append([]commands.RunnerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
	}, opts...)

	return &BuildSiteHandler{inner: commands.NewRunner(run, runnerOpts...)}
}

// Execute runs the build command and delivers the result, including the
// diagnostic report of a strict failure, to the message callback.
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	result, err := h.inner.Run(ctx, msg)
	invokeCallback(msg.ResultCallback, result)
	return err
}

// CheckContentHandler validates collection content without writing output.
type CheckContentHandler struct {
	inner *commands.Runner[CheckContentCommand]
}

// NewCheckContentHandler constructs a handler wired to the provided
// generator service.
func NewCheckContentHandler(service *generator.Service, logger logging.Logger, opts ...commands.RunnerOption[CheckContentCommand]) *CheckContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	run := func(ctx context.Context, msg CheckContentCommand) (*generator.BuildResult, error) {
		return service.Check(ctx, generator.BuildOptions{
			Collections: msg.Collections,
			Strict:      msg.Strict,
		})
	}

	runnerOpts := append([]commands.RunnerOption[CheckContentCommand]{
		commands.WithLogger[CheckContentCommand](baseLogger),
		commands.WithOperation[CheckContentCommand]("content.check"),
	}, opts...)

	return &CheckContentHandler{inner: commands.NewRunner(run, runnerOpts...)}
}

// Execute runs the check command and delivers the report to the message
// callback.
func (h *CheckContentHandler) Execute(ctx context.Context, msg CheckContentCommand) error {
	result, err := h.inner.Run(ctx, msg)
	invokeCallback(msg.ResultCallback, result)
	return err
}
