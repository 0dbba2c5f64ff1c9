// Package commands dispatches the blog pipeline's operations as go-command
// messages. The shared runner validates the message, bounds the run with a
// timeout, logs the build outcome, and tags failures with blog-specific
// error codes so hosts can route them without knowing generator internals.
package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
)

const defaultRunTimeout = 5 * time.Minute

// RunFunc executes one pipeline operation against the generator. The result
// is returned even when err is non-nil so callers can surface the
// diagnostics collected before the run failed.
type RunFunc[T command.Message] func(ctx context.Context, msg T) (*generator.BuildResult, error)

// RunnerOption configures a Runner instance.
type RunnerOption[T command.Message] func(*Runner[T])

// Runner executes a single pipeline command end to end: message validation,
// context management, the generator call, and outcome logging.
type Runner[T command.Message] struct {
	run       RunFunc[T]
	logger    logging.Logger
	timeout   time.Duration
	operation string
}

// NewRunner creates a runner for one pipeline operation.
func NewRunner[T command.Message](run RunFunc[T], opts ...RunnerOption[T]) *Runner[T] {
	if run == nil {
		panic("commands: run function cannot be nil")
	}
	r := &Runner[T]{
		run:     run,
		logger:  logging.NoOp(),
		timeout: defaultRunTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates msg and executes the operation. The build result is
// returned alongside any error so strict failures still carry their
// diagnostic report to the caller.
func (r *Runner[T]) Run(ctx context.Context, msg T) (*generator.BuildResult, error) {
	if err := command.ValidateMessage(msg); err != nil {
		return nil, wrapMessageError(err)
	}

	ctx = ensureContext(ctx)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, wrapContextError(err)
	}

	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if r.operation != "" {
		fields["operation"] = r.operation
	}
	logger := logging.WithFields(r.logger, fields)
	logger.Debug("pipeline.run.start")

	result, err := r.run(ctx, msg)
	if err != nil {
		logger.Error("pipeline.run.failed", "error", err)
		return result, wrapPipelineError(err)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("pipeline.run.context_error", "error", err)
		return result, wrapContextError(err)
	}

	if result != nil {
		logger.Info("pipeline.run.complete",
			"pages_built", result.PagesBuilt,
			"pages_skipped", result.PagesSkipped,
			"diagnostics", len(result.Diagnostics),
		)
	} else {
		logger.Info("pipeline.run.complete")
	}
	return result, nil
}

// WithTimeout overrides the default run timeout. Zero or negative disables
// the timeout entirely.
func WithTimeout[T command.Message](timeout time.Duration) RunnerOption[T] {
	return func(r *Runner[T]) {
		if timeout <= 0 {
			r.timeout = 0
			return
		}
		r.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op
// logger.
func WithLogger[T command.Message](logger logging.Logger) RunnerOption[T] {
	return func(r *Runner[T]) {
		if logger == nil {
			r.logger = logging.NoOp()
			return
		}
		r.logger = logger
	}
}

// WithOperation sets a human-friendly operation name emitted with every log
// entry.
func WithOperation[T command.Message](operation string) RunnerOption[T] {
	return func(r *Runner[T]) {
		r.operation = operation
	}
}

func (r *Runner[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
