// Package parallel runs a batch of independent task invocations either
// sequentially or on a bounded worker pool.
//
// Results are always returned in input order and the optional callback is
// applied to every result, so a pure task yields the same output for any
// pool size.
package parallel

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/logging"
)

// Task computes one output from one input.
type Task[In, Out any] func(ctx context.Context, in In) (Out, error)

type settings struct {
	name     string
	callback any
	progress func(done, total int)
	runner   Runner
}

// Option configures a Run call.
type Option func(*settings)

// WithTaskName names the batch in logs and errors.
func WithTaskName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithCallback post-processes every task result. The callback type must
// match the task output type.
func WithCallback[Out any](fn func(Out) Out) Option {
	return func(s *settings) { s.callback = fn }
}

// WithProgress calls fn after each completed input. fn may be called
// from several goroutines at once.
func WithProgress(fn func(done, total int)) Option {
	return func(s *settings) { s.progress = fn }
}

// WithRunner uses r instead of the runner selected by the config.
func WithRunner(r Runner) Option {
	return func(s *settings) { s.runner = r }
}

// Run invokes task once per input and returns the outputs in input order.
// Configuration errors are reported before any task starts. The first
// task failure is returned as an errors.TaskError.
func Run[In, Out any](ctx context.Context, cfg Config, task Task[In, Out], inputs []In, opts ...Option) ([]Out, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	var callback func(Out) Out
	if s.callback != nil {
		cb, ok := s.callback.(func(Out) Out)
		if !ok {
			return nil, errors.NewConfigError("parallel",
				fmt.Sprintf("callback %T does not match task output", s.callback), nil)
		}
		callback = cb
	}

	runner := s.runner
	if runner == nil {
		var err error
		if runner, err = NewRunner(cfg); err != nil {
			return nil, err
		}
	}

	if s.name != "" {
		ctx = logging.WithTask(ctx, s.name)
	}
	logging.FromContext(ctx).Info().
		Int("processes", runner.Processes()).
		Int("inputs", len(inputs)).
		Msgf("Using %d processes to compute %s", runner.Processes(), s.name)

	results := make([]Out, len(inputs))
	var done atomic.Int64
	job := func(ctx context.Context, i int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.NewTaskError(s.name, i, fmt.Errorf("panic: %v", r))
			}
		}()

		out, err := task(ctx, inputs[i])
		if err != nil {
			return errors.NewTaskError(s.name, i, err)
		}
		if callback != nil {
			out = callback(out)
		}
		results[i] = out
		if s.progress != nil {
			s.progress(int(done.Add(1)), len(inputs))
		}
		return nil
	}

	if err := runner.Run(ctx, len(inputs), job); err != nil {
		return nil, err
	}
	return results, nil
}

// Map is Run for tasks that do not take a context.
func Map[In, Out any](ctx context.Context, cfg Config, fn func(In) (Out, error), inputs []In, opts ...Option) ([]Out, error) {
	return Run(ctx, cfg, func(_ context.Context, in In) (Out, error) { return fn(in) }, inputs, opts...)
}
