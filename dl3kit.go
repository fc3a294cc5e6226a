// Package dl3kit combines metadata stacking, IRF loading and parallel
// batch execution behind a single entry point.
package dl3kit

import (
	"context"
	"fmt"

	"github.com/gammasky/dl3kit/pkg/irf"
	"github.com/gammasky/dl3kit/pkg/logging"
	"github.com/gammasky/dl3kit/pkg/metadata"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Kit loads IRFs and stacks metadata records.
type Kit interface {
	// LoadIRFs reads the four CTA IRF extensions from one file
	LoadIRFs(ctx context.Context, path string) (irf.Set, error)

	// LoadIRFFiles reads several IRF files on the configured runner.
	// Results are in the order of paths.
	LoadIRFFiles(ctx context.Context, paths []string) ([]irf.Set, error)

	// Stack merges records left to right
	Stack(records ...*metadata.MapDatasetMetadata) (*metadata.MapDatasetMetadata, error)

	// Parallel returns the batch execution config
	Parallel() parallel.Config

	// OnIRFLoaded registers a callback for every successfully loaded file
	OnIRFLoaded(IRFLoadedHook)

	// OnStacked registers a callback for every stacked result
	OnStacked(StackedHook)
}

// kit is the internal implementation of the Kit interface
type kit struct {
	config *config
	hooks  *hooks
}

// New creates a Kit with the given options
func New(opts ...Option) (Kit, error) {
	k := &kit{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := k.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if err := k.config.parallel.Validate(); err != nil {
		return nil, err
	}

	return k, nil
}

// LoadIRFs reads the four CTA IRF extensions from one file
func (k *kit) LoadIRFs(ctx context.Context, path string) (irf.Set, error) {
	ctx = k.context(ctx)
	set, err := k.config.loader(ctx, path)
	if err != nil {
		return nil, err
	}
	k.hooks.triggerIRFLoaded(path, set)
	return set, nil
}

// LoadIRFFiles reads several IRF files on the configured runner
func (k *kit) LoadIRFFiles(ctx context.Context, paths []string) ([]irf.Set, error) {
	ctx = k.context(ctx)
	return parallel.Run(ctx, k.config.parallel, k.LoadIRFs, paths,
		parallel.WithTaskName("load_irfs"),
		parallel.WithProgress(func(done, total int) {
			logging.FromContext(ctx).Debug().Int("done", done).Int("total", total).Msg("IRF file loaded")
		}),
	)
}

// Stack merges records left to right
func (k *kit) Stack(records ...*metadata.MapDatasetMetadata) (*metadata.MapDatasetMetadata, error) {
	stacked, err := metadata.StackAll(records...)
	if err != nil {
		return nil, err
	}
	k.hooks.triggerStacked(len(records), stacked)
	return stacked, nil
}

// Parallel returns the batch execution config
func (k *kit) Parallel() parallel.Config {
	return k.config.parallel
}

// OnIRFLoaded registers a callback for every successfully loaded file
func (k *kit) OnIRFLoaded(fn IRFLoadedHook) {
	k.hooks.OnIRFLoaded(fn)
}

// OnStacked registers a callback for every stacked result
func (k *kit) OnStacked(fn StackedHook) {
	k.hooks.OnStacked(fn)
}

// context attaches the configured logger unless ctx already has one
func (k *kit) context(ctx context.Context) context.Context {
	if k.config.logger == nil {
		return ctx
	}
	if logging.FromContext(ctx) != logging.Default() {
		return ctx
	}
	return logging.WithLogger(ctx, k.config.logger)
}
