package dl3kit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gammasky/dl3kit/pkg/irf"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// LoaderFunc reads the IRFs of one file.
type LoaderFunc func(ctx context.Context, path string) (irf.Set, error)

// config holds the Kit configuration
type config struct {
	parallel parallel.Config
	loader   LoaderFunc
	logger   *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		parallel: parallel.DefaultConfig(),
		loader:   irf.LoadCTAIRFs,
	}
}

// Option is a function that configures a Kit instance
type Option func(*config) error

// options applies the given options to the kit
func (k *kit) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(k.config); err != nil {
			return err
		}
	}
	return nil
}

// WithParallel configures how batches are executed
func WithParallel(cfg parallel.Config) Option {
	return func(c *config) error {
		c.parallel = cfg
		return nil
	}
}

// WithProcesses sets the worker pool size, keeping backend and method
func WithProcesses(n int) Option {
	return func(c *config) error {
		c.parallel.Processes = n
		return nil
	}
}

// WithLoader replaces the IRF file loader
func WithLoader(fn LoaderFunc) Option {
	return func(c *config) error {
		c.loader = fn
		return nil
	}
}

// WithLogger sets the logger used when the context carries none
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
