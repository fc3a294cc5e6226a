package parallel

import (
	"fmt"

	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/errors"
)

// Backend selects the worker pool implementation.
type Backend string

// Supported backends.
const (
	BackendErrgroup Backend = "errgroup"
	BackendConc     Backend = "conc"
	// BackendMultiprocessing is accepted as an alias of BackendErrgroup.
	BackendMultiprocessing Backend = "multiprocessing"
)

// Method selects how work is handed to the pool.
type Method string

// Supported methods.
const (
	// MethodStarmap maps the task over all inputs and blocks until done.
	MethodStarmap Method = "starmap"
	// MethodApplyAsync submits each input separately and waits on the returned futures.
	MethodApplyAsync Method = "apply_async"
)

// Config controls how Run executes a batch.
type Config struct {
	Backend   Backend `mapstructure:"backend" yaml:"backend"`
	Method    Method  `mapstructure:"method" yaml:"method"`
	Processes int     `mapstructure:"processes" yaml:"processes"`
}

// DefaultConfig runs sequentially on the default backend.
func DefaultConfig() Config {
	return Config{
		Backend:   Backend(constants.DefaultBackend),
		Method:    Method(constants.DefaultMethod),
		Processes: constants.DefaultProcesses,
	}
}

// withDefaults fills unset fields and resolves backend aliases.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Backend == "" || c.Backend == BackendMultiprocessing {
		c.Backend = d.Backend
	}
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.Processes == 0 {
		c.Processes = d.Processes
	}
	return c
}

// Validate reports unsupported backends, methods and pool sizes.
// Unset fields are valid and take their defaults.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch c.Backend {
	case BackendErrgroup, BackendConc:
	default:
		return errors.NewConfigError("parallel", fmt.Sprintf("invalid backend %q", c.Backend), nil)
	}
	switch c.Method {
	case MethodStarmap, MethodApplyAsync:
	default:
		return errors.NewConfigError("parallel", fmt.Sprintf("invalid method %q", c.Method), nil)
	}
	if c.Processes < 1 {
		return errors.NewConfigError("parallel", fmt.Sprintf("processes must be at least 1, got %d", c.Processes), nil)
	}
	return nil
}
