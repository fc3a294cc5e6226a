package globals

import (
	"github.com/spf13/pflag"

	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Flag names for batch execution.
const (
	FlagProcesses = "processes"
	FlagMethod    = "method"
	FlagBackend   = "backend"
)

// ParallelFlags holds the batch execution overrides of one command.
type ParallelFlags struct {
	Processes int
	Method    string
	Backend   string

	fs *pflag.FlagSet
}

// AddParallelFlags registers --processes, --method and --backend on fs.
// The defaults shown in help come from cfg.
func AddParallelFlags(fs *pflag.FlagSet, cfg parallel.Config) *ParallelFlags {
	flags := &ParallelFlags{fs: fs}

	fs.IntVarP(&flags.Processes, FlagProcesses, "j", cfg.Processes,
		"Number of concurrent workers (1 runs sequentially)")
	fs.StringVar(&flags.Method, FlagMethod, string(cfg.Method),
		"Pool method: starmap, apply_async")
	fs.StringVar(&flags.Backend, FlagBackend, string(cfg.Backend),
		"Pool backend: errgroup, conc, multiprocessing")

	return flags
}

// Apply overlays the flags the user actually set onto base.
func (f *ParallelFlags) Apply(base parallel.Config) parallel.Config {
	cfg := base
	if f.changed(FlagProcesses) {
		cfg.Processes = f.Processes
	}
	if f.changed(FlagMethod) {
		cfg.Method = parallel.Method(f.Method)
	}
	if f.changed(FlagBackend) {
		cfg.Backend = parallel.Backend(f.Backend)
	}
	return cfg
}

func (f *ParallelFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}
