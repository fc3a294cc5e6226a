package parallel

import (
	"context"

	"github.com/gammasky/dl3kit/pkg/errors"
)

// Job runs the i-th unit of a batch.
type Job func(ctx context.Context, i int) error

// Runner executes n jobs and returns the first error.
// Every started job has finished when Run returns.
type Runner interface {
	Run(ctx context.Context, n int, job Job) error
	// Processes is the number of jobs that may run at once.
	Processes() int
}

// NewRunner returns the runner selected by cfg: sequential for a single
// process, otherwise a pool of the configured backend and method.
func NewRunner(cfg Config) (Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	if cfg.Processes == 1 {
		return Sequential{}, nil
	}
	switch cfg.Backend {
	case BackendConc:
		return &ConcPool{Size: cfg.Processes, Method: cfg.Method}, nil
	default:
		return &ErrgroupPool{Size: cfg.Processes, Method: cfg.Method}, nil
	}
}

// Sequential runs jobs one after the other in input order.
type Sequential struct{}

// Run implements Runner.
func (Sequential) Run(ctx context.Context, n int, job Job) error {
	for i := range n {
		if err := ctx.Err(); err != nil {
			return canceled(err)
		}
		if err := job(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// Processes implements Runner.
func (Sequential) Processes() int { return 1 }

func canceled(err error) error {
	return errors.WrapResource("run", "batch", "", err)
}

// applyAsync submits every job to e as its own future, then waits on the
// futures in input order. wait must block until e is idle.
func applyAsync(ctx context.Context, e executor, wait func(), n int, job Job) error {
	futures := make([]*Future[struct{}], 0, n)
	for i := range n {
		if ctx.Err() != nil {
			break
		}
		futures = append(futures, submit(e, func() (struct{}, error) {
			return struct{}{}, job(ctx, i)
		}))
	}
	wait()

	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	return nil
}
