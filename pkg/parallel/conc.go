package parallel

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// ConcPool runs jobs on at most Size goroutines using a conc pool.
type ConcPool struct {
	Size   int
	Method Method
}

// Run implements Runner.
func (p *ConcPool) Run(ctx context.Context, n int, job Job) error {
	if p.Method == MethodApplyAsync {
		wp := pool.New().WithMaxGoroutines(p.Size)
		return applyAsync(ctx, wp, wp.Wait, n, job)
	}

	cp := pool.New().
		WithMaxGoroutines(p.Size).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i := range n {
		if ctx.Err() != nil {
			break
		}
		cp.Go(func(ctx context.Context) error {
			return job(ctx, i)
		})
	}
	if err := cp.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	return nil
}

// Processes implements Runner.
func (p *ConcPool) Processes() int { return p.Size }
