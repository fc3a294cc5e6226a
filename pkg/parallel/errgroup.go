package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ErrgroupPool runs jobs on at most Size goroutines using errgroup.
type ErrgroupPool struct {
	Size   int
	Method Method
}

// Run implements Runner.
func (p *ErrgroupPool) Run(ctx context.Context, n int, job Job) error {
	if p.Method == MethodApplyAsync {
		g := &errgroup.Group{}
		g.SetLimit(p.Size)
		return applyAsync(ctx, groupExecutor{g}, func() { _ = g.Wait() }, n, job)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Size)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return job(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	return nil
}

// Processes implements Runner.
func (p *ErrgroupPool) Processes() int { return p.Size }

type groupExecutor struct {
	g *errgroup.Group
}

func (e groupExecutor) Go(f func()) {
	e.g.Go(func() error {
		f()
		return nil
	})
}
