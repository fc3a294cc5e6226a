package parallel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/logging"
)

type pair struct{ a, b int }

func multiply(_ context.Context, p pair) (int, error) {
	return p.a * p.b, nil
}

func pairs(n int) []pair {
	out := make([]pair, n)
	for i := range out {
		out[i] = pair{i, i + 1}
	}
	return out
}

func allConfigs() []Config {
	var cfgs []Config
	for _, backend := range []Backend{BackendErrgroup, BackendMultiprocessing, BackendConc} {
		for _, method := range []Method{MethodStarmap, MethodApplyAsync} {
			for _, processes := range []int{1, 2, 4, 16} {
				cfgs = append(cfgs, Config{Backend: backend, Method: method, Processes: processes})
			}
		}
	}
	return cfgs
}

func TestRunSameResultsForAnyPoolSize(t *testing.T) {
	inputs := pairs(50)
	want, err := Run(context.Background(), DefaultConfig(), multiply, inputs)
	require.NoError(t, err)
	require.Len(t, want, 50)
	assert.Equal(t, 6, want[2])

	for _, cfg := range allConfigs() {
		t.Run(fmt.Sprintf("%s/%s/%d", cfg.Backend, cfg.Method, cfg.Processes), func(t *testing.T) {
			got, err := Run(context.Background(), cfg, multiply, inputs)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRunCallbackAppliedInEveryMode(t *testing.T) {
	double := func(v int) int { return 2 * v }
	for _, cfg := range allConfigs() {
		t.Run(fmt.Sprintf("%s/%s/%d", cfg.Backend, cfg.Method, cfg.Processes), func(t *testing.T) {
			got, err := Run(context.Background(), cfg, multiply, pairs(5), WithCallback(double))
			require.NoError(t, err)
			assert.Equal(t, []int{0, 4, 12, 24, 40}, got)
		})
	}
}

func TestRunCallbackTypeMismatch(t *testing.T) {
	var calls atomic.Int32
	task := func(_ context.Context, p pair) (int, error) {
		calls.Add(1)
		return 0, nil
	}
	_, err := Run(context.Background(), DefaultConfig(), task, pairs(3),
		WithCallback(func(s string) string { return s }))
	assert.True(t, errors.IsConfigError(err))
	assert.Zero(t, calls.Load())
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"ray backend", Config{Backend: "ray", Processes: 2}},
		{"unknown method", Config{Method: "imap", Processes: 2}},
		{"negative processes", Config{Processes: -1}},
		{"bad backend sequential", Config{Backend: "threads", Processes: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			task := func(_ context.Context, p pair) (int, error) {
				calls.Add(1)
				return 0, nil
			}
			_, err := Run(context.Background(), tt.cfg, task, pairs(3))
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err))
			assert.Zero(t, calls.Load(), "no work may start on a config error")
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	require.NoError(t, Config{}.Validate())
	r, err := NewRunner(Config{})
	require.NoError(t, err)
	assert.IsType(t, Sequential{}, r)
	assert.Equal(t, 1, r.Processes())

	r, err = NewRunner(Config{Backend: BackendMultiprocessing, Processes: 3})
	require.NoError(t, err)
	assert.IsType(t, &ErrgroupPool{}, r)
	assert.Equal(t, 3, r.Processes())

	r, err = NewRunner(Config{Backend: BackendConc, Processes: 3})
	require.NoError(t, err)
	assert.IsType(t, &ConcPool{}, r)
}

func TestRunTaskError(t *testing.T) {
	boom := errors.New("boom")
	task := func(_ context.Context, p pair) (int, error) {
		if p.a == 3 {
			return 0, boom
		}
		return p.a, nil
	}
	for _, cfg := range allConfigs() {
		t.Run(fmt.Sprintf("%s/%s/%d", cfg.Backend, cfg.Method, cfg.Processes), func(t *testing.T) {
			got, err := Run(context.Background(), cfg, task, pairs(10), WithTaskName("multiply"))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, boom)
			assert.ErrorIs(t, err, errors.ErrTaskFailed)

			var terr *errors.TaskError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, 3, terr.Index)
			assert.Equal(t, "multiply", terr.Task)
		})
	}
}

func TestRunPanicBecomesTaskError(t *testing.T) {
	task := func(_ context.Context, p pair) (int, error) {
		if p.a == 1 {
			panic("bad input")
		}
		return p.a, nil
	}
	_, err := Run(context.Background(), Config{Processes: 2}, task, pairs(4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: bad input")
}

func TestRunBoundedConcurrency(t *testing.T) {
	for _, backend := range []Backend{BackendErrgroup, BackendConc} {
		for _, method := range []Method{MethodStarmap, MethodApplyAsync} {
			t.Run(string(backend)+"/"+string(method), func(t *testing.T) {
				var running, peak atomic.Int32
				task := func(_ context.Context, p pair) (int, error) {
					n := running.Add(1)
					for {
						old := peak.Load()
						if n <= old || peak.CompareAndSwap(old, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					running.Add(-1)
					return p.a, nil
				}
				cfg := Config{Backend: backend, Method: method, Processes: 3}
				_, err := Run(context.Background(), cfg, task, pairs(12))
				require.NoError(t, err)
				assert.LessOrEqual(t, peak.Load(), int32(3))
				assert.Zero(t, running.Load(), "all workers finish before Run returns")
			})
		}
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, cfg := range allConfigs() {
		t.Run(fmt.Sprintf("%s/%s/%d", cfg.Backend, cfg.Method, cfg.Processes), func(t *testing.T) {
			_, err := Run(ctx, cfg, multiply, pairs(5))
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestRunProgressAndLogging(t *testing.T) {
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	var mu sync.Mutex
	var seen []int
	_, err := Run(ctx, Config{Processes: 2}, multiply, pairs(4),
		WithTaskName("products"),
		WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, done)
			assert.Equal(t, 4, total)
		}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, seen)
	logger.AssertContains(t, "Using 2 processes to compute products")
}

func TestRunEmptyInputs(t *testing.T) {
	got, err := Run(context.Background(), Config{Processes: 4}, multiply, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMap(t *testing.T) {
	got, err := Map(context.Background(), Config{Processes: 2, Backend: BackendConc},
		func(s string) (int, error) { return len(s), nil }, []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestFuture(t *testing.T) {
	f := newFuture[int]()
	assert.False(t, f.Ready())

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.Wait(ctx), context.DeadlineExceeded)

	f.resolve(7, nil)
	assert.True(t, f.Ready())
	require.NoError(t, f.Wait(context.Background()))
	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
