package appcontext

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gammasky/dl3kit"
	"github.com/gammasky/dl3kit/internal/index"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Mock provides a mock implementation of Interface for testing.
// Function fields override the defaults; nil fields fall back to a
// real kit, an index at IndexPath (in memory when empty) and a no-op logger.
type Mock struct {
	KitFunc    func(...dl3kit.Option) (dl3kit.Kit, error)
	LoggerFunc func() *zerolog.Logger

	IndexPath      string
	ParallelConfig parallel.Config
	Format         string

	once  sync.Once
	store *index.Store
	err   error
}

// Kit returns a kit using the mock function or dl3kit.New.
func (m *Mock) Kit() (dl3kit.Kit, error) {
	return m.KitWithOptions()
}

// KitWithOptions returns a kit using the mock function or dl3kit.New.
func (m *Mock) KitWithOptions(opts ...dl3kit.Option) (dl3kit.Kit, error) {
	if m.KitFunc != nil {
		return m.KitFunc(opts...)
	}
	return dl3kit.New(append([]dl3kit.Option{dl3kit.WithParallel(m.Parallel())}, opts...)...)
}

// Index opens the index once and returns the same store afterwards.
func (m *Mock) Index() (*index.Store, error) {
	m.once.Do(func() {
		path := m.IndexPath
		if path == "" {
			path = ":memory:"
		}
		m.store, m.err = index.Open(path)
	})
	return m.store, m.err
}

// Parallel returns ParallelConfig or the default config.
func (m *Mock) Parallel() parallel.Config {
	if m.ParallelConfig == (parallel.Config{}) {
		return parallel.DefaultConfig()
	}
	return m.ParallelConfig
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format or "table".
func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "table"
	}
	return m.Format
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
