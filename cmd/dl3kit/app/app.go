// Package app provides the application context and dependency management
// for the dl3kit CLI. It centralizes configuration, logging and the lazily
// created kit and observation index shared by all commands.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gammasky/dl3kit"
	"github.com/gammasky/dl3kit/internal/index"
	"github.com/gammasky/dl3kit/pkg/errors"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// App represents the dl3kit application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Lazily initialized singletons
	mu    sync.RWMutex
	kit   dl3kit.Kit
	index *index.Store
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config file and can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Parallel returns the configured batch execution settings.
func (a *App) Parallel() parallel.Config {
	return a.config.Parallel
}

// Kit returns the kit instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Kit() (dl3kit.Kit, error) {
	a.mu.RLock()
	if a.kit != nil {
		k := a.kit
		a.mu.RUnlock()
		return k, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.kit != nil {
		return a.kit, nil
	}

	k, err := dl3kit.New(a.kitOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "kit", "", err)
	}

	a.kit = k
	return k, nil
}

// KitWithOptions returns a new kit built from the app configuration with
// opts applied on top. Commands whose flags override the configured
// batch settings use it.
func (a *App) KitWithOptions(opts ...dl3kit.Option) (dl3kit.Kit, error) {
	k, err := dl3kit.New(append(a.kitOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "kit", "with custom options", err)
	}
	return k, nil
}

// Index returns the observation index, opening it lazily.
func (a *App) Index() (*index.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.index != nil {
		return a.index, nil
	}

	store, err := index.Open(a.config.IndexPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", store.Path()).Msg("Opened observation index")

	a.index = store
	return store, nil
}

// Shutdown performs graceful shutdown of the application.
// It closes the observation index if one was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	store := a.index
	a.index = nil
	a.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close observation index during shutdown")
		return err
	}
	return nil
}

// kitOptions constructs kit options from the app configuration.
func (a *App) kitOptions() []dl3kit.Option {
	return []dl3kit.Option{
		dl3kit.WithParallel(a.config.Parallel),
		dl3kit.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithKit sets a custom kit instance (useful for testing).
func WithKit(k dl3kit.Kit) Option {
	return func(a *App) error {
		a.kit = k
		return nil
	}
}
