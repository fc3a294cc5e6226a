// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/gammasky/dl3kit"
	"github.com/gammasky/dl3kit/internal/index"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Interface defines what commands need from the application.
// The App struct from cmd/dl3kit/app implements it; tests use Mock.
type Interface interface {
	// Kit returns the default kit, creating it lazily if needed.
	Kit() (dl3kit.Kit, error)

	// KitWithOptions creates a new kit with custom options, for commands
	// whose flags override the configured defaults.
	KitWithOptions(...dl3kit.Option) (dl3kit.Kit, error)

	// Index returns the observation index, opening it lazily.
	Index() (*index.Store, error)

	// Parallel returns the configured batch execution settings.
	Parallel() parallel.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
