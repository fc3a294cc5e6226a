// Package constants provides shared constants used throughout dl3kit.
// This includes file permissions, execution defaults, FITS keyword limits
// and path defaults that should be consistent across the library and CLI.
package constants

import "time"

// Product identity
const (
	// AppName is the name used for the creator field of generated metadata
	AppName = "dl3kit"

	// EnvPrefix is the prefix for environment variables read by the CLI
	EnvPrefix = "DL3KIT"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Execution defaults
const (
	// DefaultProcesses is the default worker pool size; 1 means sequential
	DefaultProcesses = 1

	// DefaultBackend is the default parallel backend
	DefaultBackend = "errgroup"

	// DefaultMethod is the default pool submission method
	DefaultMethod = "starmap"

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// FITS constants
const (
	// MaxKeywordLength is the maximum length of a FITS header keyword
	MaxKeywordLength = 8

	// BlockSize is the size in bytes of a FITS logical record
	BlockSize = 2880

	// CardSize is the size in bytes of a FITS header card
	CardSize = 80
)

// Path constants
const (
	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".dl3kit"

	// DefaultIndexPath is the default location of the observation index database
	DefaultIndexPath = "~/.dl3kit/index.db"
)

// Format constants
const (
	// TimeFormatFITS is the ISO 8601 layout used for FITS DATE-like keywords
	TimeFormatFITS = "2006-01-02T15:04:05"

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
