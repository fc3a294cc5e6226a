// Package config reads dl3kit settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Viper keys.
const (
	KeyParallelBackend   = "parallel.backend"
	KeyParallelMethod    = "parallel.method"
	KeyParallelProcesses = "parallel.processes"
	KeyIndexPath         = "index.path"
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyParallelBackend, constants.DefaultBackend)
	v.SetDefault(KeyParallelMethod, constants.DefaultMethod)
	v.SetDefault(KeyParallelProcesses, constants.DefaultProcesses)
	v.SetDefault(KeyIndexPath, constants.DefaultIndexPath)
}

// GetString returns a viper string value, falling back to the raw
// environment variable when viper has none.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(envName(key))
}

// Parallel returns the batch execution settings.
func Parallel(v *viper.Viper) parallel.Config {
	return parallel.Config{
		Backend:   parallel.Backend(GetString(v, KeyParallelBackend)),
		Method:    parallel.Method(GetString(v, KeyParallelMethod)),
		Processes: v.GetInt(KeyParallelProcesses),
	}
}

// IndexPath returns the location of the observation index with ~ expanded.
func IndexPath(v *viper.Viper) string {
	path := GetString(v, KeyIndexPath)
	if path == "" {
		path = constants.DefaultIndexPath
	}
	return ExpandHome(path)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// EnvReplacer maps viper keys to environment variable suffixes.
func EnvReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}

// envName maps "parallel.processes" to DL3KIT_PARALLEL_PROCESSES.
func envName(key string) string {
	return constants.EnvPrefix + "_" + strings.ToUpper(EnvReplacer().Replace(key))
}
