package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gammasky/dl3kit/internal/config"
	"github.com/gammasky/dl3kit/pkg/constants"
	"github.com/gammasky/dl3kit/pkg/parallel"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Batch execution and index
	Parallel  parallel.Config
	IndexPath string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. DL3KIT_* environment variables
//  3. .env files
//  4. Config file (~/.dl3kit.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.New(), "")
}

// LoadConfigFrom loads configuration into v, reading configFile when given.
func LoadConfigFrom(v *viper.Viper, configFile string) (*Config, error) {
	// .env files first so viper sees their variables
	loadEnvFiles()

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(config.EnvReplacer())
	v.AutomaticEnv()
	config.SetDefaults(v)
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
		// a missing default config file is fine
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Parallel:  config.Parallel(v),
		IndexPath: config.IndexPath(v),

		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		LogOutput: v.GetString("log.output"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded last and does not override already set variables.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
