package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
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

	// Dashboard
	DashboardDir  string
	DashboardHTML string
	DashboardURL  string
	TradesFile    string
	HealthFile    string

	// Publishing
	GitRemote string
	GitBranch string
	NoPush    bool

	// Figures
	Capital         float64
	StartingCapital float64
	ExpectedSites   int

	// Scheduling
	UpdateInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.commandcenter.yaml or ./.commandcenter.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()
	return loadConfig(viper.New(), os.Getenv("COMMANDCENTER_CONFIG"))
}

// loadConfig builds a Config from v. A non-empty configFile is read instead
// of searching the standard locations.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		// Without an explicit file, not finding one is fine; a broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DashboardDir:  v.GetString("dashboard_dir"),
		DashboardHTML: v.GetString("dashboard_html"),
		DashboardURL:  v.GetString("dashboard_url"),
		TradesFile:    v.GetString("trades_file"),
		HealthFile:    v.GetString("health_file"),

		GitRemote: v.GetString("git_remote"),
		GitBranch: v.GetString("git_branch"),
		NoPush:    v.GetBool("no_push"),

		Capital:         v.GetFloat64("capital"),
		StartingCapital: v.GetFloat64("starting_capital"),
		ExpectedSites:   v.GetInt("expected_sites"),

		UpdateInterval: v.GetDuration("update_interval"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dashboard_dir", constants.DefaultDashboardDir)
	v.SetDefault("dashboard_url", constants.DefaultDashboardURL)
	v.SetDefault("trades_file", constants.DefaultTradesFile)
	v.SetDefault("health_file", constants.DefaultHealthFile)
	v.SetDefault("git_remote", constants.DefaultRemote)
	v.SetDefault("git_branch", constants.DefaultBranch)
	v.SetDefault("capital", constants.DefaultCapital)
	v.SetDefault("starting_capital", constants.DefaultStartingCapital)
	v.SetDefault("expected_sites", constants.DefaultExpectedSites)
	v.SetDefault("update_interval", constants.DefaultUpdateInterval)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
