// Package app provides the application context and dependency management
// for the commandcenter CLI. It centralizes configuration, logging and the
// construction of the dashboard updater.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mujaffa/commandcenter"
	"github.com/mujaffa/commandcenter/internal/appcontext"
	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the commandcenter application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// extra options applied to every updater (used by tests)
	updaterOpts []commandcenter.Option
}

// New creates a new App instance with the given version information.
// Configuration is loaded from .env files, the environment and the config
// file, then customized with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	logging.SetDefault(logger)

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

// DashboardURL returns where the published dashboard is served.
func (a *App) DashboardURL() string {
	return a.config.DashboardURL
}

// Updater creates an updater from the configuration. Options passed here are
// applied last, so command flags override configured values.
func (a *App) Updater(opts ...commandcenter.Option) (commandcenter.Updater, error) {
	all := append(a.updaterOptions(), a.updaterOpts...)
	all = append(all, opts...)

	u, err := commandcenter.New(all...)
	if err != nil {
		return nil, errors.NewConfigError("updater", "invalid configuration", err)
	}
	return u, nil
}

// Shutdown performs graceful shutdown of the application. Updates run in the
// caller's goroutine and hold no background state, so there is nothing to stop.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// updaterOptions constructs updater options from the app configuration.
func (a *App) updaterOptions() []commandcenter.Option {
	c := a.config
	opts := []commandcenter.Option{
		commandcenter.WithTradesPath(c.TradesFile),
		commandcenter.WithHealthPath(c.HealthFile),
		commandcenter.WithCapital(c.Capital),
		commandcenter.WithStartingCapital(c.StartingCapital),
		commandcenter.WithExpectedSites(c.ExpectedSites),
		commandcenter.WithRemote(c.GitRemote),
		commandcenter.WithBranch(c.GitBranch),
		commandcenter.WithPublishDisabled(c.NoPush),
		commandcenter.WithInterval(c.UpdateInterval),
	}
	if c.DashboardDir != "" {
		opts = append(opts, commandcenter.WithDashboardDir(c.DashboardDir))
	}
	if c.DashboardHTML != "" {
		opts = append(opts, commandcenter.WithHTMLPath(c.DashboardHTML))
	}
	return opts
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
		logging.SetDefault(*logger)
		return nil
	}
}

// WithUpdaterOptions appends options to every updater the app creates
// (useful for testing).
func WithUpdaterOptions(opts ...commandcenter.Option) Option {
	return func(a *App) error {
		a.updaterOpts = append(a.updaterOpts, opts...)
		return nil
	}
}
