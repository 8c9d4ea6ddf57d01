// Package appcontext provides the shared application context interface
// used by all commands, so commands depend on an interface rather than
// on the concrete App and can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/mujaffa/commandcenter"
)

// Interface defines the application context that commands need.
// The App struct from cmd/commandcenter/app implements it.
type Interface interface {
	// Updater creates an updater from the loaded configuration. Extra
	// options are applied after the configured ones and win over them.
	Updater(opts ...commandcenter.Option) (commandcenter.Updater, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// DashboardURL is where the published dashboard is served.
	DashboardURL() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
