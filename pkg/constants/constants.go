// Package constants provides shared constants used throughout the commandcenter codebase.
// This includes file permissions, default paths, fallback dashboard figures and the
// fixed formats the dashboard and the publisher rely on.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultDashboardDir is the git working tree that holds the published dashboard
	DefaultDashboardDir = "."

	// DefaultHTMLFile is the dashboard document, relative to the dashboard dir
	DefaultHTMLFile = "index.html"

	// DefaultTradesFile is the trading bot's append-only trade log
	DefaultTradesFile = "trades.json"

	// DefaultHealthFile is the landing page monitor's probe history
	DefaultHealthFile = "landing_page_health.json"

	// ConfigFileName is the config file name searched in $HOME and the working dir
	ConfigFileName = ".commandcenter"
)

// Publishing constants
const (
	// DefaultRemote is the git remote the dashboard is pushed to
	DefaultRemote = "origin"

	// DefaultBranch is the branch served by the static host
	DefaultBranch = "master"

	// DefaultDashboardURL is where the published dashboard is served
	DefaultDashboardURL = "https://yazouriart-coder.github.io/mujaffa-dashboard/"

	// CommitMessagePrefix prefixes every generated commit message
	CommitMessagePrefix = "Auto-update: "
)

// Trading constants
const (
	// DefaultCapital is the fixed capital baseline shown on the dashboard
	DefaultCapital = 19019.69

	// DefaultStartingCapital is the paper trading seed the return is measured against
	DefaultStartingCapital = 10000.0

	// RecentTradesLimit is the number of trades listed on the dashboard
	RecentTradesLimit = 10
)

// Fallback snapshot shown when the trade log is missing or unreadable
const (
	FallbackTotalTrades = 31
	FallbackWins        = 22
	FallbackLosses      = 9
	FallbackTotalPnL    = 5019.69
	FallbackWinRate     = 71.0
)

// Uptime constants
const (
	// DefaultExpectedSites is the number of monitored landing pages
	DefaultExpectedSites = 2

	// StatusUp is the probe status of a healthy site
	StatusUp = "up"
)

// Timing constants
const (
	// DefaultUpdateInterval is the schedule the dashboard is regenerated on
	DefaultUpdateInterval = 2 * time.Hour

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Format constants
const (
	// TimeFormatStamp is the "last update" stamp shown on the dashboard
	TimeFormatStamp = "02/01 15:04"

	// TimeFormatCommit is the timestamp used in commit messages
	TimeFormatCommit = "2006-01-02 15:04"

	// TimeFormatBanner is the timestamp printed when a run starts
	TimeFormatBanner = "2006-01-02 15:04:05"
)
