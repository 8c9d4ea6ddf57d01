// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
const (
	// Success represents successful completion of an operation.
	// Used for: published dashboard, healthy sites, matching anchors.
	Success = "✓"

	// Error represents failures.
	// Used for: failed runs, sites that are down.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: failed publish, stale anchors, fallback data.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Refresh marks the start of an update pass.
	Refresh = "🔄"

	// Link marks the public dashboard URL.
	Link = "🌐"

	// Win and Loss mark closed trades, the same glyphs the dashboard uses.
	Win  = "🟢"
	Loss = "🔴"
)
