package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/mujaffa/commandcenter"
	"github.com/mujaffa/commandcenter/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	UpdaterFunc      func(...commandcenter.Option) (commandcenter.Updater, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	DashboardURLFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Updater returns an updater using the mock function or a default updater.
func (m *Mock) Updater(opts ...commandcenter.Option) (commandcenter.Updater, error) {
	if m.UpdaterFunc != nil {
		return m.UpdaterFunc(opts...)
	}
	return commandcenter.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// DashboardURL returns the dashboard URL using the mock function or the default.
func (m *Mock) DashboardURL() string {
	if m.DashboardURLFunc != nil {
		return m.DashboardURLFunc()
	}
	return constants.DefaultDashboardURL
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
