package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
)

// isolate points HOME at an empty dir so no real config file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.DashboardDir != constants.DefaultDashboardDir {
		t.Errorf("DashboardDir = %q, want %q", config.DashboardDir, constants.DefaultDashboardDir)
	}
	if config.TradesFile != "trades.json" {
		t.Errorf("TradesFile = %q, want trades.json", config.TradesFile)
	}
	if config.GitBranch != "master" {
		t.Errorf("GitBranch = %q, want master", config.GitBranch)
	}
	if config.Capital != 19019.69 {
		t.Errorf("Capital = %v, want 19019.69", config.Capital)
	}
	if config.ExpectedSites != 2 {
		t.Errorf("ExpectedSites = %d, want 2", config.ExpectedSites)
	}
	if config.UpdateInterval != 2*time.Hour {
		t.Errorf("UpdateInterval = %v, want 2h", config.UpdateInterval)
	}
	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", config.LogFormat)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("TRADES_FILE", "/srv/bot/trades.json")
	t.Setenv("GIT_BRANCH", "gh-pages")
	t.Setenv("NO_PUSH", "true")
	t.Setenv("EXPECTED_SITES", "3")
	t.Setenv("UPDATE_INTERVAL", "30m")
	t.Setenv("FORMAT", "json")

	config, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.TradesFile != "/srv/bot/trades.json" {
		t.Errorf("TradesFile = %q", config.TradesFile)
	}
	if config.GitBranch != "gh-pages" {
		t.Errorf("GitBranch = %q, want gh-pages", config.GitBranch)
	}
	if !config.NoPush {
		t.Error("NO_PUSH environment variable not loaded")
	}
	if config.ExpectedSites != 3 {
		t.Errorf("ExpectedSites = %d, want 3", config.ExpectedSites)
	}
	if config.UpdateInterval != 30*time.Minute {
		t.Errorf("UpdateInterval = %v, want 30m", config.UpdateInterval)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
}

// TestConfig_File verifies reading an explicit YAML config file.
func TestConfig_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "commandcenter.yaml")
	content := "dashboard_dir: /srv/mujaffa-dashboard\nhealth_file: /srv/monitor/health.json\nstarting_capital: 5000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.DashboardDir != "/srv/mujaffa-dashboard" {
		t.Errorf("DashboardDir = %q", config.DashboardDir)
	}
	if config.HealthFile != "/srv/monitor/health.json" {
		t.Errorf("HealthFile = %q", config.HealthFile)
	}
	if config.StartingCapital != 5000 {
		t.Errorf("StartingCapital = %v, want 5000", config.StartingCapital)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestConfig_MissingExplicitFile verifies that a named config file must exist.
func TestConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	var configErr *errors.ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("error = %T, want *errors.ConfigError", err)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Format != "yaml" {
		t.Errorf("empty --format overwrote configured format: %q", config.Format)
	}

	config.UpdateFromFlags(false, false, false, "json", "trace")
	if config.Format != "json" || config.LogLevel != "trace" {
		t.Errorf("Format = %q, LogLevel = %q", config.Format, config.LogLevel)
	}
	if !config.Verbose {
		t.Error("unset flag cleared a configured value")
	}
}
