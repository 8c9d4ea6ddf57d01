// Package uptime reads the landing page monitor's probe history and
// summarizes the latest check as an up/total ratio.
package uptime

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
)

// Probe is a single website health check result.
type Probe struct {
	Name     string  `json:"name" yaml:"name"`
	Status   string  `json:"status" yaml:"status"`
	LoadTime float64 `json:"load_time" yaml:"load_time"`
	URL      string  `json:"url" yaml:"url"`
}

// IsUp reports whether the site answered healthy.
func (p Probe) IsUp() bool {
	return p.Status == constants.StatusUp
}

// Check is one entry of the probe history: every site probed in one monitor run.
type Check struct {
	Timestamp string  `json:"timestamp,omitempty"`
	Results   []Probe `json:"results"`
}

// Summary is the up/total ratio shown on the dashboard.
type Summary struct {
	Up    int `json:"up" yaml:"up"`
	Total int `json:"total" yaml:"total"`
}

// DefaultProbes is the probe list shown when the history cannot be read.
func DefaultProbes() []Probe {
	return []Probe{
		{Name: "MLflyt", Status: constants.StatusUp, LoadTime: 0.42, URL: "https://mlflyt.dk"},
		{Name: "AK Affaldsservice", Status: constants.StatusUp, LoadTime: 0.19, URL: "https://akaffaldsservice.dk"},
	}
}

// Read decodes the probe history at path, a JSON array of checks.
func Read(path string) ([]Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("probe history", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var history []Check
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return history, nil
}

// Latest returns the results of the most recent check. It reports false for an empty history.
// A check without results yields an empty, non-nil slice.
func Latest(history []Check) ([]Probe, bool) {
	if len(history) == 0 {
		return nil, false
	}
	latest := history[len(history)-1].Results
	if latest == nil {
		latest = []Probe{}
	}
	return latest, true
}

// Load returns the latest probe results. It never fails: a missing, corrupt
// or empty history is logged and DefaultProbes is returned instead.
func Load(ctx context.Context, path string) []Probe {
	ctx = logging.WithPath(logging.WithOperation(ctx, "load_probes"), path)
	logger := logging.FromContext(ctx)

	history, err := Read(path)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Debug().Msg("Probe history not found, using default probes")
		} else {
			logger.Warn().Err(err).Msg("Error loading website data, using default probes")
		}
		return DefaultProbes()
	}

	probes, ok := Latest(history)
	if !ok {
		logger.Debug().Msg("Probe history is empty, using default probes")
		return DefaultProbes()
	}

	logger.Debug().Int("checks", len(history)).Int("probes", len(probes)).Msg("Loaded website data")
	return probes
}

// Summarize counts the sites that are up. Total is the expected site count
// when positive, otherwise the number of probes.
func Summarize(probes []Probe, expected int) Summary {
	s := Summary{Total: expected}
	if expected <= 0 {
		s.Total = len(probes)
	}
	for _, p := range probes {
		if p.IsUp() {
			s.Up++
		}
	}
	return s
}
