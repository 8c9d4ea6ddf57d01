package commandcenter

import (
	"context"
	"os"
	"time"

	"github.com/mujaffa/commandcenter/internal/publish"
	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
	"github.com/mujaffa/commandcenter/pkg/patcher"
	"github.com/mujaffa/commandcenter/pkg/render"
	"github.com/mujaffa/commandcenter/pkg/trading"
	"github.com/mujaffa/commandcenter/pkg/uptime"
)

// Result describes one pass.
type Result struct {
	Time      time.Time        `json:"time" yaml:"time"`
	Stamp     string           `json:"stamp" yaml:"stamp"`
	Path      string           `json:"path" yaml:"path"`
	Trading   trading.Snapshot `json:"trading" yaml:"trading"`
	ReturnPct float64          `json:"return_pct" yaml:"return_pct"`
	Probes    []uptime.Probe   `json:"probes" yaml:"probes"`
	Sites     uptime.Summary   `json:"sites" yaml:"sites"`
	Report    patcher.Report   `json:"report" yaml:"report"`

	// Published is false when publishing was disabled or failed; PublishErr
	// holds the failure.
	Published  bool  `json:"published" yaml:"published"`
	PublishErr error `json:"-" yaml:"-"`
}

// Status is what the dashboard currently shows next to what a pass would write.
type Status struct {
	Path      string           `json:"path" yaml:"path"`
	Trading   trading.Snapshot `json:"trading" yaml:"trading"`
	ReturnPct float64          `json:"return_pct" yaml:"return_pct"`
	Probes    []uptime.Probe   `json:"probes" yaml:"probes"`
	Sites     uptime.Summary   `json:"sites" yaml:"sites"`
	Reading   *patcher.Reading `json:"reading" yaml:"reading"`

	// Anchors names the rules in application order.
	Anchors []string `json:"anchors" yaml:"anchors"`

	// Pending is the report a pass would produce against the current document.
	Pending patcher.Report `json:"pending" yaml:"pending"`
}

// NewValues assembles the figures written into the dashboard.
func NewValues(snapshot trading.Snapshot, sites uptime.Summary, startingCapital float64, stamp string) patcher.Values {
	list := render.Trades(snapshot.Recent)
	return patcher.Values{
		ReturnPct:       snapshot.ReturnPct(startingCapital),
		StartingCapital: startingCapital,
		Capital:         snapshot.Capital,
		WinRate:         snapshot.WinRate,
		Fallback:        snapshot.Fallback,
		SitesUp:         sites.Up,
		SitesTotal:      sites.Total,
		Stamp:           stamp,
		Trades:          list,
		Section:         render.Section(snapshot, list),
	}
}

// Update runs one pass: load both data sources, patch the dashboard, write it
// back and publish it.
func (c *client) Update(ctx context.Context) (*Result, error) {
	now := c.options.clock()
	stamp := now.Format(constants.TimeFormatStamp)
	ctx = logging.WithRun(ctx, stamp)
	logger := logging.FromContext(ctx)

	snapshot, probes, sites := c.load(ctx)

	path := c.options.htmlPath()
	doc, mode, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	values := NewValues(snapshot, sites, c.options.startingCapital, stamp)
	patched, report := c.patcher.Apply(doc, values)
	if len(report.Missed) > 0 {
		c.logMissed(logging.WithPath(ctx, path), doc, report)
	}

	if err := os.WriteFile(path, []byte(patched), mode); err != nil {
		return nil, errors.WrapIO("write", path, err)
	}

	logger.Info().
		Str("path", path).
		Float64("return_pct", values.ReturnPct).
		Int("sites_up", sites.Up).
		Int("sites_total", sites.Total).
		Int("trades_shown", len(snapshot.Recent)).
		Stringer("trades", report.Trades).
		Msg("Dashboard updated")

	result := &Result{
		Time:      now,
		Stamp:     stamp,
		Path:      path,
		Trading:   snapshot,
		ReturnPct: values.ReturnPct,
		Probes:    probes,
		Sites:     sites,
		Report:    report,
	}

	if !c.options.publishDisabled {
		c.publish(logging.WithOperation(ctx, "publish"), result)
	}

	c.hooks.trigger(result)
	return result, nil
}

// Inspect loads both data sources and reads the dashboard without writing.
func (c *client) Inspect(ctx context.Context) (*Status, error) {
	snapshot, probes, sites := c.load(ctx)

	path := c.options.htmlPath()
	doc, _, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	reading, err := c.patcher.Inspect(doc)
	if err != nil {
		return nil, err
	}

	values := NewValues(snapshot, sites, c.options.startingCapital, c.options.clock().Format(constants.TimeFormatStamp))
	_, pending := c.patcher.Apply(doc, values)

	anchors := make([]string, 0, len(c.patcher.Rules()))
	for _, rule := range c.patcher.Rules() {
		anchors = append(anchors, rule.Name)
	}

	return &Status{
		Path:      path,
		Trading:   snapshot,
		ReturnPct: values.ReturnPct,
		Probes:    probes,
		Sites:     sites,
		Reading:   reading,
		Anchors:   anchors,
		Pending:   pending,
	}, nil
}

// load reads both data sources, falling back to built-in figures.
func (c *client) load(ctx context.Context) (trading.Snapshot, []uptime.Probe, uptime.Summary) {
	snapshot := trading.Load(ctx, c.options.tradesPath)
	snapshot.Capital = c.options.capital

	probes := uptime.Load(ctx, c.options.healthPath)
	return snapshot, probes, uptime.Summarize(probes, c.options.expectedSites)
}

// publish commits and pushes the working tree. Failures are logged and kept
// on the result; the pass itself still succeeds.
func (c *client) publish(ctx context.Context, result *Result) {
	logger := logging.FromContext(ctx)

	if err := c.publisher.Publish(ctx, publish.CommitMessage(result.Time)); err != nil {
		logger.Warn().Err(err).Msg("Git push failed (possibly no changes)")
		result.PublishErr = err
		return
	}

	result.Published = true
	logger.Info().Msg("Pushed dashboard")
}

// logMissed logs each anchor that did not match along with what the
// dashboard currently shows at that spot.
func (c *client) logMissed(ctx context.Context, doc string, report patcher.Report) {
	logger := logging.FromContext(ctx)

	reading, err := c.patcher.Inspect(doc)
	if err != nil {
		logger.Debug().Err(err).Strs("rules", report.Missed).Msg("Anchors not found")
		return
	}
	for _, name := range report.Missed {
		logger.Debug().
			Str("rule", name).
			Str("current", reading.Values[name]).
			Msg("Anchor not found, value left unchanged")
	}
}

// readDocument reads the dashboard and returns it with its permission bits.
func readDocument(path string) (string, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, errors.WrapIO("stat", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, errors.WrapIO("read", path, err)
	}
	return string(data), info.Mode().Perm(), nil
}
