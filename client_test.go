package commandcenter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mujaffa/commandcenter/internal/publish"
	pkgerrors "github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
	"github.com/mujaffa/commandcenter/pkg/patcher"
)

// fakePublisher records commit messages instead of running git.
type fakePublisher struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return f.err
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

var fixedTime = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

const tradesJSON = `[
  {"status": "CLOSED", "pnl": 120.5, "pnl_pct": 2.4, "symbol": "BTCUSDT", "direction": "LONG", "exit_time": "2026-10-15T10:00:00"},
  {"status": "CLOSED", "pnl": -40, "pnl_pct": -0.8, "symbol": "ETHUSDT", "direction": "SHORT", "exit_time": "2026-10-16T09:00:00"},
  {"status": "OPEN", "pnl": 0, "symbol": "SOLUSDT", "direction": "LONG"}
]`

const healthJSON = `[
  {"timestamp": "2026-10-16T08:00:00", "results": [{"name": "MLflyt", "status": "up"}, {"name": "AK", "status": "up"}]},
  {"timestamp": "2026-10-16T12:00:00", "results": [{"name": "MLflyt", "status": "up"}, {"name": "AK", "status": "down"}]}
]`

// workspace lays out a dashboard dir with the fixture document and both data files.
func workspace(t *testing.T) (dir string, html string) {
	t.Helper()
	dir = t.TempDir()

	doc, err := os.ReadFile("testdata/index.html")
	require.NoError(t, err)
	html = filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(html, doc, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trades.json"), []byte(tradesJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "health.json"), []byte(healthJSON), 0644))
	return dir, html
}

func newTestUpdater(t *testing.T, dir string, pub Publisher, opts ...Option) Updater {
	t.Helper()
	base := []Option{
		WithDashboardDir(dir),
		WithTradesPath(filepath.Join(dir, "trades.json")),
		WithHealthPath(filepath.Join(dir, "health.json")),
		WithPublisher(pub),
		WithClock(fixedClock),
	}
	u, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return u
}

func TestUpdate(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir, html := workspace(t)
	pub := &fakePublisher{}

	result, err := newTestUpdater(t, dir, pub).Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "16/10 14:30", result.Stamp)
	assert.Equal(t, html, result.Path)
	assert.Equal(t, 2, result.Trading.TotalTrades)
	assert.Equal(t, 50.0, result.Trading.WinRate)
	assert.InDelta(t, 90.2, result.ReturnPct, 0.001)
	assert.Equal(t, 1, result.Sites.Up)
	assert.Equal(t, 2, result.Sites.Total)
	assert.Equal(t, patcher.TradesInserted, result.Report.Trades)
	assert.Empty(t, result.Report.Missed)
	assert.True(t, result.Published)
	assert.NoError(t, result.PublishErr)
	assert.Equal(t, []string{"Auto-update: 2026-10-16 14:30"}, pub.messages)

	data, err := os.ReadFile(html)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, `<span id="last-update">16/10 14:30</span>`)
	assert.Contains(t, doc, `<div class="text-2xl font-bold">1/2</div>`)
	assert.Contains(t, doc, "50.0% win rate | Paper trading")
	assert.Contains(t, doc, "$10,000 → $19,019.69")
	assert.Contains(t, doc, "Total: 2 trades | 1 wins | 1 losses")
	// Most recent exit first.
	assert.Less(t, strings.Index(doc, "ETHUSDT"), strings.Index(doc, "BTCUSDT"))
	assert.NotContains(t, doc, "SOLUSDT")

	info, err := os.Stat(html)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestUpdateFallsBackWhenSourcesMissing(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir, html := workspace(t)

	u := newTestUpdater(t, dir, &fakePublisher{},
		WithTradesPath(filepath.Join(dir, "nope.json")),
		WithHealthPath(filepath.Join(dir, "nope-either.json")),
	)
	result, err := u.Update(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Trading.Fallback)
	assert.Equal(t, 31, result.Trading.TotalTrades)
	assert.Equal(t, 2, result.Sites.Up)
	assert.Equal(t, 2, result.Sites.Total)

	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(data), "71% win rate")
	assert.Contains(t, string(data), "Ingen trades endnu")
}

func TestUpdatePublishFailureIsNotAnError(t *testing.T) {
	logs := logging.CaptureLoggingForTest(t)
	dir, _ := workspace(t)
	pub := &fakePublisher{err: pkgerrors.NewProcessError("commit", "git commit -m x", "nothing to commit", errors.New("exit status 1"))}

	result, err := newTestUpdater(t, dir, pub).Update(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Published)
	require.Error(t, result.PublishErr)
	pe, ok := pkgerrors.AsProcessError(result.PublishErr)
	require.True(t, ok)
	assert.Equal(t, "commit", pe.Operation)
	logs.AssertContains(t, "Git push failed")
	logs.AssertContains(t, `"level":"warn"`)
}

func TestUpdatePublishDisabled(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir, _ := workspace(t)
	pub := &fakePublisher{}

	result, err := newTestUpdater(t, dir, pub, WithPublishDisabled(true)).Update(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Published)
	assert.NoError(t, result.PublishErr)
	assert.Zero(t, pub.count())
}

func TestUpdateMissingDocument(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()
	pub := &fakePublisher{}

	_, err := newTestUpdater(t, dir, pub).Update(context.Background())
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, filepath.Join(dir, "index.html"), ioErr.Path)
	assert.Zero(t, pub.count(), "nothing is published when the document is missing")
}

func TestUpdateSecondPassLogsMissedAnchors(t *testing.T) {
	dir, html := workspace(t)
	u := newTestUpdater(t, dir, &fakePublisher{})

	_, err := u.Update(context.Background())
	require.NoError(t, err)

	logs := logging.CaptureLoggingForTest(t)
	result, err := u.Update(context.Background())
	require.NoError(t, err)

	// The return figure is unchanged at +90.2%, so its literal anchor still
	// matches; every other literal was rewritten by the first pass.
	assert.Equal(t, []string{patcher.RuleCapital, patcher.RuleWinRate, patcher.RuleSites}, result.Report.Missed)
	assert.Equal(t, patcher.TradesReplaced, result.Report.Trades)
	logs.AssertContains(t, "Anchor not found, value left unchanged")
	logs.AssertContains(t, `"current":"1/2"`)

	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), `id="recent-trades"`))
}

func TestUpdateHooks(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir, _ := workspace(t)

	var seen []string
	u := newTestUpdater(t, dir, &fakePublisher{},
		WithOnUpdate(func(r *Result) { seen = append(seen, "first:"+r.Stamp) }),
		WithOnUpdate(func(*Result) { panic("boom") }),
		WithOnUpdate(func(r *Result) { seen = append(seen, "third:"+r.Stamp) }),
	)

	_, err := u.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first:16/10 14:30", "third:16/10 14:30"}, seen)
}

func TestInspect(t *testing.T) {
	logging.DisableLoggingForTest(t)
	dir, html := workspace(t)
	before, err := os.ReadFile(html)
	require.NoError(t, err)

	status, err := newTestUpdater(t, dir, &fakePublisher{}).Inspect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3/3", status.Reading.Values[patcher.RuleSites])
	assert.Equal(t, []string{"return", "capital", "win_rate", "sites", "last_update"}, status.Anchors)
	assert.Equal(t, 1, status.Sites.Up)
	assert.Empty(t, status.Pending.Missed)
	assert.Equal(t, patcher.TradesInserted, status.Pending.Trades)

	after, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Equal(t, before, after, "inspect must not write")
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		field string
	}{
		{"empty dir", WithDashboardDir(""), "dashboard_dir"},
		{"empty remote", WithRemote(""), "git_remote"},
		{"empty branch", WithBranch(""), "git_branch"},
		{"nil publisher", WithPublisher(nil), "publisher"},
		{"zero starting capital", WithStartingCapital(0), "starting_capital"},
		{"negative sites", WithExpectedSites(-1), "expected_sites"},
		{"nil clock", WithClock(nil), "clock"},
		{"zero interval", WithInterval(0), "update_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestHTMLPathResolution(t *testing.T) {
	o, err := defaults().apply(WithDashboardDir("/srv/dash"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/dash", "index.html"), o.htmlPath())

	o, err = defaults().apply(WithDashboardDir("/srv/dash"), WithHTMLPath("/tmp/other.html"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.html", o.htmlPath())
}

var _ Publisher = (*publish.Git)(nil)

func TestNewDefaultsToGitPublisher(t *testing.T) {
	dir := t.TempDir()

	u, err := New(WithDashboardDir(dir), WithRemote("upstream"), WithBranch("gh-pages"))
	require.NoError(t, err)

	git, ok := u.(*client).publisher.(*publish.Git)
	require.True(t, ok, "default publisher is git")
	assert.Equal(t, dir, git.Dir)
	assert.Equal(t, "upstream", git.Remote)
	assert.Equal(t, "gh-pages", git.Branch)
}
