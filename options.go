package commandcenter

import (
	"path/filepath"
	"time"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/patcher"
)

// options holds the configuration of an Updater.
type options struct {
	dashboardDir string
	htmlFile     string // empty means index.html inside dashboardDir
	tradesPath   string
	healthPath   string

	remote          string
	branch          string
	publisher       Publisher
	publishDisabled bool

	capital         float64
	startingCapital float64
	expectedSites   int

	clock    func() time.Time
	interval time.Duration
	rules    []patcher.Rule
	onUpdate []UpdateHook
}

func defaults() *options {
	return &options{
		dashboardDir:    constants.DefaultDashboardDir,
		tradesPath:      constants.DefaultTradesFile,
		healthPath:      constants.DefaultHealthFile,
		remote:          constants.DefaultRemote,
		branch:          constants.DefaultBranch,
		capital:         constants.DefaultCapital,
		startingCapital: constants.DefaultStartingCapital,
		expectedSites:   constants.DefaultExpectedSites,
		clock:           time.Now,
		interval:        constants.DefaultUpdateInterval,
	}
}

// Option is a function that configures an Updater.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// htmlPath resolves the dashboard document path.
func (o *options) htmlPath() string {
	if o.htmlFile != "" {
		return o.htmlFile
	}
	return filepath.Join(o.dashboardDir, constants.DefaultHTMLFile)
}

// WithDashboardDir sets the git working tree holding the dashboard. Publishing
// runs there and the document defaults to index.html inside it.
func WithDashboardDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{Field: "dashboard_dir", Message: "cannot be empty"}
		}
		o.dashboardDir = dir
		return nil
	}
}

// WithHTMLPath sets the dashboard document explicitly.
func WithHTMLPath(path string) Option {
	return func(o *options) error {
		o.htmlFile = path
		return nil
	}
}

// WithTradesPath sets the trade log location.
func WithTradesPath(path string) Option {
	return func(o *options) error {
		o.tradesPath = path
		return nil
	}
}

// WithHealthPath sets the probe history location.
func WithHealthPath(path string) Option {
	return func(o *options) error {
		o.healthPath = path
		return nil
	}
}

// WithRemote sets the git remote pushed to.
func WithRemote(remote string) Option {
	return func(o *options) error {
		if remote == "" {
			return &errors.ValidationError{Field: "git_remote", Message: "cannot be empty"}
		}
		o.remote = remote
		return nil
	}
}

// WithBranch sets the branch pushed to.
func WithBranch(branch string) Option {
	return func(o *options) error {
		if branch == "" {
			return &errors.ValidationError{Field: "git_branch", Message: "cannot be empty"}
		}
		o.branch = branch
		return nil
	}
}

// WithPublisher replaces the git publisher.
func WithPublisher(p Publisher) Option {
	return func(o *options) error {
		if p == nil {
			return &errors.ValidationError{Field: "publisher", Message: "cannot be nil"}
		}
		o.publisher = p
		return nil
	}
}

// WithPublishDisabled skips publishing; the document is still written.
func WithPublishDisabled(disabled bool) Option {
	return func(o *options) error {
		o.publishDisabled = disabled
		return nil
	}
}

// WithCapital sets the capital figure shown on the dashboard.
func WithCapital(capital float64) Option {
	return func(o *options) error {
		o.capital = capital
		return nil
	}
}

// WithStartingCapital sets the seed capital the return is measured against.
func WithStartingCapital(capital float64) Option {
	return func(o *options) error {
		if capital <= 0 {
			return &errors.ValidationError{Field: "starting_capital", Value: capital, Message: "must be positive"}
		}
		o.startingCapital = capital
		return nil
	}
}

// WithExpectedSites sets the denominator of the websites ratio. Zero uses the
// number of probes in the latest check.
func WithExpectedSites(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{Field: "expected_sites", Value: n, Message: "must not be negative"}
		}
		o.expectedSites = n
		return nil
	}
}

// WithClock sets the time source used for the stamp and the commit message.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.clock = clock
		return nil
	}
}

// WithInterval sets how often Watch regenerates the dashboard.
func WithInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return &errors.ValidationError{Field: "update_interval", Value: interval, Message: "update interval must be positive"}
		}
		o.interval = interval
		return nil
	}
}

// WithRules replaces the dashboard anchors.
func WithRules(rules ...patcher.Rule) Option {
	return func(o *options) error {
		o.rules = rules
		return nil
	}
}

// WithOnUpdate registers a callback run after every successful pass.
func WithOnUpdate(fn UpdateHook) Option {
	return func(o *options) error {
		if fn != nil {
			o.onUpdate = append(o.onUpdate, fn)
		}
		return nil
	}
}
