// Package commandcenter regenerates the Command Center dashboard: it reads the
// trading bot's trade log and the landing page monitor's probe history, writes
// the figures into the dashboard document and publishes the result with git.
//
// A run is one linear pass. Data sources that cannot be read fall back to
// built-in figures, anchors that no longer match are skipped, and a failed
// publish is logged and reported in the Result. Only an unreadable or
// unwritable dashboard document fails a run.
//
// Example usage:
//
//	u, err := commandcenter.New(
//	    commandcenter.WithDashboardDir("/srv/mujaffa-dashboard"),
//	    commandcenter.WithTradesPath("/srv/bot/trades.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := u.Update(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Sites.Up, "/", result.Sites.Total)
//
//	// Or regenerate every two hours until ctx is cancelled
//	err = u.Watch(ctx)
package commandcenter

import (
	"context"

	"github.com/mujaffa/commandcenter/internal/publish"
	"github.com/mujaffa/commandcenter/pkg/logging"
	"github.com/mujaffa/commandcenter/pkg/patcher"
)

// Compile-time interface check to ensure proper implementation.
var _ Updater = (*client)(nil)

// Updater regenerates and publishes the dashboard.
type Updater interface {
	// Update runs one pass: load, patch, write, publish.
	Update(ctx context.Context) (*Result, error)

	// Watch runs Update now and on every interval until ctx is cancelled.
	Watch(ctx context.Context) error

	// Inspect reports what the dashboard shows and what a pass would change,
	// without writing anything.
	Inspect(ctx context.Context) (*Status, error)
}

// Publisher pushes the dashboard's working tree to where it is served.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// client is the internal implementation of the Updater interface.
type client struct {
	options   *options
	patcher   *patcher.Patcher
	publisher Publisher
	hooks     *hooks
}

// New creates an Updater with the given options.
func New(opts ...Option) (Updater, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options:   o,
		patcher:   patcher.New(o.rules...),
		publisher: o.publisher,
		hooks:     newHooks(o.onUpdate...),
	}

	if c.publisher == nil {
		c.publisher = &publish.Git{
			Dir:    o.dashboardDir,
			Remote: o.remote,
			Branch: o.branch,
			Runner: publish.ExecRunner{},
		}
	}

	logging.Debug().
		Str("html", o.htmlPath()).
		Str("trades", o.tradesPath).
		Str("health", o.healthPath).
		Bool("publish", !o.publishDisabled).
		Msg("Updater configured")

	return c, nil
}
