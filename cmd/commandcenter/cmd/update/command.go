// Package update implements the update command: regenerate the dashboard
// once, or on a schedule with --every.
package update

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mujaffa/commandcenter"
	"github.com/mujaffa/commandcenter/internal/appcontext"
	"github.com/mujaffa/commandcenter/internal/cmd/output"
)

// Flags holds the update command's flags.
type Flags struct {
	NoPush bool
	Every  time.Duration
	HTML   string
	Trades string
	Health string
	Dir    string
}

// NewCommand creates the update command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Regenerate and publish the dashboard",
		Args:    cobra.NoArgs,
		Long: `Update reads the trade log and the probe history, writes the current
figures into the dashboard document and publishes it:

• Trading return, capital and win rate
• Websites up out of the monitored total
• The last update stamp
• The most recent closed trades

Data files that are missing or unreadable fall back to built-in figures.
A failed push is reported but does not fail the command.`,
		Example: `  commandcenter update                      # Update and push once
  commandcenter update --no-push            # Write the dashboard only
  commandcenter update --every 2h           # Keep updating every two hours
  commandcenter update --dir /srv/dashboard --trades /srv/bot/trades.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// The summary is the default even when piped, so scheduler logs stay readable.
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), format, app.DashboardURL())

			opts := flags.options(cmd)
			if flags.Every > 0 {
				opts = append(opts,
					commandcenter.WithInterval(flags.Every),
					commandcenter.WithOnUpdate(p.result),
				)
			}

			u, err := app.Updater(opts...)
			if err != nil {
				return err
			}

			if flags.Every > 0 {
				app.Logger().Debug().Dur("every", flags.Every).Msg("Starting scheduled updates")
				return u.Watch(ctx)
			}

			result, err := u.Update(ctx)
			if err != nil {
				return err
			}
			p.result(result)
			return p.err
		},
	}

	cmd.Flags().BoolVar(&flags.NoPush, "no-push", false, "write the dashboard but skip git add/commit/push")
	cmd.Flags().DurationVar(&flags.Every, "every", 0, "keep running and update on this interval (e.g. 2h)")
	cmd.Flags().StringVar(&flags.HTML, "html", "", "dashboard document (default index.html in --dir)")
	cmd.Flags().StringVar(&flags.Trades, "trades", "", "trade log (JSON array)")
	cmd.Flags().StringVar(&flags.Health, "health", "", "probe history (JSON array)")
	cmd.Flags().StringVar(&flags.Dir, "dir", "", "dashboard git working tree")

	return cmd
}

// options converts the flags that were set into updater options.
func (f *Flags) options(cmd *cobra.Command) []commandcenter.Option {
	var opts []commandcenter.Option
	if cmd.Flags().Changed("no-push") {
		opts = append(opts, commandcenter.WithPublishDisabled(f.NoPush))
	}
	if f.Dir != "" {
		opts = append(opts, commandcenter.WithDashboardDir(f.Dir))
	}
	if f.HTML != "" {
		opts = append(opts, commandcenter.WithHTMLPath(f.HTML))
	}
	if f.Trades != "" {
		opts = append(opts, commandcenter.WithTradesPath(f.Trades))
	}
	if f.Health != "" {
		opts = append(opts, commandcenter.WithHealthPath(f.Health))
	}
	return opts
}
