// Package status implements the status command: show the figures a pass
// would write next to what the dashboard currently displays.
package status

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mujaffa/commandcenter"
	"github.com/mujaffa/commandcenter/internal/appcontext"
	"github.com/mujaffa/commandcenter/internal/cmd/output"
	"github.com/mujaffa/commandcenter/internal/cmd/table"
)

// NewCommand creates the status command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var html, trades, health, dir string

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: "core",
		Short:   "Show dashboard figures without writing anything",
		Args:    cobra.NoArgs,
		Long: `Status loads the trade log and the probe history, reads the dashboard
document and shows which anchors the next update would rewrite.

Anchors marked stale no longer match the text they were authored with;
the next update leaves those values unchanged.`,
		Example: `  commandcenter status
  commandcenter status -o json
  commandcenter status -o wide              # Include recent trades`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []commandcenter.Option
			if dir != "" {
				opts = append(opts, commandcenter.WithDashboardDir(dir))
			}
			if html != "" {
				opts = append(opts, commandcenter.WithHTMLPath(html))
			}
			if trades != "" {
				opts = append(opts, commandcenter.WithTradesPath(trades))
			}
			if health != "" {
				opts = append(opts, commandcenter.WithHealthPath(health))
			}

			u, err := app.Updater(opts...)
			if err != nil {
				return err
			}

			status, err := u.Inspect(cmd.Context())
			if err != nil {
				return err
			}

			return printStatus(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), status)
		},
	}

	cmd.Flags().StringVar(&html, "html", "", "dashboard document (default index.html in --dir)")
	cmd.Flags().StringVar(&trades, "trades", "", "trade log (JSON array)")
	cmd.Flags().StringVar(&health, "health", "", "probe history (JSON array)")
	cmd.Flags().StringVar(&dir, "dir", "", "dashboard git working tree")

	return cmd
}

func printStatus(w io.Writer, format output.Format, s *commandcenter.Status) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, s)
	}

	sections := []struct {
		title string
		data  table.Data
	}{
		{"Figures", table.SummaryToTableData(s.Trading, s.ReturnPct, s.Sites)},
		{"Websites", table.ProbesToTableData(s.Probes)},
		{"Dashboard " + s.Path, table.AnchorsToTableData(s.Anchors, s.Reading, s.Pending)},
	}
	if format == output.FormatWide {
		sections = append(sections, struct {
			title string
			data  table.Data
		}{"Recent Trades", table.TradesToTableData(s.Trading.Recent)})
	}

	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, section.title)
		if err := output.Write(w, format, section.data, nil); err != nil {
			return err
		}
	}
	return nil
}
