// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mujaffa/commandcenter/internal/appcontext"
	"github.com/mujaffa/commandcenter/internal/cmd/output"
	"github.com/mujaffa/commandcenter/internal/cmd/table"
)

// Info is the build information printed by the version command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Built     string `json:"built" yaml:"built"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// TableData implements output.Tabular.
func (i Info) TableData() table.Data {
	return table.PropertiesToTableData(
		table.Property{Key: "version", Value: i.Version},
		table.Property{Key: "commit", Value: i.Commit},
		table.Property{Key: "built", Value: i.Built},
		table.Property{Key: "built_by", Value: i.BuiltBy},
		table.Property{Key: "go_version", Value: i.GoVersion},
		table.Property{Key: "platform", Value: i.Platform},
	)
}

// NewCommand creates the version command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the commandcenter CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Built:     app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			w := cmd.OutOrStdout()
			if format := app.OutputFormat(); format != "" {
				return output.NewFormatter(output.Format(format)).Format(w, info)
			}

			fmt.Fprintf(w, "commandcenter version %s\n", info.Version)
			fmt.Fprintf(w, "commit: %s\n", info.Commit)
			fmt.Fprintf(w, "built: %s\n", info.Built)
			fmt.Fprintf(w, "built by: %s\n", info.BuiltBy)
			fmt.Fprintf(w, "go version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "platform: %s\n", info.Platform)
			return nil
		},
	}
}
