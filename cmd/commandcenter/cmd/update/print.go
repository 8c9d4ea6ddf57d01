package update

import (
	"fmt"
	"io"
	"strings"

	"github.com/mujaffa/commandcenter"
	"github.com/mujaffa/commandcenter/internal/cmd/emoji"
	"github.com/mujaffa/commandcenter/internal/cmd/output"
	"github.com/mujaffa/commandcenter/internal/cmd/table"
	"github.com/mujaffa/commandcenter/pkg/constants"
)

var rule = strings.Repeat("-", 60)

// resultView adds the publish error, which has no serialized form on Result.
type resultView struct {
	commandcenter.Result `json:",inline" yaml:",inline"`
	PublishError         string `json:"publish_error,omitempty" yaml:"publish_error,omitempty"`
}

// printer writes one summary per pass. The first write error is kept in err.
type printer struct {
	w            io.Writer
	format       output.Format
	dashboardURL string
	err          error
}

func newPrinter(w io.Writer, format output.Format, dashboardURL string) *printer {
	return &printer{w: w, format: format, dashboardURL: dashboardURL}
}

// result prints the summary of a pass.
func (p *printer) result(r *commandcenter.Result) {
	if p.err != nil {
		return
	}
	switch p.format {
	case output.FormatJSON, output.FormatYAML:
		view := resultView{Result: *r}
		if r.PublishErr != nil {
			view.PublishError = r.PublishErr.Error()
		}
		p.err = output.NewFormatter(p.format).Format(p.w, view)
	default:
		p.err = p.summary(r)
	}
}

func (p *printer) summary(r *commandcenter.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Dashboard Auto-Update – %s\n", emoji.Refresh, r.Time.Format(constants.TimeFormatBanner))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%s Dashboard updated: %s\n", emoji.Success, r.Stamp)
	fmt.Fprintf(&b, "   Trading: %s | Websites: %d/%d up\n", table.FormatReturn(r.ReturnPct), r.Sites.Up, r.Sites.Total)
	fmt.Fprintf(&b, "   Trades shown: %d\n", len(r.Trading.Recent))
	if r.Trading.Fallback {
		fmt.Fprintf(&b, "%s Trade log unavailable, showing fallback figures\n", emoji.Warning)
	}
	if len(r.Report.Missed) > 0 {
		fmt.Fprintf(&b, "%s Unchanged (anchor not found): %s\n", emoji.Warning, strings.Join(r.Report.Missed, ", "))
	}

	switch {
	case r.Published:
		fmt.Fprintf(&b, "%s Pushed to GitHub Pages\n", emoji.Success)
	case r.PublishErr != nil:
		fmt.Fprintf(&b, "%s Git push failed (possibly no changes): %v\n", emoji.Warning, r.PublishErr)
	default:
		fmt.Fprintf(&b, "%s Publishing disabled\n", emoji.Info)
	}

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return err
	}

	if p.format == output.FormatWide && len(r.Trading.Recent) > 0 {
		if err := output.Write(p.w, p.format, table.TradesToTableData(r.Trading.Recent), nil); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(p.w, "%s\n%s Dashboard: %s\n", rule, emoji.Link, p.dashboardURL)
	return err
}
