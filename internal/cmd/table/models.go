// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mujaffa/commandcenter/internal/cmd/emoji"
	"github.com/mujaffa/commandcenter/pkg/patcher"
	"github.com/mujaffa/commandcenter/pkg/render"
	"github.com/mujaffa/commandcenter/pkg/trading"
	"github.com/mujaffa/commandcenter/pkg/uptime"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// SummaryToTableData renders the dashboard figures as a key-value table.
func SummaryToTableData(s trading.Snapshot, returnPct float64, sites uptime.Summary) Data {
	source := "trade log"
	if s.Fallback {
		source = "fallback"
	}
	return Data{
		Headers: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Return", FormatReturn(returnPct)},
			{"Capital", "$" + render.Money(s.Capital)},
			{"Win Rate", render.WinRate(s.WinRate, s.Fallback) + "%"},
			{"Trades", fmt.Sprintf("%d (%d wins, %d losses)", s.TotalTrades, s.Wins, s.Losses)},
			{"Total PnL", FormatPnL(s.TotalPnL)},
			{"Websites", fmt.Sprintf("%d/%d up", sites.Up, sites.Total)},
			{"Source", source},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// TradesToTableData converts trades to table format.
func TradesToTableData(trades []trading.Trade) Data {
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		glyph := emoji.Loss
		if t.IsWin() {
			glyph = emoji.Win
		}
		rows = append(rows, []string{
			glyph,
			orDash(t.Symbol),
			orDash(t.Direction),
			FormatPnL(t.PnL),
			fmt.Sprintf("%+.1f%%", t.PnLPct),
			orDash(t.ExitReason),
			orDash(t.ExitTime),
		})
	}
	return Data{
		Headers:         []string{"", "Symbol", "Direction", "PnL", "PnL %", "Exit Reason", "Exit Time"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
}

// ProbesToTableData converts the latest probe results to table format.
func ProbesToTableData(probes []uptime.Probe) Data {
	rows := make([][]string, 0, len(probes))
	for _, p := range probes {
		status := emoji.Error + " " + orDash(p.Status)
		if p.IsUp() {
			status = emoji.Success + " " + p.Status
		}
		rows = append(rows, []string{
			p.Name,
			status,
			fmt.Sprintf("%.2fs", p.LoadTime),
			orDash(p.URL),
		})
	}
	return Data{
		Headers:         []string{"Site", "Status", "Load Time", "URL"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// AnchorsToTableData lists each rule with what the dashboard shows now and
// whether a pass would rewrite it.
func AnchorsToTableData(anchors []string, reading *patcher.Reading, pending patcher.Report) Data {
	missed := make(map[string]bool, len(pending.Missed))
	for _, name := range pending.Missed {
		missed[name] = true
	}

	rows := make([][]string, 0, len(anchors)+1)
	for _, name := range anchors {
		state := emoji.Success + " matches"
		if missed[name] {
			state = emoji.Warning + " stale"
		}
		current := "-"
		if reading != nil && reading.Values[name] != "" {
			current = reading.Values[name]
		}
		rows = append(rows, []string{name, current, state})
	}

	trades := emoji.Success + " " + pending.Trades.String()
	if pending.Trades == patcher.TradesMarkerMissing || pending.Trades == patcher.TradesStale {
		trades = emoji.Warning + " " + pending.Trades.String()
	}
	shown := "-"
	if reading != nil && reading.HasTradeList {
		shown = fmt.Sprintf("%d rows", reading.TradeRows)
	}
	rows = append(rows, []string{"recent_trades", shown, trades})

	return Data{
		Headers: []string{"Anchor", "Current", "Next Update"},
		Rows:    rows,
	}
}

// Property is one row of a key-value table. Key is a snake_case field name.
type Property struct {
	Key   string
	Value string
}

var title = cases.Title(language.English)

// PropertiesToTableData renders properties as a Property/Value table, turning
// keys like "built_by" into "Built By".
func PropertiesToTableData(props ...Property) Data {
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{Label(p.Key), orDash(p.Value)})
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// Label turns a snake_case key into a title-cased label.
func Label(key string) string {
	return title.String(strings.ReplaceAll(key, "_", " "))
}

// FormatPnL formats a signed dollar amount: $+12.30, $-4.00.
func FormatPnL(v float64) string {
	return fmt.Sprintf("$%+.2f", v)
}

// FormatReturn formats a signed return percentage: +90.2%.
func FormatReturn(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
