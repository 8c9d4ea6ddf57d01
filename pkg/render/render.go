// Package render builds the HTML fragments written into the dashboard.
// Fragments are produced with plain string formatting; their whitespace matches
// the dashboard document so repeated runs keep the file stable.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mujaffa/commandcenter/pkg/constants"
	"github.com/mujaffa/commandcenter/pkg/trading"
)

// Markup shared with the patcher, which locates the trade list by it.
const (
	// ContainerID is the id of the element holding the trade rows.
	ContainerID = "recent-trades"

	// ContainerOpen is the opening tag of the trade list container.
	ContainerOpen = `<div id="recent-trades" class="space-y-2 max-h-64 overflow-y-auto">`

	// FooterOpen is the opening tag of the totals line below the trade list.
	FooterOpen = `<div class="mt-3 text-center text-xs text-gray-500">`

	// Empty is shown in place of rows when there are no trades.
	Empty = `<div class="text-gray-400">Ingen trades endnu</div>`

	notAvailable = "N/A"
)

const rowFormat = `
        <div class="flex items-center justify-between p-2 bg-gray-800 rounded text-sm">
            <div class="flex items-center gap-2">
                <span>%s</span>
                <span class="font-medium">%s</span>
                <span class="text-gray-400">%s</span>
            </div>
            <div class="text-right">
                <span class="%s font-mono">$%+.2f</span>
                <span class="text-xs text-gray-500 ml-1">(%+.1f%%)</span>
            </div>
        </div>
        `

const sectionFormat = `
        <!-- Recent Trades -->
        <div class="glass rounded-xl p-4 mt-4">
            <h2 class="text-lg font-bold mb-4"><i class="fas fa-list mr-2"></i>Seneste %d Handler</h2>
            ` + ContainerOpen + `
                %s
            </div>
            ` + FooterOpen + `
                %s
            </div>
        </div>
        `

var printer = message.NewPrinter(language.English)

// TradeRow renders one trade as a dashboard row: a win/loss glyph, symbol,
// direction, signed PnL and signed percentage.
func TradeRow(t trading.Trade) string {
	glyph, color := "🔴", "text-red-400"
	if t.IsWin() {
		glyph, color = "🟢", "text-green-400"
	}
	return fmt.Sprintf(rowFormat,
		glyph,
		html.EscapeString(orNA(t.Symbol)),
		html.EscapeString(orNA(t.Direction)),
		color,
		t.PnL,
		t.PnLPct,
	)
}

// Trades renders up to RecentTradesLimit rows, or the Empty placeholder.
func Trades(trades []trading.Trade) string {
	if len(trades) == 0 {
		return Empty
	}
	if len(trades) > constants.RecentTradesLimit {
		trades = trades[:constants.RecentTradesLimit]
	}

	rows := make([]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, TradeRow(t))
	}
	return strings.Join(rows, "\n")
}

// Totals renders the footer line below the trade list.
func Totals(s trading.Snapshot) string {
	return fmt.Sprintf("Total: %d trades | %d wins | %d losses", s.TotalTrades, s.Wins, s.Losses)
}

// Section renders the whole "recent trades" card around an already rendered list.
func Section(s trading.Snapshot, list string) string {
	return fmt.Sprintf(sectionFormat, constants.RecentTradesLimit, list, Totals(s))
}

// Money formats v with two decimals and thousands separators, e.g. 19,019.69.
func Money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// WholeMoney formats v without decimals and with thousands separators, e.g. 10,000.
func WholeMoney(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// Percent formats a rounded percentage without trailing zeros: 71, 66.7, 90.2.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WinRate formats a win rate as the dashboard shows it: one decimal when the
// rate was computed from the trade log (50.0, 66.7) and the bare figure for
// the fallback snapshot (71).
func WinRate(v float64, fallback bool) string {
	if fallback {
		return Percent(v)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
