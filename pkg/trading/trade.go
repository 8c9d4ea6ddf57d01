// Package trading loads the trading bot's trade log and reduces it to the
// snapshot shown on the dashboard.
package trading

import (
	"cmp"
	"math"
	"slices"

	"github.com/mujaffa/commandcenter/pkg/constants"
)

// StatusClosed marks a trade that has been exited and counts towards the stats.
const StatusClosed = "CLOSED"

// Trade is one record of the trade log. Keys missing from the log decode to zero values.
type Trade struct {
	Status     string  `json:"status" yaml:"status"`
	PnL        float64 `json:"pnl" yaml:"pnl"`
	PnLPct     float64 `json:"pnl_pct" yaml:"pnl_pct"`
	Symbol     string  `json:"symbol" yaml:"symbol"`
	Direction  string  `json:"direction" yaml:"direction"`
	ExitReason string  `json:"exit_reason" yaml:"exit_reason"`
	ExitTime   string  `json:"exit_time" yaml:"exit_time"`
}

// IsClosed reports whether the trade has been exited.
func (t Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsWin reports whether the trade closed in profit. Break-even counts as a loss.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// Snapshot is the aggregate trading view rendered on the dashboard.
type Snapshot struct {
	TotalTrades int     `json:"total_trades" yaml:"total_trades"`
	Wins        int     `json:"wins" yaml:"wins"`
	Losses      int     `json:"losses" yaml:"losses"`
	TotalPnL    float64 `json:"total_pnl" yaml:"total_pnl"`
	WinRate     float64 `json:"win_rate" yaml:"win_rate"`
	Capital     float64 `json:"capital" yaml:"capital"`
	Recent      []Trade `json:"recent_trades" yaml:"recent_trades"`
	All         []Trade `json:"-" yaml:"-"`

	// Fallback is set when the figures are the built-in defaults rather than the trade log.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// Aggregate reduces a trade log to a Snapshot. Only closed trades are counted.
func Aggregate(trades []Trade) Snapshot {
	closed := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}

	var wins, losses int
	var total float64
	for _, t := range closed {
		if t.IsWin() {
			wins++
		} else {
			losses++
		}
		total += t.PnL
	}

	return Snapshot{
		TotalTrades: len(closed),
		Wins:        wins,
		Losses:      losses,
		TotalPnL:    Round(total, 2),
		WinRate:     WinRate(wins, losses),
		Capital:     constants.DefaultCapital,
		Recent:      Recent(closed, constants.RecentTradesLimit),
		All:         trades,
	}
}

// WinRate returns wins/(wins+losses) as a percentage rounded to one decimal, or 0 with no trades.
func WinRate(wins, losses int) float64 {
	n := wins + losses
	if n == 0 {
		return 0
	}
	return Round(float64(wins)/float64(n)*100, 1)
}

// Recent returns up to n trades ordered by exit time, newest first.
// Exit times are compared as strings, so ISO-8601 stamps sort chronologically.
func Recent(trades []Trade, n int) []Trade {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b Trade) int {
		return cmp.Compare(b.ExitTime, a.ExitTime)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Fallback returns the snapshot shown when the trade log cannot be read.
func Fallback() Snapshot {
	return Snapshot{
		TotalTrades: constants.FallbackTotalTrades,
		Wins:        constants.FallbackWins,
		Losses:      constants.FallbackLosses,
		TotalPnL:    constants.FallbackTotalPnL,
		WinRate:     constants.FallbackWinRate,
		Capital:     constants.DefaultCapital,
		Recent:      []Trade{},
		All:         []Trade{},
		Fallback:    true,
	}
}

// ReturnPct is the return on the starting capital in percent, rounded to one decimal.
func (s Snapshot) ReturnPct(start float64) float64 {
	if start == 0 {
		return 0
	}
	return Round((s.Capital-start)/start*100, 1)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
