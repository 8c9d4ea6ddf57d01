package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mujaffa/commandcenter/pkg/constants"
)

func closed(symbol string, pnl float64, exit string) Trade {
	return Trade{Status: StatusClosed, Symbol: symbol, Direction: "LONG", PnL: pnl, PnLPct: pnl / 10, ExitTime: exit}
}

func TestAggregateEmpty(t *testing.T) {
	snap := Aggregate(nil)
	assert.Equal(t, 0, snap.TotalTrades)
	assert.Equal(t, 0.0, snap.WinRate)
	assert.Equal(t, 0.0, snap.TotalPnL)
	assert.Empty(t, snap.Recent)
	assert.Equal(t, constants.DefaultCapital, snap.Capital)
	assert.False(t, snap.Fallback)
}

func TestAggregate(t *testing.T) {
	trades := []Trade{
		closed("BTCUSDT", 120.50, "2026-01-03T10:00:00"),
		closed("ETHUSDT", -40.25, "2026-01-02T10:00:00"),
		closed("SOLUSDT", 0, "2026-01-04T10:00:00"),
		closed("XRPUSDT", 10, "2026-01-01T10:00:00"),
		{Status: "OPEN", Symbol: "DOGEUSDT", PnL: 999},
	}

	snap := Aggregate(trades)
	assert.Equal(t, 4, snap.TotalTrades)
	assert.Equal(t, 2, snap.Wins)
	assert.Equal(t, 2, snap.Losses, "break-even counts as a loss")
	assert.Equal(t, 90.25, snap.TotalPnL)
	assert.Equal(t, 50.0, snap.WinRate)
	assert.Len(t, snap.All, 5)

	require.Len(t, snap.Recent, 4)
	assert.Equal(t, "SOLUSDT", snap.Recent[0].Symbol)
	assert.Equal(t, "XRPUSDT", snap.Recent[3].Symbol)
	for _, tr := range snap.Recent {
		assert.True(t, tr.IsClosed(), "open trades never reach the recent list")
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		name         string
		wins, losses int
		want         float64
	}{
		{"no trades", 0, 0, 0},
		{"all wins", 3, 0, 100},
		{"all losses", 0, 4, 0},
		{"even split", 5, 5, 50},
		{"two thirds", 2, 1, 66.7},
		{"one third", 1, 2, 33.3},
		{"fallback ratio", 22, 9, 71},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WinRate(tt.wins, tt.losses))
		})
	}
}

func TestRecent(t *testing.T) {
	var trades []Trade
	for i := 0; i < 25; i++ {
		trades = append(trades, closed("SYM", float64(i), "2026-02-"+twoDigits(i+1)))
	}

	got := Recent(trades, constants.RecentTradesLimit)
	require.Len(t, got, 10)
	assert.Equal(t, "2026-02-25", got[0].ExitTime)
	assert.Equal(t, "2026-02-16", got[9].ExitTime)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].ExitTime, got[i].ExitTime)
	}

	// The input is left untouched.
	assert.Equal(t, "2026-02-01", trades[0].ExitTime)
}

func TestRecentStableForEqualTimes(t *testing.T) {
	trades := []Trade{
		closed("A", 1, ""),
		closed("B", 1, "2026-01-01"),
		closed("C", 1, ""),
	}
	got := Recent(trades, 10)
	assert.Equal(t, []string{"B", "A", "C"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
}

func TestFallback(t *testing.T) {
	snap := Fallback()
	assert.Equal(t, 31, snap.TotalTrades)
	assert.Equal(t, 22, snap.Wins)
	assert.Equal(t, 9, snap.Losses)
	assert.Equal(t, 5019.69, snap.TotalPnL)
	assert.Equal(t, 71.0, snap.WinRate)
	assert.Equal(t, 19019.69, snap.Capital)
	assert.Empty(t, snap.Recent)
	assert.True(t, snap.Fallback)
}

func TestReturnPct(t *testing.T) {
	snap := Snapshot{Capital: 19019.69}
	assert.Equal(t, 90.2, snap.ReturnPct(10000))
	assert.Equal(t, 0.0, snap.ReturnPct(0))

	loss := Snapshot{Capital: 9500}
	assert.Equal(t, -5.0, loss.ReturnPct(10000))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.234, 2))
	assert.Equal(t, 1.24, Round(1.235001, 2))
	assert.Equal(t, -2.5, Round(-2.46, 1))
}

func twoDigits(n int) string {
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
