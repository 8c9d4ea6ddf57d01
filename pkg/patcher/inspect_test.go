package patcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/trading"
)

func TestInspectAuthoredDocument(t *testing.T) {
	reading, err := Inspect(loadDashboard(t), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "+90.2%", reading.Values[RuleReturn])
	assert.Equal(t, "$10,000 → $19,019", reading.Values[RuleCapital])
	assert.Equal(t, "71% win rate | Paper trading", reading.Values[RuleWinRate])
	assert.Equal(t, "3/3", reading.Values[RuleSites])
	assert.Equal(t, "01/01 00:00", reading.Values[RuleLastUpdate])
	assert.False(t, reading.HasTradeList)
	assert.Zero(t, reading.TradeRows)
}

func TestInspectPatchedDocument(t *testing.T) {
	p := New()
	out, _ := p.Apply(loadDashboard(t), testValues("16/10 14:00", 66.7,
		trading.Trade{Symbol: "BTCUSDT", PnL: 1},
		trading.Trade{Symbol: "ETHUSDT", PnL: -1},
	))

	reading, err := p.Inspect(out)
	require.NoError(t, err)

	assert.Equal(t, "+12.3%", reading.Values[RuleReturn])
	assert.Equal(t, "1/2", reading.Values[RuleSites])
	assert.Equal(t, "16/10 14:00", reading.Values[RuleLastUpdate])
	assert.True(t, reading.HasTradeList)
	assert.Equal(t, 2, reading.TradeRows)
	assert.Equal(t, "Total: 2 trades | 2 wins | 0 losses", reading.Totals)
}

func TestInspectMissingElements(t *testing.T) {
	reading, err := Inspect("<html><body><p>nothing here</p></body></html>", DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "", reading.Values[RuleReturn])
	assert.Len(t, reading.Values, 5)
}

func TestInspectEmptyDocument(t *testing.T) {
	_, err := Inspect("  \n", DefaultRules())
	assert.True(t, errors.IsParseError(err))
}
