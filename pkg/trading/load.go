package trading

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
)

// Read decodes the trade log at path, a JSON array of trade objects.
func Read(path string) ([]Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("trade log", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var records []*Trade
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	if records == nil {
		return nil, errors.NewParseError("json", path, "not an array of trades", nil)
	}

	trades := make([]Trade, 0, len(records))
	for i, t := range records {
		if t == nil {
			return nil, errors.NewParseError("json", path, fmt.Sprintf("trade %d is null", i), nil)
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// Load reads and aggregates the trade log. It never fails: a missing or
// unreadable log is logged and the Fallback snapshot is returned instead.
func Load(ctx context.Context, path string) Snapshot {
	ctx = logging.WithPath(logging.WithOperation(ctx, "load_trades"), path)
	logger := logging.FromContext(ctx)

	trades, err := Read(path)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Debug().Msg("Trade log not found, using fallback figures")
		} else {
			logger.Warn().Err(err).Msg("Error loading trading data, using fallback figures")
		}
		return Fallback()
	}

	snap := Aggregate(trades)
	logger.Debug().
		Int("records", len(trades)).
		Int("closed", snap.TotalTrades).
		Float64("win_rate", snap.WinRate).
		Msg("Loaded trading data")
	return snap
}
