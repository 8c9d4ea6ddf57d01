package commandcenter

import (
	"context"
	"time"

	"github.com/mujaffa/commandcenter/pkg/errors"
	"github.com/mujaffa/commandcenter/pkg/logging"
)

// Watch runs Update immediately and then on every interval tick until ctx is
// cancelled. Passes run one after another in the caller's goroutine; a tick
// that arrives while a pass is still running is dropped. A failed pass is
// logged and the loop continues.
func (c *client) Watch(ctx context.Context) error {
	if c.options.interval <= 0 {
		return &errors.ValidationError{
			Field:   "update_interval",
			Value:   c.options.interval,
			Message: "update interval must be positive",
		}
	}

	logger := logging.FromContext(ctx)
	logger.Info().Dur("interval", c.options.interval).Msg("Watching dashboard")

	c.runOnce(ctx)

	ticker := time.NewTicker(c.options.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Stopped watching dashboard")
			return nil
		case <-ticker.C:
			c.runOnce(ctx)
		}
	}
}

func (c *client) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := c.Update(ctx); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Dashboard update failed")
	}
}
