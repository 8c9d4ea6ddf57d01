package commandcenter

import (
	"sync"

	"github.com/mujaffa/commandcenter/pkg/logging"
)

// UpdateHook is called with the result of every successful pass.
type UpdateHook func(result *Result)

// hooks holds the registered update callbacks.
type hooks struct {
	mu       sync.RWMutex
	onUpdate []UpdateHook
}

func newHooks(fns ...UpdateHook) *hooks {
	return &hooks{onUpdate: fns}
}

// trigger runs every hook in registration order. A panicking hook is logged
// and does not stop the others.
func (h *hooks) trigger(result *Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.onUpdate {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logging.Error().Interface("panic", r).Msg("Update hook panicked")
				}
			}()
			fn(result)
		}()
	}
}
