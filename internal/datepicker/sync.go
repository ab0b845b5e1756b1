package datepicker

import (
	"strings"

	"go.uber.org/atomic"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
)

// syncState reconciles the caller-owned value with the local selection.
// After a local commit the selection is authoritative for one guard window;
// external values seen meanwhile are parked in pending and reconciled when
// the window closes.
type syncState struct {
	lastExternal string
	hasExternal  bool
	selecting    bool
	pending      *string
	guardGen     atomic.Uint64
	guardTimer   Timer
}

// SetValue passes the owner's current value to the picker, typically on
// every render. The value is adopted when it differs from the last external
// value seen, no guard window is running and it differs from the local
// selection. A value that does not parse counts as no value.
func (c *Controller) SetValue(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted.Load() {
		return
	}
	c.reconcile(v)
}

func (c *Controller) reconcile(v string) {
	unchanged := c.ext.hasExternal && v == c.ext.lastExternal
	if c.ext.selecting {
		// Only the latest render counts when the window closes.
		if unchanged {
			c.ext.pending = nil
		} else {
			c.ext.pending = &v
		}
		return
	}
	if unchanged {
		return
	}
	c.ext.lastExternal = v
	c.ext.hasExternal = true
	if v == c.localValue() {
		return
	}
	c.adopt(v)
}

func (c *Controller) adopt(v string) {
	parsed, err := calfmt.ParseValue(v)
	if err != nil {
		if strings.TrimSpace(v) != "" {
			c.logger.Debug().Err(err).Str("value", v).Msg("Treating unparsable external value as empty")
		}
		c.selection = Selection{}
		return
	}

	d := parsed.Date
	c.selection = Selection{Date: &d}
	if parsed.Time != nil {
		c.editTime = *parsed.Time
		if c.opts.ShowTime {
			t := *parsed.Time
			c.selection.Time = &t
		}
	}
	c.logger.Debug().Str("value", v).Msg("Adopted external value")
}

// beginGuard starts (or restarts) the guard window after a local commit.
func (c *Controller) beginGuard() {
	c.ext.selecting = true
	gen := c.ext.guardGen.Inc()
	if c.ext.guardTimer != nil {
		c.ext.guardTimer.Stop()
	}
	c.ext.guardTimer = c.clock.AfterFunc(c.opts.GuardWindow, func() { c.endGuard(gen) })
}

func (c *Controller) endGuard(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted.Load() || c.ext.guardGen.Load() != gen {
		return
	}
	c.ext.selecting = false
	c.ext.guardTimer = nil
	if p := c.ext.pending; p != nil {
		c.ext.pending = nil
		c.reconcile(*p)
	}
}

// cancelGuard disarms the guard timer; a later firing is a no-op.
func (c *Controller) cancelGuard() {
	c.ext.guardGen.Inc()
	if c.ext.guardTimer != nil {
		c.ext.guardTimer.Stop()
		c.ext.guardTimer = nil
	}
	c.ext.selecting = false
	c.ext.pending = nil
}
