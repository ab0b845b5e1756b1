package datepicker

import "github.com/belphemur/jalaali-picker/internal/placement"

// subscribe wires the global listeners of an open cycle. Resize, scroll and
// keyboard listeners attach at once; the outside-click listener attaches only
// after ListenerDelay so the click that opened the popup cannot close it.
func (c *Controller) subscribe(cycle uint64) {
	c.subs = append(c.subs,
		c.host.Subscribe(EventResize, func(Event) { c.handleGeometry(cycle) }),
		c.host.Subscribe(EventScroll, func(Event) { c.handleGeometry(cycle) }),
		c.host.Subscribe(EventKeyDown, func(e Event) { c.handleKey(cycle, e) }),
	)
	c.timers = append(c.timers, c.clock.AfterFunc(c.opts.ListenerDelay, func() { c.attachOutsideClick(cycle) }))
}

func (c *Controller) unsubscribe() {
	for _, cancel := range c.subs {
		cancel()
	}
	c.subs = nil
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

// current reports whether cycle is still the live open cycle.
func (c *Controller) current(cycle uint64) bool {
	return c.mounted.Load() && c.mode != ModeClosed && c.cycle.Load() == cycle
}

func (c *Controller) attachOutsideClick(cycle uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(cycle) {
		return
	}
	c.subs = append(c.subs, c.host.Subscribe(EventClick, func(e Event) { c.handleClick(cycle, e) }))
	c.logger.Trace().Msg("Outside click listener attached")
}

// handleClick schedules the dismissal for clicks outside the anchor and the
// popup. The close itself is deferred by DismissDelay so that events of the
// same gesture, such as a day selection, can still land first.
func (c *Controller) handleClick(cycle uint64, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(cycle) || e.Target != TargetOutside || c.dismissPending {
		return
	}
	c.dismissPending = true
	c.timers = append(c.timers, c.clock.AfterFunc(c.opts.DismissDelay, func() {
		c.run(func() effects {
			if !c.current(cycle) {
				return effects{}
			}
			return c.close(ReasonOutsideClick)
		})
	}))
}

func (c *Controller) handleGeometry(cycle uint64) {
	c.run(func() effects {
		if !c.current(cycle) {
			return effects{}
		}
		return c.relayout()
	})
}

func (c *Controller) handleKey(cycle uint64, e Event) {
	if e.Key != KeyEscape {
		return
	}
	c.run(func() effects {
		if !c.current(cycle) {
			return effects{}
		}
		return c.close(ReasonEscape)
	})
}

// relayout recomputes the placement, closing the popup when the anchor is gone.
func (c *Controller) relayout() effects {
	anchor, ok := c.host.AnchorRect()
	if !ok {
		c.logger.Debug().Msg("Anchor detached while open, closing")
		return c.close(ReasonAnchorDetached)
	}
	c.place = c.computePlacement(anchor)
	return effects{}
}

func (c *Controller) computePlacement(anchor placement.Rect) *placement.Placement {
	p := placement.Compute(anchor, c.host.Viewport(), c.mode == ModeYearPicker, c.opts.Placement)
	return &p
}
