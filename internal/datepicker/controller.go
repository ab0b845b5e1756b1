// Package datepicker implements a headless Jalaali date-picker: the popup
// state machine, view navigation, selection, placement and reconciliation
// with a caller-owned value. Rendering and event plumbing belong to a Host.
package datepicker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/logging"
	"github.com/belphemur/jalaali-picker/internal/placement"
	"github.com/belphemur/jalaali-picker/internal/signals"
)

var (
	// ErrNotSelectable is returned when a selection is attempted while the day grid is not showing.
	ErrNotSelectable = errors.New("day grid is not open")
	// ErrDayOutOfRange is returned for a day number the displayed month does not have.
	ErrDayOutOfRange = errors.New("day not in displayed month")
	// ErrOutOfRange is returned when a date falls outside the configured year range.
	ErrOutOfRange = errors.New("date outside configured year range")
)

// Close reasons reported on the picker closed signal.
const (
	ReasonCommit         = "commit"
	ReasonCancel         = "cancel"
	ReasonEscape         = "escape"
	ReasonOutsideClick   = "outside_click"
	ReasonAnchorDetached = "anchor_detached"
	ReasonDisabled       = "disabled"
	ReasonUnmount        = "unmount"
)

// Commit sources reported on the date committed signal.
const (
	SourceDay   = "day"
	SourceToday = "today"
	SourceTime  = "time"
)

// Controller is one date-picker instance. All methods are safe for
// concurrent use; onChange and signal listeners are invoked without the
// controller lock held, so they may call back into the controller.
type Controller struct {
	mu       sync.Mutex
	ctx      context.Context
	opts     Options
	host     Host
	clock    Clock
	onChange func(string)
	logger   zerolog.Logger

	mode      Mode
	view      ViewState
	selection Selection
	editTime  jalaali.TimeOfDay
	place     *placement.Placement
	ext       syncState

	// cycle identifies the current open/close cycle; timers and listeners
	// from an older cycle ignore themselves.
	cycle          atomic.Uint64
	mounted        atomic.Bool
	dismissPending bool
	subs           []func()
	timers         []Timer
}

// effects are the outward notifications produced while the lock is held and
// delivered after it is released.
type effects struct {
	changes   []string
	opened    *signals.PickerOpenedData
	committed *signals.DateCommittedData
	closed    *signals.PickerClosedData
}

func (fx *effects) merge(other effects) {
	fx.changes = append(fx.changes, other.changes...)
	if other.opened != nil {
		fx.opened = other.opened
	}
	if other.committed != nil {
		fx.committed = other.committed
	}
	if other.closed != nil {
		fx.closed = other.closed
	}
}

// New creates a mounted, closed picker. onChange receives every committed
// value in machine form and may be nil.
func New(ctx context.Context, opts Options, host Host, clock Clock, onChange func(string)) (*Controller, error) {
	if host == nil {
		return nil, errors.New("datepicker: host is required")
	}
	if opts.MinYear > opts.MaxYear {
		return nil, fmt.Errorf("datepicker: min year %d is after max year %d", opts.MinYear, opts.MaxYear)
	}
	if opts.MinYear < jalaali.MinSupportedYear || opts.MaxYear >= jalaali.MaxSupportedYear {
		return nil, fmt.Errorf("datepicker: year range [%d, %d] outside calendar domain", opts.MinYear, opts.MaxYear)
	}
	if clock == nil {
		clock = RealClock()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Controller{
		ctx:      ctx,
		opts:     opts,
		host:     host,
		clock:    clock,
		onChange: onChange,
		logger:   logging.GetLogger("datepicker").With().Str("picker_id", opts.ID).Logger(),
	}
	c.mounted.Store(true)
	return c, nil
}

func (c *Controller) flush(fx effects) {
	if fx.opened != nil {
		signals.EmitPickerOpened(c.ctx, *fx.opened)
	}
	for _, v := range fx.changes {
		if c.onChange != nil {
			c.onChange(v)
		}
	}
	if fx.committed != nil {
		signals.EmitDateCommitted(c.ctx, *fx.committed)
	}
	if fx.closed != nil {
		signals.EmitPickerClosed(c.ctx, *fx.closed)
	}
}

// run executes fn under the lock and delivers its effects afterwards.
func (c *Controller) run(fn func() effects) {
	c.mu.Lock()
	fx := fn()
	c.mu.Unlock()
	c.flush(fx)
}

func (c *Controller) today() jalaali.Date {
	return jalaali.Today(c.clock.Now(), c.opts.Location)
}

func (c *Controller) inRange(year int) bool {
	return year >= c.opts.MinYear && year <= c.opts.MaxYear
}

// initialView picks the month to show on open: the selection's month, or
// today's, pulled into the configured year range.
func (c *Controller) initialView() ViewState {
	d := c.today()
	if c.selection.Date != nil {
		d = *c.selection.Date
	}
	switch {
	case d.Year < c.opts.MinYear:
		return ViewState{Year: c.opts.MinYear, Month: 1}
	case d.Year > c.opts.MaxYear:
		return ViewState{Year: c.opts.MaxYear, Month: 12}
	}
	return ViewState{Year: d.Year, Month: d.Month}
}

// Open shows the day grid. It does nothing when the picker is disabled,
// already open or unmounted, and stays closed if the anchor cannot be measured.
func (c *Controller) Open() {
	c.run(c.open)
}

func (c *Controller) open() (fx effects) {
	if !c.mounted.Load() || c.opts.Disabled || c.mode != ModeClosed {
		return fx
	}
	anchor, ok := c.host.AnchorRect()
	if !ok {
		c.logger.Debug().Msg("Anchor not measurable, staying closed")
		return fx
	}

	c.view = c.initialView()
	c.mode = ModeDayGrid
	cycle := c.cycle.Inc()
	c.place = c.computePlacement(anchor)
	c.subscribe(cycle)

	c.logger.Debug().Int("year", c.view.Year).Int("month", c.view.Month).Msg("Picker opened")
	fx.opened = &signals.PickerOpenedData{PickerID: c.opts.ID, Year: c.view.Year, Month: c.view.Month}
	return fx
}

// Close hides the popup without committing anything. Closing a closed picker is a no-op.
func (c *Controller) Close() {
	c.run(func() effects { return c.close(ReasonCancel) })
}

func (c *Controller) close(reason string) (fx effects) {
	if c.mode == ModeClosed {
		return fx
	}
	c.mode = ModeClosed
	c.place = nil
	c.dismissPending = false
	c.cycle.Inc()
	c.unsubscribe()

	c.logger.Debug().Str("reason", reason).Msg("Picker closed")
	fx.closed = &signals.PickerClosedData{PickerID: c.opts.ID, Reason: reason}
	return fx
}

// Unmount closes the picker and disarms every pending timer. The controller
// ignores all further calls.
func (c *Controller) Unmount() {
	c.run(func() effects {
		if !c.mounted.Load() {
			return effects{}
		}
		fx := c.close(ReasonUnmount)
		c.mounted.Store(false)
		c.cancelGuard()
		return fx
	})
}

// SetDisabled toggles the disabled flag; disabling an open picker closes it.
func (c *Controller) SetDisabled(disabled bool) {
	c.run(func() effects {
		c.opts.Disabled = disabled
		if disabled {
			return c.close(ReasonDisabled)
		}
		return effects{}
	})
}

// NextMonth shows the following month. Leaving the year range is a no-op.
func (c *Controller) NextMonth() {
	c.navigate(ViewState.Next)
}

// PrevMonth shows the preceding month. Leaving the year range is a no-op.
func (c *Controller) PrevMonth() {
	c.navigate(ViewState.Prev)
}

// NextYear shows the same month one year later, when year navigation is enabled.
func (c *Controller) NextYear() {
	c.stepYear(1)
}

// PrevYear shows the same month one year earlier, when year navigation is enabled.
func (c *Controller) PrevYear() {
	c.stepYear(-1)
}

func (c *Controller) navigate(step func(ViewState) ViewState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeDayGrid {
		return
	}
	next := step(c.view)
	if !c.inRange(next.Year) {
		return
	}
	c.view = next
}

func (c *Controller) stepYear(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeDayGrid || !c.opts.EnableYearNavigation {
		return
	}
	if !c.inRange(c.view.Year + delta) {
		return
	}
	c.view.Year += delta
}

// EnterYearPicker switches from the day grid to the year list, when year selection is enabled.
func (c *Controller) EnterYearPicker() {
	c.run(func() effects {
		if c.mode != ModeDayGrid || !c.opts.EnableYearSelection {
			return effects{}
		}
		c.mode = ModeYearPicker
		return c.relayout()
	})
}

// ExitYearPicker returns to the day grid without changing the year.
func (c *Controller) ExitYearPicker() {
	c.run(func() effects {
		if c.mode != ModeYearPicker {
			return effects{}
		}
		c.mode = ModeDayGrid
		return c.relayout()
	})
}

// ToggleYearPicker is what clicking the year label does.
func (c *Controller) ToggleYearPicker() {
	c.run(func() effects {
		switch {
		case c.mode == ModeYearPicker:
			c.mode = ModeDayGrid
		case c.mode == ModeDayGrid && c.opts.EnableYearSelection:
			c.mode = ModeYearPicker
		default:
			return effects{}
		}
		return c.relayout()
	})
}

// PickYear sets the viewed year from the year list and returns to the day
// grid, keeping the viewed month. Years outside the range are ignored.
func (c *Controller) PickYear(year int) {
	c.run(func() effects {
		if c.mode != ModeYearPicker || !c.inRange(year) {
			return effects{}
		}
		c.view.Year = year
		c.mode = ModeDayGrid
		return c.relayout()
	})
}

// Years lists the selectable years, newest first.
func (c *Controller) Years() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	years := make([]int, 0, c.opts.MaxYear-c.opts.MinYear+1)
	for y := c.opts.MaxYear; y >= c.opts.MinYear; y-- {
		years = append(years, y)
	}
	return years
}

// SelectDay commits the given day of the displayed month and closes the popup.
func (c *Controller) SelectDay(day int) error {
	var err error
	c.run(func() effects {
		if c.mode != ModeDayGrid {
			err = ErrNotSelectable
			return effects{}
		}
		if day < 1 || day > jalaali.DaysInMonth(c.view.Year, c.view.Month) {
			err = fmt.Errorf("%w: day %d of %04d/%02d", ErrDayOutOfRange, day, c.view.Year, c.view.Month)
			return effects{}
		}
		return c.commitDate(jalaali.Date{Year: c.view.Year, Month: c.view.Month, Day: day}, SourceDay)
	})
	return err
}

// SelectToday commits today's date and closes the popup.
func (c *Controller) SelectToday() error {
	var err error
	c.run(func() effects {
		if c.mode != ModeDayGrid {
			err = ErrNotSelectable
			return effects{}
		}
		today := c.today()
		if !c.inRange(today.Year) {
			err = fmt.Errorf("%w: %s", ErrOutOfRange, today)
			return effects{}
		}
		c.view = ViewState{Year: today.Year, Month: today.Month}
		return c.commitDate(today, SourceToday)
	})
	return err
}

// SetTime edits the time of day. When time capture is on and a date is
// already selected, the combined value is committed immediately.
func (c *Controller) SetTime(hour, minute int) error {
	t, err := jalaali.NewTimeOfDay(hour, minute)
	if err != nil {
		return err
	}
	c.run(func() effects {
		if !c.mounted.Load() {
			return effects{}
		}
		c.editTime = t
		if !c.opts.ShowTime || c.selection.Date == nil {
			return effects{}
		}
		if c.selection.Time != nil && *c.selection.Time == t {
			return effects{}
		}
		tt := t
		c.selection.Time = &tt
		return c.emitCommit(SourceTime)
	})
	return nil
}

func (c *Controller) commitDate(d jalaali.Date, source string) effects {
	if !d.Valid() {
		// The grid only offers real days; getting here means the calendar math is wrong.
		panic(fmt.Sprintf("datepicker: committing invalid date %+v", d))
	}
	c.selection.Date = &d
	c.selection.Time = nil
	if c.opts.ShowTime {
		t := c.editTime
		c.selection.Time = &t
	}
	fx := c.emitCommit(source)
	fx.merge(c.close(ReasonCommit))
	return fx
}

// emitCommit reports the current selection to the owner and opens the guard window.
func (c *Controller) emitCommit(source string) (fx effects) {
	value := c.localValue()
	c.beginGuard()
	c.logger.Debug().Str("value", value).Str("source", source).Msg("Selection committed")
	fx.changes = []string{value}
	fx.committed = &signals.DateCommittedData{PickerID: c.opts.ID, Value: value, Source: source}
	return fx
}

// localValue is the selection in machine form, or "" when nothing is selected.
func (c *Controller) localValue() string {
	if c.selection.Date == nil {
		return ""
	}
	if c.opts.ShowTime {
		return calfmt.FormatValue(*c.selection.Date, c.selection.Time)
	}
	return calfmt.FormatMachine(*c.selection.Date)
}

func (c *Controller) canStep(v ViewState) bool {
	return c.mode == ModeDayGrid && c.inRange(v.Year)
}

// Snapshot returns the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		ID:            c.opts.ID,
		Mode:          c.mode,
		View:          c.view,
		EditTime:      c.editTime,
		Value:         c.localValue(),
		Placeholder:   c.opts.Placeholder,
		Today:         c.today(),
		MinYear:       c.opts.MinYear,
		MaxYear:       c.opts.MaxYear,
		YearSelection: c.opts.EnableYearSelection,
		ShowTime:      c.opts.ShowTime,
		Disabled:      c.opts.Disabled,
		CanPrevMonth:  c.canStep(c.view.Prev()),
		CanNextMonth:  c.canStep(c.view.Next()),
		CanPrevYear:   c.opts.EnableYearNavigation && c.mode == ModeDayGrid && c.inRange(c.view.Year-1),
		CanNextYear:   c.opts.EnableYearNavigation && c.mode == ModeDayGrid && c.inRange(c.view.Year+1),
		Guarded:       c.ext.selecting,
	}
	if c.selection.Date != nil {
		d := *c.selection.Date
		s.Selection.Date = &d
		s.Display = calfmt.FormatDisplay(d, c.selection.Time, c.opts.ShowTime, c.opts.DigitStyle)
	}
	if c.selection.Time != nil {
		t := *c.selection.Time
		s.Selection.Time = &t
	}
	if c.place != nil {
		p := *c.place
		s.Placement = &p
	}
	return s
}

// Mode returns the current popup mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// View returns the displayed month.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Selection returns a copy of the committed selection.
func (c *Controller) Selection() Selection {
	return c.Snapshot().Selection
}
