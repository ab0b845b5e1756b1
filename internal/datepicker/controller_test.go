package datepicker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/placement"
	"github.com/belphemur/jalaali-picker/internal/signals"
)

// 2024-03-20 is 1403/01/01.
var nowruz1403 = time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)

type testPicker struct {
	*Controller
	host    *VirtualHost
	clock   *FakeClock
	mu      sync.Mutex
	changes []string
	echo    bool
}

func (p *testPicker) onChange(v string) {
	p.mu.Lock()
	p.changes = append(p.changes, v)
	echo := p.echo
	p.mu.Unlock()
	if echo {
		// A controlled owner re-renders with the value it was just given.
		p.SetValue(v)
	}
}

func (p *testPicker) Changes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.changes...)
}

func newTestPicker(t *testing.T, mutate func(*Options)) *testPicker {
	t.Helper()
	opts := DefaultOptions()
	opts.ID = t.Name()
	if mutate != nil {
		mutate(&opts)
	}

	p := &testPicker{
		host:  NewVirtualHost(placement.Rect{Top: 100, Left: 100, Width: 240, Height: 40}, placement.Viewport{Width: 1280, Height: 800}),
		clock: NewFakeClock(nowruz1403),
	}
	c, err := New(context.Background(), opts, p.host, p.clock, p.onChange)
	require.NoError(t, err)
	p.Controller = c
	t.Cleanup(c.Unmount)
	return p
}

func date(y, m, d int) *jalaali.Date {
	v := jalaali.MustNew(y, m, d)
	return &v
}

func TestNew_Validation(t *testing.T) {
	_, err := New(context.Background(), DefaultOptions(), nil, nil, nil)
	assert.Error(t, err, "host is required")

	opts := DefaultOptions()
	opts.MinYear, opts.MaxYear = 1410, 1300
	_, err = New(context.Background(), opts, NewVirtualHost(placement.Rect{}, placement.Viewport{}), nil, nil)
	assert.Error(t, err, "inverted range")

	opts = DefaultOptions()
	opts.MaxYear = 5000
	_, err = New(context.Background(), opts, NewVirtualHost(placement.Rect{}, placement.Viewport{}), nil, nil)
	assert.Error(t, err, "range outside calendar domain")
}

func TestEndToEnd_TodayViewAndSelectDay(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("")

	p.Open()
	require.Equal(t, ModeDayGrid, p.Mode())
	assert.Equal(t, ViewState{Year: 1403, Month: 1}, p.View())

	require.NoError(t, p.SelectDay(5))

	assert.Equal(t, []string{"1403/01/05"}, p.Changes())
	assert.Equal(t, ModeClosed, p.Mode())
	assert.Equal(t, date(1403, 1, 5), p.Selection().Date)
}

func TestOpen_ViewFollowsSelection(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1390/06/15")

	p.Open()

	assert.Equal(t, ViewState{Year: 1390, Month: 6}, p.View())
}

func TestOpen_ViewClampedIntoRange(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.MaxYear = 1350 })

	p.Open()

	assert.Equal(t, ViewState{Year: 1350, Month: 12}, p.View())
}

func TestOpenClose_Idempotent(t *testing.T) {
	p := newTestPicker(t, nil)

	p.Close() // closing a closed picker
	assert.Equal(t, ModeClosed, p.Mode())

	p.Open()
	p.NextMonth()
	p.Open() // opening an open picker must not reset the view
	assert.Equal(t, ModeDayGrid, p.Mode())
	assert.Equal(t, ViewState{Year: 1403, Month: 2}, p.View())

	p.EnterYearPicker()
	p.Open()
	assert.Equal(t, ModeYearPicker, p.Mode())

	p.Close()
	p.Close()
	assert.Equal(t, ModeClosed, p.Mode())
	assert.Empty(t, p.Changes())
}

func TestYearPicker_ExitKeepsView(t *testing.T) {
	p := newTestPicker(t, nil)

	p.ExitYearPicker() // closed: no-op
	assert.Equal(t, ModeClosed, p.Mode())

	p.Open()
	p.NextMonth()
	p.ExitYearPicker() // already on the day grid
	assert.Equal(t, ModeDayGrid, p.Mode())

	p.EnterYearPicker()
	require.Equal(t, ModeYearPicker, p.Mode())
	p.ExitYearPicker()

	assert.Equal(t, ModeDayGrid, p.Mode())
	assert.Equal(t, ViewState{Year: 1403, Month: 2}, p.View())
	assert.Equal(t, 400.0, p.Snapshot().Placement.MaxHeight, "day grid cap restored")
	assert.Empty(t, p.Changes())
}

func TestNavigation_DoesNotTouchSelection(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/05")

	p.Open()
	p.NextMonth()
	p.NextMonth()
	p.NextYear()
	p.PrevMonth()
	p.EnterYearPicker()
	p.PickYear(1380)
	p.Close()

	assert.Equal(t, date(1403, 1, 5), p.Selection().Date)
	assert.Empty(t, p.Changes(), "navigation never emits")
}

func TestNavigation_MonthWraps(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/12/10")
	p.Open()

	p.NextMonth()
	assert.Equal(t, ViewState{Year: 1404, Month: 1}, p.View())

	p.PrevMonth()
	p.PrevMonth()
	assert.Equal(t, ViewState{Year: 1403, Month: 11}, p.View())
}

func TestNavigation_ClampedAtRangeBounds(t *testing.T) {
	p := newTestPicker(t, func(o *Options) {
		o.MinYear = 1402
		o.MaxYear = 1403
	})
	p.Open()
	require.Equal(t, ViewState{Year: 1403, Month: 1}, p.View())

	s := p.Snapshot()
	assert.False(t, s.CanNextYear)
	assert.True(t, s.CanPrevYear)

	p.NextYear()
	assert.Equal(t, ViewState{Year: 1403, Month: 1}, p.View(), "beyond max year is a no-op")

	p.PrevYear()
	assert.Equal(t, ViewState{Year: 1402, Month: 1}, p.View())

	p.PrevYear()
	assert.Equal(t, ViewState{Year: 1402, Month: 1}, p.View(), "below min year is a no-op")

	p.PrevMonth()
	assert.Equal(t, ViewState{Year: 1402, Month: 1}, p.View(), "month step out of range is a no-op")
	assert.False(t, p.Snapshot().CanPrevMonth)
}

func TestNavigation_YearSteppingDisabled(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.EnableYearNavigation = false })
	p.Open()

	p.NextYear()
	p.PrevYear()

	assert.Equal(t, ViewState{Year: 1403, Month: 1}, p.View())
	assert.False(t, p.Snapshot().CanNextYear)
}

func TestNavigation_IgnoredWhenClosed(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	p.Close()

	p.NextMonth()
	p.NextYear()

	assert.Equal(t, ViewState{Year: 1403, Month: 1}, p.View())
}

func TestYearPicker_RoundTrip(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	p.NextMonth()
	require.Equal(t, ViewState{Year: 1403, Month: 2}, p.View())
	require.Equal(t, 400.0, p.Snapshot().Placement.MaxHeight)

	p.EnterYearPicker()
	require.Equal(t, ModeYearPicker, p.Mode())
	assert.Equal(t, 560.0, p.Snapshot().Placement.MaxHeight, "year picker is taller")

	p.PickYear(1380)

	assert.Equal(t, ModeDayGrid, p.Mode())
	assert.Equal(t, ViewState{Year: 1380, Month: 2}, p.View())
	assert.Equal(t, 400.0, p.Snapshot().Placement.MaxHeight)
}

func TestYearPicker_Toggle(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	p.ToggleYearPicker()
	assert.Equal(t, ModeYearPicker, p.Mode())
	p.ToggleYearPicker()
	assert.Equal(t, ModeDayGrid, p.Mode())
	assert.Equal(t, ViewState{Year: 1403, Month: 1}, p.View())
}

func TestYearPicker_Disabled(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.EnableYearSelection = false })
	p.Open()

	p.EnterYearPicker()
	p.ToggleYearPicker()

	assert.Equal(t, ModeDayGrid, p.Mode())
}

func TestYearPicker_OutOfRangeYearIgnored(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	p.EnterYearPicker()

	p.PickYear(1299)
	p.PickYear(1411)

	assert.Equal(t, ModeYearPicker, p.Mode())
	assert.Equal(t, 1403, p.View().Year)
}

func TestYears_Descending(t *testing.T) {
	p := newTestPicker(t, nil)

	years := p.Years()

	require.Len(t, years, 111)
	assert.Equal(t, 1410, years[0])
	assert.Equal(t, 1300, years[len(years)-1])
}

func TestSelectDay_Errors(t *testing.T) {
	p := newTestPicker(t, nil)

	assert.ErrorIs(t, p.SelectDay(1), ErrNotSelectable, "closed")

	p.SetValue("1402/12/01")
	p.Open()
	assert.ErrorIs(t, p.SelectDay(30), ErrDayOutOfRange, "1402 Esfand has 29 days")
	assert.ErrorIs(t, p.SelectDay(0), ErrDayOutOfRange)

	p.EnterYearPicker()
	assert.ErrorIs(t, p.SelectDay(1), ErrNotSelectable, "year picker showing")

	assert.Empty(t, p.Changes())
	assert.Equal(t, ModeYearPicker, p.Mode())
}

func TestSelectDay_SingleEmission(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	require.NoError(t, p.SelectDay(12))
	p.clock.Advance(time.Second)

	assert.Equal(t, []string{"1403/01/12"}, p.Changes())
	assert.ErrorIs(t, p.SelectDay(13), ErrNotSelectable, "popup closed after commit")
}

func TestSelectToday(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1390/06/15")
	p.Open()

	require.NoError(t, p.SelectToday())

	assert.Equal(t, []string{"1403/01/01"}, p.Changes())
	assert.Equal(t, ModeClosed, p.Mode())
	assert.Equal(t, date(1403, 1, 1), p.Selection().Date)
}

func TestSelectToday_OutOfRange(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.MaxYear = 1402 })
	p.Open()

	assert.ErrorIs(t, p.SelectToday(), ErrOutOfRange)
	assert.Equal(t, ModeDayGrid, p.Mode())
	assert.Empty(t, p.Changes())
}

func TestSync_EchoSuppression(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1402/10/10")
	require.Equal(t, date(1402, 10, 10), p.Selection().Date)

	p.Open()
	require.NoError(t, p.SelectDay(15))
	require.Equal(t, []string{"1402/10/15"}, p.Changes())
	assert.True(t, p.Snapshot().Guarded)

	// A late re-render still carrying the old value must not flip the selection back.
	p.SetValue("1402/10/10")
	assert.Equal(t, date(1402, 10, 15), p.Selection().Date)

	// The echo of the emitted value is harmless.
	p.SetValue("1402/10/15")
	assert.Equal(t, date(1402, 10, 15), p.Selection().Date)

	p.clock.Advance(100 * time.Millisecond)
	assert.False(t, p.Snapshot().Guarded)
	assert.Equal(t, date(1402, 10, 15), p.Selection().Date, "echo reconciled without change")

	// After the guard window a genuinely different value wins.
	p.SetValue("1400/05/05")
	assert.Equal(t, date(1400, 5, 5), p.Selection().Date)
	assert.Len(t, p.Changes(), 1, "adopting external values never emits")
}

func TestSync_SynchronousEchoFromOnChange(t *testing.T) {
	p := newTestPicker(t, nil)
	p.echo = true
	p.SetValue("")
	p.Open()

	require.NoError(t, p.SelectDay(7))

	assert.Equal(t, date(1403, 1, 7), p.Selection().Date)
	p.clock.Advance(time.Second)
	assert.Equal(t, date(1403, 1, 7), p.Selection().Date)
	assert.Equal(t, []string{"1403/01/07"}, p.Changes())

	// The echo updated the last external value, so a reset to empty applies.
	p.SetValue("")
	assert.Nil(t, p.Selection().Date)
}

func TestSync_ExternalChangeDuringGuardAppliedAfterwards(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	require.NoError(t, p.SelectDay(3))

	p.SetValue("1399/01/01")
	assert.Equal(t, date(1403, 1, 3), p.Selection().Date, "guard window keeps the local choice")

	p.clock.Advance(99 * time.Millisecond)
	assert.Equal(t, date(1403, 1, 3), p.Selection().Date)

	p.clock.Advance(time.Millisecond)
	assert.Equal(t, date(1399, 1, 1), p.Selection().Date, "reconciled once the window elapsed")
}

func TestSync_PendingSupersededByLaterRender(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/01")
	p.Open()
	require.NoError(t, p.SelectDay(5))

	// The owner briefly renders another value, then returns to the one it held.
	p.SetValue("1399/01/01")
	p.SetValue("1403/01/01")

	p.clock.Advance(time.Second)
	assert.False(t, p.Snapshot().Guarded)
	assert.Equal(t, date(1403, 1, 5), p.Selection().Date, "superseded value is not adopted")

	// The next genuine change still applies.
	p.SetValue("1399/01/01")
	assert.Equal(t, date(1399, 1, 1), p.Selection().Date)
}

func TestSync_LatestPendingValueWins(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	require.NoError(t, p.SelectDay(3))

	p.SetValue("1399/01/01")
	p.SetValue("1398/02/02")

	p.clock.Advance(time.Second)
	assert.Equal(t, date(1398, 2, 2), p.Selection().Date)
}

func TestSync_ExternalReset(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/05")
	require.NotNil(t, p.Selection().Date)

	p.SetValue("")

	assert.Nil(t, p.Selection().Date)
	assert.Equal(t, "", p.Snapshot().Value)
}

func TestSync_InvalidValueTreatedAsAbsent(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/05")

	assert.NotPanics(t, func() { p.SetValue("not-a-date") })
	assert.Nil(t, p.Selection().Date)

	p.SetValue("1402/12/30") // no such day
	assert.Nil(t, p.Selection().Date)

	p.SetValue("۱۴۰۳/۰۱/۰۵")
	assert.Equal(t, date(1403, 1, 5), p.Selection().Date, "persian digits parse")
}

func TestSync_SameValueIgnored(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/05")
	p.Open()
	require.NoError(t, p.SelectDay(9))
	p.clock.Advance(time.Second)

	// The owner never echoed; re-sending the value it already gave is not a change.
	p.SetValue("1403/01/05")
	assert.Equal(t, date(1403, 1, 9), p.Selection().Date)
}

func TestOutsideClick_DeferredSubscription(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	// The click that opened the popup is still propagating.
	assert.Equal(t, 0, p.host.Click(TargetOutside))
	p.clock.Advance(time.Second)
	assert.Equal(t, ModeDayGrid, p.Mode(), "opening click must not close the popup")
}

func TestOutsideClick_ClosesAfterDelay(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/01/05")
	p.Open()
	p.clock.Advance(100 * time.Millisecond)
	require.Equal(t, 1, p.host.ListenerCount(EventClick))

	p.host.Click(TargetAnchor)
	p.host.Click(TargetPopup)
	p.clock.Advance(time.Second)
	assert.Equal(t, ModeDayGrid, p.Mode(), "clicks on anchor or popup are not outside")

	p.host.Click(TargetOutside)
	assert.Equal(t, ModeDayGrid, p.Mode(), "close is deferred")
	p.clock.Advance(10 * time.Millisecond)

	assert.Equal(t, ModeClosed, p.Mode())
	assert.Empty(t, p.Changes())
	assert.Equal(t, date(1403, 1, 5), p.Selection().Date)
	for _, kind := range []EventKind{EventClick, EventResize, EventScroll, EventKeyDown} {
		assert.Equal(t, 0, p.host.ListenerCount(kind), "listener %s removed on close", kind)
	}
}

func TestOutsideClick_SelectionInSameGestureWins(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	p.clock.Advance(100 * time.Millisecond)

	p.host.Click(TargetOutside)
	require.NoError(t, p.SelectDay(20))
	p.clock.Advance(time.Second)

	assert.Equal(t, []string{"1403/01/20"}, p.Changes())
	assert.Equal(t, ModeClosed, p.Mode())
}

func TestOutsideClick_StaleCycleIgnored(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	p.Close()
	p.Open()

	// The first cycle's listener timer was cancelled; only the new one attaches.
	p.clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, p.host.ListenerCount(EventClick))
}

func TestEscapeCloses(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	p.host.PressKey("Enter")
	assert.Equal(t, ModeDayGrid, p.Mode())

	p.host.PressKey(KeyEscape)
	assert.Equal(t, ModeClosed, p.Mode())
	assert.Empty(t, p.Changes())
}

func TestPlacement_RecomputedOnResizeAndScroll(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	require.Equal(t, 100.0, p.Snapshot().Placement.Left)

	p.host.Resize(placement.Viewport{Width: 400, Height: 800})
	assert.Equal(t, 64.0, p.Snapshot().Placement.Left, "shifted to stay 16px inside")

	p.host.Scroll(placement.Rect{Top: 700, Left: 50, Width: 240, Height: 40})
	pl := p.Snapshot().Placement
	assert.True(t, pl.Above, "flipped above near the bottom edge")
	assert.Equal(t, 292.0, pl.Top)
}

func TestPlacement_AnchorDetachedClosesPopup(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	p.host.DetachAnchor()
	p.host.Resize(placement.Viewport{Width: 1000, Height: 700})

	assert.Equal(t, ModeClosed, p.Mode())
	assert.Nil(t, p.Snapshot().Placement)

	p.Open()
	assert.Equal(t, ModeClosed, p.Mode(), "cannot open without a measurable anchor")
}

func TestUnmount_DuringGuardWindow(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()
	require.NoError(t, p.SelectDay(4))

	p.Unmount()
	assert.Equal(t, 0, p.clock.Pending(), "all timers disarmed")
	assert.NotPanics(t, func() { p.clock.Advance(time.Second) })

	p.SetValue("1399/01/01")
	p.Open()
	assert.Equal(t, ModeClosed, p.Mode())
	assert.Equal(t, date(1403, 1, 4), p.Selection().Date)
	assert.NotPanics(t, p.Unmount)
}

func TestUnmount_WhileOpenReleasesHost(t *testing.T) {
	p := newTestPicker(t, nil)
	p.Open()

	p.Unmount()

	assert.Equal(t, ModeClosed, p.Mode())
	assert.Equal(t, 0, p.host.ListenerCount(EventResize))
	p.clock.Advance(time.Second)
	assert.Equal(t, 0, p.host.ListenerCount(EventClick))
}

func TestShowTime(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.ShowTime = true })

	require.NoError(t, p.SetTime(14, 30))
	assert.Empty(t, p.Changes(), "editing time without a date does not commit")

	p.Open()
	require.NoError(t, p.SelectDay(5))
	assert.Equal(t, []string{"1403/01/05 14:30"}, p.Changes())

	require.NoError(t, p.SetTime(9, 5))
	assert.Equal(t, []string{"1403/01/05 14:30", "1403/01/05 09:05"}, p.Changes())
	assert.Equal(t, "۵ فروردین ۱۴۰۳ - ۰۹:۰۵", p.Snapshot().Display)

	require.NoError(t, p.SetTime(9, 5))
	assert.Len(t, p.Changes(), 2, "unchanged time is not a new commit")

	assert.ErrorIs(t, p.SetTime(24, 0), jalaali.ErrInvalidTime)
}

func TestShowTime_AdoptsExternalTime(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.ShowTime = true })

	p.SetValue("1403/02/10 08:15")

	s := p.Snapshot()
	require.NotNil(t, s.Selection.Time)
	assert.Equal(t, jalaali.TimeOfDay{Hour: 8, Minute: 15}, *s.Selection.Time)
	assert.Equal(t, jalaali.TimeOfDay{Hour: 8, Minute: 15}, s.EditTime)
	assert.Equal(t, "1403/02/10 08:15", s.Value)
}

func TestTimeIgnoredWithoutShowTime(t *testing.T) {
	p := newTestPicker(t, nil)
	p.SetValue("1403/02/10 08:15")

	assert.Nil(t, p.Selection().Time)
	assert.Equal(t, "1403/02/10", p.Snapshot().Value)
}

func TestDisabled(t *testing.T) {
	p := newTestPicker(t, func(o *Options) { o.Disabled = true })

	p.Open()
	assert.Equal(t, ModeClosed, p.Mode())

	p.SetDisabled(false)
	p.Open()
	assert.Equal(t, ModeDayGrid, p.Mode())

	p.SetDisabled(true)
	assert.Equal(t, ModeClosed, p.Mode())
}

func TestSnapshot_DisplayAndPlaceholder(t *testing.T) {
	p := newTestPicker(t, nil)

	s := p.Snapshot()
	assert.Equal(t, "", s.Display)
	assert.Equal(t, "انتخاب تاریخ", s.Placeholder)
	assert.Equal(t, jalaali.MustNew(1403, 1, 1), s.Today)

	p.SetValue("1403/01/05")
	assert.Equal(t, "۵ فروردین ۱۴۰۳", p.Snapshot().Display)
}

func TestSignals_PublishedOnCommit(t *testing.T) {
	key := "test-" + t.Name()
	t.Cleanup(func() { signals.RemoveListeners(key) })

	var mu sync.Mutex
	var committed []signals.DateCommittedData
	var closed []signals.PickerClosedData
	signals.OnDateCommitted(func(ctx context.Context, data signals.DateCommittedData) {
		mu.Lock()
		defer mu.Unlock()
		committed = append(committed, data)
	}, key)
	signals.OnPickerClosed(func(ctx context.Context, data signals.PickerClosedData) {
		mu.Lock()
		defer mu.Unlock()
		if data.PickerID == t.Name() {
			closed = append(closed, data)
		}
	}, key)

	p := newTestPicker(t, nil)
	p.Open()
	require.NoError(t, p.SelectDay(5))

	mu.Lock()
	defer mu.Unlock()
	var mine []signals.DateCommittedData
	for _, c := range committed {
		if c.PickerID == t.Name() {
			mine = append(mine, c)
		}
	}
	assert.Equal(t, []signals.DateCommittedData{{PickerID: t.Name(), Value: "1403/01/05", Source: SourceDay}}, mine)
	assert.Equal(t, []signals.PickerClosedData{{PickerID: t.Name(), Reason: ReasonCommit}}, closed)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "closed", ModeClosed.String())
	assert.Equal(t, "day_grid", ModeDayGrid.String())
	assert.Equal(t, "year_picker", ModeYearPicker.String())
	assert.False(t, ModeClosed.IsOpen())
	assert.True(t, ModeYearPicker.IsOpen())
}

func TestMode_UnmarshalText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("year_picker")))
	assert.Equal(t, ModeYearPicker, m)

	assert.Error(t, m.UnmarshalText([]byte("open")))
	assert.Equal(t, ModeYearPicker, m, "failed parse leaves the mode untouched")
}
