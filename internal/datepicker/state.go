package datepicker

import (
	"fmt"
	"time"

	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/placement"
)

// Mode is the popup lifecycle state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeDayGrid
	ModeYearPicker
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeDayGrid:
		return "day_grid"
	case ModeYearPicker:
		return "year_picker"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText renders the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name produced by MarshalText.
func (m *Mode) UnmarshalText(text []byte) error {
	for _, candidate := range []Mode{ModeClosed, ModeDayGrid, ModeYearPicker} {
		if candidate.String() == string(text) {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown picker mode %q", text)
}

// IsOpen reports whether the popup is showing.
func (m Mode) IsOpen() bool { return m != ModeClosed }

// ViewState is the month rendered in the grid.
type ViewState struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Next returns the following month, carrying into the next year after Esfand.
func (v ViewState) Next() ViewState {
	if v.Month == 12 {
		return ViewState{Year: v.Year + 1, Month: 1}
	}
	return ViewState{Year: v.Year, Month: v.Month + 1}
}

// Prev returns the preceding month, borrowing from the previous year before Farvardin.
func (v ViewState) Prev() ViewState {
	if v.Month == 1 {
		return ViewState{Year: v.Year - 1, Month: 12}
	}
	return ViewState{Year: v.Year, Month: v.Month - 1}
}

// Selection is the committed user choice.
type Selection struct {
	Date *jalaali.Date      `json:"date,omitempty"`
	Time *jalaali.TimeOfDay `json:"time,omitempty"`
}

// Options configures a Controller.
type Options struct {
	ID                   string
	MinYear              int
	MaxYear              int
	EnableYearSelection  bool
	EnableYearNavigation bool
	ShowTime             bool
	Disabled             bool
	Placeholder          string
	Location             *time.Location
	DigitStyle           constants.DigitStyle
	// GuardWindow is how long a local commit stays authoritative over the
	// externally supplied value.
	GuardWindow time.Duration
	// ListenerDelay postpones the outside-click subscription after opening.
	ListenerDelay time.Duration
	// DismissDelay postpones the close that follows an outside click.
	DismissDelay time.Duration
	Placement    placement.Options
}

// DefaultOptions returns the stock configuration: years 1300 to 1410, year
// selection and navigation enabled, a 100ms guard window and listener delay.
func DefaultOptions() Options {
	return Options{
		MinYear:              1300,
		MaxYear:              1410,
		EnableYearSelection:  true,
		EnableYearNavigation: true,
		Placeholder:          "انتخاب تاریخ",
		Location:             time.UTC,
		DigitStyle:           constants.DigitStylePersian,
		GuardWindow:          100 * time.Millisecond,
		ListenerDelay:        100 * time.Millisecond,
		DismissDelay:         10 * time.Millisecond,
		Placement:            placement.DefaultOptions(),
	}
}

// State is a read-only snapshot of a Controller, suitable for rendering.
type State struct {
	ID            string               `json:"id"`
	Mode          Mode                 `json:"mode"`
	View          ViewState            `json:"view"`
	Selection     Selection            `json:"selection"`
	EditTime      jalaali.TimeOfDay    `json:"edit_time"`
	Value         string               `json:"value"`
	Display       string               `json:"display"`
	Placeholder   string               `json:"placeholder"`
	Placement     *placement.Placement `json:"placement,omitempty"`
	Today         jalaali.Date         `json:"today"`
	MinYear       int                  `json:"min_year"`
	MaxYear       int                  `json:"max_year"`
	YearSelection bool                 `json:"year_selection"`
	ShowTime      bool                 `json:"show_time"`
	Disabled      bool                 `json:"disabled"`
	CanPrevMonth  bool                 `json:"can_prev_month"`
	CanNextMonth  bool                 `json:"can_next_month"`
	CanPrevYear   bool                 `json:"can_prev_year"`
	CanNextYear   bool                 `json:"can_next_year"`
	Guarded       bool                 `json:"guarded"`
}
