package viewhelpers

import (
	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
)

// CalendarDay represents a single day cell in the month grid.
type CalendarDay struct {
	Date       jalaali.Date          `json:"date"`
	Gregorian  jalaali.GregorianDate `json:"-"`
	DayOfMonth int                   `json:"day"`
	Label      string                `json:"label"` // DayOfMonth in the requested digit style
	IsToday    bool                  `json:"is_today"`
	IsSelected bool                  `json:"is_selected"`
}

// MonthGrid is one Jalaali month laid out in Saturday-first weeks.
// Cells before the first and after the last day are nil.
type MonthGrid struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Title    string           `json:"title"`
	DayNames []string         `json:"day_names"`
	Weeks    [][]*CalendarDay `json:"weeks"`
}

// YearOption is one entry of the year list.
type YearOption struct {
	Year       int    `json:"year"`
	Label      string `json:"label"`
	IsSelected bool   `json:"is_selected"`
}

// LeadingBlanks returns the number of empty cells before day 1 of the month.
func LeadingBlanks(year, month int) int {
	return jalaali.FirstWeekdayOffset(year, month)
}

// BuildMonthGrid lays out the month for a template or API response. selected may be nil.
func BuildMonthGrid(year, month int, selected *jalaali.Date, today jalaali.Date, style constants.DigitStyle) MonthGrid {
	grid := MonthGrid{
		Year:     year,
		Month:    month,
		Title:    calfmt.FormatMonthTitle(year, month, style),
		DayNames: calfmt.ShortDayNames(),
	}

	week := make([]*CalendarDay, LeadingBlanks(year, month), 7)
	for day := 1; day <= jalaali.DaysInMonth(year, month); day++ {
		d := jalaali.Date{Year: year, Month: month, Day: day}
		week = append(week, &CalendarDay{
			Date:       d,
			Gregorian:  jalaali.ToGregorian(d),
			DayOfMonth: day,
			Label:      calfmt.FormatNumber(day, style),
			IsToday:    d == today,
			IsSelected: selected != nil && d == *selected,
		})
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = make([]*CalendarDay, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		grid.Weeks = append(grid.Weeks, week)
	}

	return grid
}

// YearOptions lists the years from max down to min, flagging current.
func YearOptions(min, max, current int, style constants.DigitStyle) []YearOption {
	if max < min {
		return nil
	}
	options := make([]YearOption, 0, max-min+1)
	for y := max; y >= min; y-- {
		options = append(options, YearOption{
			Year:       y,
			Label:      calfmt.FormatNumber(y, style),
			IsSelected: y == current,
		})
	}
	return options
}
