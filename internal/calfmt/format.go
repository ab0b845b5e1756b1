package calfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
)

// ErrInvalidValue is returned by ParseValue for strings that are not a machine-format date.
var ErrInvalidValue = errors.New("invalid picker value")

// FormatMachine renders d as YYYY/MM/DD with zero-padded month and day.
//
// This is the form exchanged with form owners. It is lossless, and string
// order matches date order only between dates of the same year: callers that
// compare values across years must parse them first.
func FormatMachine(d jalaali.Date) string {
	return d.String()
}

// FormatValue renders d in machine form, followed by " HH:MM" when t is set.
func FormatValue(d jalaali.Date, t *jalaali.TimeOfDay) string {
	if t == nil {
		return FormatMachine(d)
	}
	return FormatMachine(d) + " " + t.String()
}

// FormatDisplay renders d for people, e.g. "۵ فروردین ۱۴۰۳". With includeTime
// and a non-nil t the clock value is appended as " - ۱۴:۳۰".
func FormatDisplay(d jalaali.Date, t *jalaali.TimeOfDay, includeTime bool, style constants.DigitStyle) string {
	out := fmt.Sprintf("%d %s %d", d.Day, MonthName(d.Month), d.Year)
	if includeTime && t != nil {
		out += " - " + t.String()
	}
	return ApplyDigitStyle(out, style)
}

// FormatMonthTitle renders the header of a month view, e.g. "فروردین ۱۴۰۳".
func FormatMonthTitle(year, month int, style constants.DigitStyle) string {
	return ApplyDigitStyle(fmt.Sprintf("%s %d", MonthName(month), year), style)
}

// FormatNumber renders n with the given digit style.
func FormatNumber(n int, style constants.DigitStyle) string {
	return ApplyDigitStyle(fmt.Sprintf("%d", n), style)
}

// Value is a parsed picker value: a date and an optional time of day.
type Value struct {
	Date jalaali.Date
	Time *jalaali.TimeOfDay
}

// String renders v in machine form.
func (v Value) String() string {
	return FormatValue(v.Date, v.Time)
}

// ParseValue parses "YYYY/MM/DD" or "YYYY/MM/DD HH:MM". Persian and
// Arabic-Indic digits are accepted.
func ParseValue(s string) (Value, error) {
	fields := strings.Fields(ToLatinDigits(s))
	if len(fields) == 0 || len(fields) > 2 {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	d, err := jalaali.ParseDate(fields[0])
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	v := Value{Date: d}

	if len(fields) == 2 {
		t, err := jalaali.ParseTimeOfDay(fields[1])
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		v.Time = &t
	}
	return v, nil
}
