// Package calfmt renders Jalaali dates for people and for machines.
package calfmt

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// Saturday first, matching the grid columns.
var dayNames = [7]string{
	"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه",
}

var shortDayNames = [7]string{"ش", "ی", "د", "س", "چ", "پ", "ج"}

// MonthNames returns the twelve Jalaali month names, Farvardin first.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames[:])
	return out
}

// MonthName returns the name of month 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// DayNames returns the seven weekday names, Saturday first.
func DayNames() []string {
	out := make([]string, len(dayNames))
	copy(out, dayNames[:])
	return out
}

// ShortDayNames returns the one-letter weekday headers used by the grid, Saturday first.
func ShortDayNames() []string {
	out := make([]string, len(shortDayNames))
	copy(out, shortDayNames[:])
	return out
}
