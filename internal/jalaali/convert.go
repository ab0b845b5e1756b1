// Package jalaali implements the Jalaali (Persian solar) civil calendar:
// leap years, month lengths and exact conversion to and from the Gregorian
// calendar through Julian Day Numbers.
package jalaali

import (
	"fmt"
	"time"
)

// MinSupportedYear and MaxSupportedYear bound the domain of the break table.
const (
	MinSupportedYear = -61
	MaxSupportedYear = 3177
)

// MinGregorianYear and MaxGregorianYear bound the Gregorian years whose every
// day converts into the supported Jalaali domain.
const (
	MinGregorianYear = MinSupportedYear + 622
	MaxGregorianYear = MaxSupportedYear + 620
)

// breaks holds the Jalaali years that start a new leap cycle pattern
// (Borkowski's table). Years before the first and from the last entry on are
// outside the domain of the algorithm.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// yearInfo is what jalCal derives for a single Jalaali year.
type yearInfo struct {
	leap  int // years since the last leap year, 0 means jy itself is leap
	gy    int // Gregorian year in which jy begins
	march int // day of March on which Farvardin 1 falls
}

// jalCal computes the leap status of jy and the Gregorian date of its first day.
// It panics for years outside the supported domain: callers validate first.
func jalCal(jy int) yearInfo {
	if jy < MinSupportedYear || jy > MaxSupportedYear {
		panic(fmt.Sprintf("jalaali: year %d outside supported domain [%d, %d]", jy, MinSupportedYear, MaxSupportedYear))
	}

	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0

	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += (jump/33)*8 + (jump%33)/4
		jp = jm
	}

	n := jy - jp
	leapJ += (n/33)*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	// Leap days in the Gregorian calendar up to the start of gy.
	leapG := gy/4 - ((gy/100+1)*3)/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + ((jump+4)/33)*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return yearInfo{leap: leap, gy: gy, march: march}
}

// IsLeapYear reports whether the Jalaali year has a 30-day Esfand.
func IsLeapYear(year int) bool {
	return jalCal(year).leap == 0
}

// DaysInMonth returns the length of a Jalaali month: 31 days for the first six
// months, 30 for the next five and 29 or 30 for Esfand.
func DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	}
	panic(fmt.Sprintf("jalaali: month %d out of range", month))
}

// WeekdayOffset maps a Sunday-based weekday onto the Saturday-first Jalaali week.
// Saturday is column 0, Sunday column 1 and Friday column 6.
func WeekdayOffset(w time.Weekday) int {
	if w == time.Saturday {
		return 0
	}
	return int(w) + 1
}

// FirstWeekdayOffset returns how many empty cells precede day 1 of the month
// in a 7-column grid whose first column is Saturday.
func FirstWeekdayOffset(year, month int) int {
	return WeekdayOffset(Date{Year: year, Month: month, Day: 1}.Weekday())
}

// gregorianToJDN converts a proleptic Gregorian date to a Julian Day Number.
func gregorianToJDN(gy, gm, gd int) int {
	d := ((gy+(gm-8)/6+100100)*1461)/4 +
		(153*((gm+9)%12)+2)/5 +
		gd - 34840408
	return d - ((gy+100100+(gm-8)/6)/100*3)/4 + 752
}

// jdnToGregorian is the inverse of gregorianToJDN.
func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += ((4*jdn+183187720)/146097*3)/4*4 - 3908
	i := ((j%1461)/4)*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}

// ToJDN converts a Jalaali date to its Julian Day Number.
func ToJDN(d Date) int {
	info := jalCal(d.Year)
	return gregorianToJDN(info.gy, 3, info.march) +
		(d.Month-1)*31 - (d.Month/7)*(d.Month-7) + d.Day - 1
}

// FromJDN converts a Julian Day Number to a Jalaali date.
func FromJDN(jdn int) Date {
	gy, _, _ := jdnToGregorian(jdn)
	jy := gy - 621
	info := jalCal(jy)
	k := jdn - gregorianToJDN(gy, 3, info.march)

	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		// The day belongs to the tail of the previous Jalaali year.
		jy--
		k += 179
		if info.leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}

// GregorianDate is a calendar day in the proleptic Gregorian calendar.
type GregorianDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Time returns midnight of the day in loc.
func (g GregorianDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(g.Year, g.Month, g.Day, 0, 0, 0, 0, loc)
}

// String formats the date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, int(g.Month), g.Day)
}

// ToGregorian converts a valid Jalaali date to the Gregorian calendar.
func ToGregorian(d Date) GregorianDate {
	gy, gm, gd := jdnToGregorian(ToJDN(d))
	return GregorianDate{Year: gy, Month: time.Month(gm), Day: gd}
}

// FromGregorian converts a Gregorian date to the Jalaali calendar.
func FromGregorian(g GregorianDate) Date {
	return FromJDN(gregorianToJDN(g.Year, int(g.Month), g.Day))
}

// FromTime converts the calendar day of t (in t's own location) to Jalaali.
// t must fall within [MinGregorianYear, MaxGregorianYear].
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return FromGregorian(GregorianDate{Year: y, Month: m, Day: d})
}

// Today returns the Jalaali date of now as observed in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc != nil {
		now = now.In(loc)
	}
	return FromTime(now)
}
