package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form used for day keys and command-line input.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidWeekday indicates a week start that is not a day 0-6 or a day name.
	ErrInvalidWeekday = errors.New("weekday must be 0-6 or a day name")
	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD form")
)

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Midnight drops the wall-clock part of t, keeping its location.
func Midnight(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Date builds a local midnight date. Out-of-range months and days roll over.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// IsSameDay reports whether a and b fall on the same calendar day.
// A zero date never matches.
func IsSameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsBefore reports whether a is strictly before b. Zero dates compare false.
func IsBefore(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Before(b)
}

// IsBetweenDays reports whether day lies strictly between a and b, in either order.
func IsBetweenDays(day, a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	start, end := a, b
	if IsBefore(b, a) {
		start, end = b, a
	}
	return day.After(start) && day.Before(end)
}

// IsLeapYear applies the Gregorian rule, century exception included.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of the month. Months outside 1..12 are
// resolved against year first.
func DaysInMonth(month time.Month, year int) int {
	v := ResolveView(month, year)
	if v.Month == time.February && IsLeapYear(v.Year) {
		return 29
	}
	return daysPerMonth[v.Month-1]
}

// AddMonths shifts date by count months, clamping the day to the last day of
// the destination month instead of overflowing into the next one.
func AddMonths(date time.Time, count int) time.Time {
	target := ResolveView(date.Month()+time.Month(count), date.Year())
	day := min(date.Day(), DaysInMonth(target.Month, target.Year))
	return time.Date(target.Year, target.Month, day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthWeekdayOffset is the number of leading filler cells before day 1 when
// weeks start on weekStart.
func MonthWeekdayOffset(month time.Month, year int, weekStart time.Weekday) int {
	first := Date(year, month, 1)
	return columnOf(first.Weekday(), weekStart)
}

// GridRowCount is the number of full weeks needed to show the month.
func GridRowCount(month time.Month, year int, weekStart time.Weekday) int {
	cells := MonthWeekdayOffset(month, year, weekStart) + DaysInMonth(month, year)
	return (cells + 6) / 7
}

// GridDayCount is GridRowCount expressed in cells.
func GridDayCount(month time.Month, year int, weekStart time.Weekday) int {
	return GridRowCount(month, year, weekStart) * 7
}

// IsFirstRow reports whether date sits on the first row of its month grid.
func IsFirstRow(date time.Time, weekStart time.Weekday) bool {
	offset := MonthWeekdayOffset(date.Month(), date.Year(), weekStart)
	return date.Day()+offset <= 7
}

// IsLastRow reports whether date sits on the last row of its month grid.
func IsLastRow(date time.Time, weekStart time.Weekday) bool {
	month, year := date.Month(), date.Year()
	offset := MonthWeekdayOffset(month, year, weekStart)
	days := DaysInMonth(month, year)
	trailing := GridDayCount(month, year, weekStart) - days - offset
	onLastRow := 7 - trailing
	return date.Day() > days-onLastRow
}

// IsFirstWeek reports whether date is within the first seven days of its month.
func IsFirstWeek(date time.Time) bool {
	return date.Day() <= 7
}

// IsLastWeek reports whether fewer than seven days of the month remain after date.
func IsLastWeek(date time.Time) bool {
	return DaysInMonth(date.Month(), date.Year())-date.Day() < 7
}

// IsWeekend reports Saturday and Sunday regardless of the week start.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// RangeIncludesInvalidDate walks every day from start to end inclusive and
// reports whether any of them is rejected by enabled.
func RangeIncludesInvalidDate(start, end time.Time, enabled func(time.Time) bool) bool {
	if start.IsZero() || end.IsZero() || enabled == nil {
		return false
	}
	if IsBefore(end, start) {
		start, end = end, start
	}
	last := Midnight(end)
	for day := Midnight(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		if !enabled(day) {
			return true
		}
	}
	return false
}

// ParseWeekday accepts 0-6 (Sunday=0) or an English day name or prefix of
// at least two letters.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, n)
		}
		return time.Weekday(n), nil
	}
	if len(s) >= 2 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if strings.HasPrefix(strings.ToLower(wd.String()), s) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ParseDate reads a YYYY-MM-DD date as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func columnOf(wd, weekStart time.Weekday) int {
	return ((int(wd)-int(weekStart))%7 + 7) % 7
}
