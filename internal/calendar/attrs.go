package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Range is a pair of endpoints in click order; End may precede Start.
type Range struct {
	Start time.Time
	End   time.Time
}

// Reversed reports whether the endpoints were picked backwards.
func (r Range) Reversed() bool {
	return IsBefore(r.End, r.Start)
}

// Normalized returns the range with the earlier endpoint first.
func (r Range) Normalized() Range {
	if r.Reversed() {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsZero reports whether neither endpoint is set.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// String renders "2021-11-03..2021-11-09"; unset endpoints print as "?".
func (r Range) String() string {
	return formatOrUnknown(r.Start) + ".." + formatOrUnknown(r.End)
}

// State is everything the deriver needs to know about the current selection.
type State struct {
	Today       time.Time
	WeekStart   time.Weekday
	Selected    time.Time
	Highlighted time.Time
	Range       Range
	RangeMode   bool
	FocusWithin bool
	Enabled     func(time.Time) bool
}

// Flag is a single display attribute of a day cell.
type Flag uint32

const (
	FlagDifferentMonth Flag = 1 << iota
	FlagDayFirst
	FlagDayLast
	FlagFirstRow
	FlagLastRow
	FlagFirstWeek
	FlagLastWeek
	FlagFirstColumn
	FlagLastColumn
	FlagToday
	FlagDisabled
	FlagWeekend
	FlagSelected
	FlagHighlighted
	FlagHighlightedInactive
	FlagRangeStart
	FlagRangeEnd
	FlagInRange
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagDifferentMonth, "different-month"},
	{FlagDayFirst, "day-first"},
	{FlagDayLast, "day-last"},
	{FlagFirstRow, "first-row"},
	{FlagLastRow, "last-row"},
	{FlagFirstWeek, "first-week"},
	{FlagLastWeek, "last-week"},
	{FlagFirstColumn, "first-column"},
	{FlagLastColumn, "last-column"},
	{FlagToday, "today"},
	{FlagDisabled, "disabled"},
	{FlagWeekend, "weekend"},
	{FlagSelected, "selected"},
	{FlagHighlighted, "highlighted"},
	{FlagHighlightedInactive, "highlighted-inactive"},
	{FlagRangeStart, "range-start"},
	{FlagRangeEnd, "range-end"},
	{FlagInRange, "in-range"},
}

// Flags is the set of attributes derived for one cell.
type Flags Flag

// Has reports whether every flag in f is set.
func (fs Flags) Has(f Flag) bool {
	return Flag(fs)&f == f
}

func (fs *Flags) set(f Flag) {
	*fs |= Flags(f)
}

// Names lists the set flags in declaration order.
func (fs Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// Attributes maps "data-<name>" to true for every set flag. Absent keys mean
// the flag does not apply.
func (fs Flags) Attributes() map[string]bool {
	attrs := make(map[string]bool)
	for _, name := range fs.Names() {
		attrs["data-"+name] = true
	}
	return attrs
}

// DayAttributes returns the full attribute set of one cell: every set flag
// as "true", plus the cell's value, its day of month, its weekday (0 is
// Sunday) and an accessible label.
func DayAttributes(day Day, st State) map[string]string {
	attrs := map[string]string{
		"data-value":       SerializeDate(day.Date),
		"data-date-number": strconv.Itoa(day.Date.Day()),
		"data-day-number":  strconv.Itoa(int(day.Date.Weekday())),
		"aria-label":       Label(day.Date),
	}
	for name := range Derive(day, st).Attributes() {
		attrs[name] = "true"
	}
	return attrs
}

// SerializeDate encodes date as milliseconds since the Unix epoch at local
// midnight. The zero date encodes as "".
func SerializeDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return strconv.FormatInt(Midnight(date).UnixMilli(), 10)
}

// ParseDateValue reverses SerializeDate.
func ParseDateValue(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date value %q: %w", s, err)
	}
	return Midnight(time.UnixMilli(ms)), nil
}

// Label is the human readable form of date, e.g. "Wed Nov 03 2021".
func Label(date time.Time) string {
	return date.Format("Mon Jan 02 2006")
}

func (fs Flags) String() string {
	return strings.Join(fs.Names(), " ")
}

// Derive computes the display flags of day under st.
func Derive(day Day, st State) Flags {
	var fs Flags
	date := day.Date

	if day.DifferentMonth {
		fs.set(FlagDifferentMonth)
	} else {
		view := ViewOf(date)
		if IsSameDay(date, view.First()) {
			fs.set(FlagDayFirst)
		}
		if IsSameDay(date, view.Last()) {
			fs.set(FlagDayLast)
		}
		if IsFirstRow(date, st.WeekStart) {
			fs.set(FlagFirstRow)
		}
		if IsLastRow(date, st.WeekStart) {
			fs.set(FlagLastRow)
		}
		if IsFirstWeek(date) {
			fs.set(FlagFirstWeek)
		}
		if IsLastWeek(date) {
			fs.set(FlagLastWeek)
		}
		switch date.Weekday() {
		case time.Sunday:
			fs.set(FlagFirstColumn)
		case time.Saturday:
			fs.set(FlagLastColumn)
		}
		if IsSameDay(date, st.Today) {
			fs.set(FlagToday)
		}
	}

	if st.Enabled != nil && !st.Enabled(date) {
		fs.set(FlagDisabled)
	}
	if IsWeekend(date) {
		fs.set(FlagWeekend)
	}
	if !st.RangeMode && IsSameDay(date, st.Selected) {
		fs.set(FlagSelected)
	}
	if IsSameDay(date, st.Highlighted) {
		if st.FocusWithin {
			fs.set(FlagHighlighted)
		} else {
			fs.set(FlagHighlightedInactive)
		}
	}

	if st.RangeMode {
		reversed := st.Range.Reversed()
		if IsSameDay(date, st.Range.Start) {
			if reversed {
				fs.set(FlagRangeEnd)
			} else {
				fs.set(FlagRangeStart)
			}
		}
		if IsSameDay(date, st.Range.End) {
			if reversed {
				fs.set(FlagRangeStart)
			} else {
				fs.set(FlagRangeEnd)
			}
		}
		if IsBetweenDays(date, st.Range.Start, st.Range.End) {
			fs.set(FlagInRange)
		}
	}
	return fs
}

// TabStop reports whether date is the single keyboard-reachable cell.
func TabStop(date time.Time, st State) bool {
	return IsSameDay(date, st.Highlighted)
}

func formatOrUnknown(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(DateLayout)
}
