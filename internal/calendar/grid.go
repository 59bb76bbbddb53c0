package calendar

import "time"

// Day is one cell of a month grid. Cells taken from the neighbouring months
// to complete the first and last week are marked DifferentMonth.
type Day struct {
	Date           time.Time
	DifferentMonth bool
	Key            string
}

// Grid lays the requested month out into full weeks starting on weekStart.
// month may lie outside 1..12; it is resolved against year first.
func Grid(month time.Month, year int, weekStart time.Weekday) []Day {
	view := ResolveView(month, year)
	offset := MonthWeekdayOffset(view.Month, view.Year, weekStart)
	total := GridDayCount(view.Month, view.Year, weekStart)

	days := make([]Day, total)
	for i := range days {
		days[i] = newDay(Date(view.Year, view.Month, i-offset+1), view)
	}
	return days
}

// DayAt returns the cell at a flat grid index (row*7 + column). Indexes
// outside the grid keep counting into the neighbouring months.
func DayAt(month time.Month, year int, weekStart time.Weekday, index int) Day {
	view := ResolveView(month, year)
	offset := MonthWeekdayOffset(view.Month, view.Year, weekStart)
	return newDay(Date(view.Year, view.Month, index-offset+1), view)
}

// Weeks splits a grid into rows of seven. The rows share days' backing array.
func Weeks[T any](days []T) [][]T {
	weeks := make([][]T, 0, (len(days)+6)/7)
	for start := 0; start < len(days); start += 7 {
		end := min(start+7, len(days))
		weeks = append(weeks, days[start:end])
	}
	return weeks
}

func newDay(date time.Time, view View) Day {
	return Day{
		Date:           date,
		DifferentMonth: !view.Contains(date),
		Key:            date.Format(DateLayout),
	}
}
