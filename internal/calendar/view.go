package calendar

import (
	"fmt"
	"time"
)

// View is the month currently on screen.
type View struct {
	Year  int
	Month time.Month
}

// ResolveView keeps the month within January..December by rolling the year.
// Month 16 of 2021 resolves to April 2022, month 0 to December of the
// previous year.
func ResolveView(month time.Month, year int) View {
	return View{Year: year, Month: month}.Normalize()
}

// ViewOf returns the view containing date.
func ViewOf(date time.Time) View {
	return View{Year: date.Year(), Month: date.Month()}
}

// Normalize keeps the month within 1..12 by rolling the year value.
func (v View) Normalize() View {
	m := int(v.Month) - 1
	v.Year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		v.Year--
	}
	v.Month = time.Month(m + 1)
	return v
}

// Next moves the view to the following month.
func (v View) Next() View {
	v.Month++
	return v.Normalize()
}

// Previous moves the view to the preceding month.
func (v View) Previous() View {
	v.Month--
	return v.Normalize()
}

// NextYear moves to the same month of the following year.
func (v View) NextYear() View {
	v.Year++
	return v
}

// PreviousYear moves to the same month of the preceding year.
func (v View) PreviousYear() View {
	v.Year--
	return v
}

// Before orders views by (year, month).
func (v View) Before(other View) bool {
	if v.Year != other.Year {
		return v.Year < other.Year
	}
	return v.Month < other.Month
}

// First is day 1 of the view.
func (v View) First() time.Time {
	return Date(v.Year, v.Month, 1)
}

// Last is the final day of the view.
func (v View) Last() time.Time {
	return Date(v.Year, v.Month, DaysInMonth(v.Month, v.Year))
}

// Contains reports whether date falls inside the view's month.
func (v View) Contains(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	return date.Year() == v.Year && date.Month() == v.Month
}

// Title renders "November 2021".
func (v View) Title() string {
	return fmt.Sprintf("%s %d", v.Month, v.Year)
}
