package calendar

import (
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"

	"github.com/lululau/calgrid/internal/holidays"
)

// Lunar annotations are only available for the years the upstream library covers.
const (
	MinLunarYear = 1900
	MaxLunarYear = 3000
)

// AnnotatedDay is a grid cell enriched with lunar and holiday metadata.
type AnnotatedDay struct {
	Day
	LunarDayAlias   string
	LunarMonthAlias string
	SolarTerm       string
	HolidayInfo     *holidays.Info
	hasLunarData    bool
}

// SecondaryLabel selects the string that should be rendered beneath the
// Gregorian date. Solar terms take precedence, followed by lunar month names
// whenever it is the first day of a lunar month.
func (d AnnotatedDay) SecondaryLabel() string {
	if d.SolarTerm != "" {
		return d.SolarTerm
	}
	if d.LunarDayAlias == "初一" && d.LunarMonthAlias != "" {
		return d.LunarMonthAlias
	}
	return d.LunarDayAlias
}

// HasLunarData reports whether lunar metadata was successfully calculated.
func (d AnnotatedDay) HasLunarData() bool {
	return d.hasLunarData
}

// MonthView is a month laid out into weeks starting on WeekStart.
type MonthView struct {
	View
	WeekStart time.Weekday
	Title     string
	Days      []AnnotatedDay
	Weeks     [][]AnnotatedDay
	Lunar     bool
}

// Service materialises month and year views.
type Service struct {
	now       func() time.Time
	weekStart time.Weekday
	lunar     bool
	holidays  holidays.Table
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithWeekStart sets the first column of every grid.
func WithWeekStart(wd time.Weekday) Option {
	return func(s *Service) {
		s.weekStart = wd
	}
}

// WithLunar enables Chinese lunar labels.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// WithHolidays attaches holiday data to every generated day.
func WithHolidays(table holidays.Table) Option {
	return func(s *Service) {
		s.holidays = table
	}
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the injected clock truncated to midnight.
func (s *Service) Today() time.Time {
	return Midnight(s.now())
}

// WeekStart returns the configured first weekday.
func (s *Service) WeekStart() time.Weekday {
	return s.weekStart
}

// Holidays returns the attached holiday table, if any.
func (s *Service) Holidays() holidays.Table {
	return s.holidays
}

// Month builds the MonthView for v. Out-of-range months roll over.
func (s *Service) Month(v View) MonthView {
	v = v.Normalize()
	grid := Grid(v.Month, v.Year, s.weekStart)

	days := make([]AnnotatedDay, len(grid))
	for i, d := range grid {
		days[i] = s.annotate(d)
	}
	return MonthView{
		View:      v,
		WeekStart: s.weekStart,
		Title:     v.Title(),
		Days:      days,
		Weeks:     Weeks(days),
		Lunar:     s.lunar,
	}
}

// Year returns the twelve MonthViews of year.
func (s *Service) Year(year int) []MonthView {
	months := make([]MonthView, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, s.Month(View{Year: year, Month: m}))
	}
	return months
}

func (s *Service) annotate(d Day) AnnotatedDay {
	out := AnnotatedDay{Day: d}
	if s.holidays != nil {
		out.HolidayInfo = s.holidays.Lookup(d.Date)
	}
	if !s.lunar || d.Date.Year() < MinLunarYear || d.Date.Year() > MaxLunarYear {
		return out
	}

	day := d.Date
	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	out.LunarDayAlias = cal.Lunar.DayAlias()
	out.LunarMonthAlias = cal.Lunar.MonthAlias()
	out.hasLunarData = true
	if term := cal.Solar.CurrentSolarterm; term != nil && term.IsInDay(&day) {
		out.SolarTerm = term.Alias()
	}
	return out
}
