package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.February, 2024, 29},
		{time.February, 2023, 28},
		{time.February, 2000, 29},
		{time.February, 1900, 28},
		{time.January, 2023, 31},
		{time.April, 2023, 30},
		{time.December, 2023, 31},
		{time.Month(14), 2023, 29}, // February 2024
		{time.Month(0), 2024, 31},  // December 2023
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d)=%d want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestDaysInMonthAgreesWithTimePackage(t *testing.T) {
	for year := 1890; year <= 2110; year++ {
		for m := time.January; m <= time.December; m++ {
			want := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if got := DaysInMonth(m, year); got != want {
				t.Fatalf("DaysInMonth(%v, %d)=%d want %d", m, year, got, want)
			}
		}
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		count int
		want  time.Time
	}{
		{"jan 31 to feb non-leap", Date(2021, time.January, 31), 1, Date(2021, time.February, 28)},
		{"jan 31 to feb leap", Date(2024, time.January, 31), 1, Date(2024, time.February, 29)},
		{"mar 31 back to feb", Date(2021, time.March, 31), -1, Date(2021, time.February, 28)},
		{"dec 31 over year end", Date(2021, time.December, 31), 2, Date(2022, time.February, 28)},
		{"plus twelve", Date(2021, time.January, 15), 12, Date(2022, time.January, 15)},
		{"minus twelve", Date(2024, time.February, 29), -12, Date(2023, time.February, 28)},
		{"no clamp needed", Date(2021, time.May, 10), 1, Date(2021, time.June, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.count); !got.Equal(tt.want) {
				t.Fatalf("AddMonths(%s, %d)=%s want %s", tt.in.Format(DateLayout), tt.count, got.Format(DateLayout), tt.want.Format(DateLayout))
			}
		})
	}
}

func TestAddMonthsKeepsTimeOfDay(t *testing.T) {
	in := time.Date(2021, time.January, 31, 13, 45, 0, 0, time.Local)
	got := AddMonths(in, 1)
	if got.Hour() != 13 || got.Minute() != 45 || got.Day() != 28 {
		t.Fatalf("AddMonths lost time of day: %v", got)
	}
}

func TestSameDayBeforeBetween(t *testing.T) {
	a := Date(2021, time.November, 3)
	b := Date(2021, time.November, 9)
	mid := Date(2021, time.November, 5)
	var zero time.Time

	if !IsSameDay(a, time.Date(2021, time.November, 3, 18, 0, 0, 0, time.Local)) {
		t.Errorf("same day with different clock should match")
	}
	if IsSameDay(a, zero) || IsSameDay(zero, a) {
		t.Errorf("zero date must never match")
	}
	if !IsBefore(a, b) || IsBefore(b, a) || IsBefore(a, a) {
		t.Errorf("IsBefore is not strict")
	}
	if IsBefore(zero, a) || IsBefore(a, zero) {
		t.Errorf("IsBefore with zero date must be false")
	}
	if !IsBetweenDays(mid, a, b) || !IsBetweenDays(mid, b, a) {
		t.Errorf("IsBetweenDays should be order independent")
	}
	if IsBetweenDays(a, a, b) || IsBetweenDays(b, a, b) {
		t.Errorf("IsBetweenDays must exclude the endpoints")
	}
	if IsBetweenDays(mid, zero, b) || IsBetweenDays(mid, a, zero) {
		t.Errorf("IsBetweenDays with zero bound must be false")
	}
}

func TestMonthWeekdayOffsetAndGridCount(t *testing.T) {
	if got := MonthWeekdayOffset(time.November, 2021, time.Sunday); got != 1 {
		t.Fatalf("offset Nov 2021 = %d want 1", got)
	}
	if got := GridDayCount(time.November, 2021, time.Sunday); got != 35 {
		t.Fatalf("grid count Nov 2021 = %d want 35", got)
	}
	if got := MonthWeekdayOffset(time.November, 2021, time.Monday); got != 0 {
		t.Fatalf("offset Nov 2021 monday start = %d want 0", got)
	}
	// January 2022 starts on a Saturday and needs six rows from Sunday.
	if got := GridRowCount(time.January, 2022, time.Sunday); got != 6 {
		t.Fatalf("rows Jan 2022 = %d want 6", got)
	}
	if got := GridRowCount(time.January, 2022, time.Saturday); got != 5 {
		t.Fatalf("rows Jan 2022 saturday start = %d want 5", got)
	}
	// February 2015 fits four rows exactly.
	if got := GridDayCount(time.February, 2015, time.Sunday); got != 28 {
		t.Fatalf("grid count Feb 2015 = %d want 28", got)
	}
}

func TestIsLastRow(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"jan 29 2022", Date(2022, time.January, 29), false},
		{"jan 30 2022", Date(2022, time.January, 30), true},
		{"jan 31 2022", Date(2022, time.January, 31), true},
		{"dec 25 2021", Date(2021, time.December, 25), false},
	}
	for d := 26; d <= 31; d++ {
		tests = append(tests, struct {
			name string
			date time.Time
			want bool
		}{"dec 2021 tail", Date(2021, time.December, d), true})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLastRow(tt.date, time.Sunday); got != tt.want {
				t.Fatalf("IsLastRow(%s)=%v want %v", tt.date.Format(DateLayout), got, tt.want)
			}
		})
	}
}

func TestRowsFollowWeekStart(t *testing.T) {
	// Jan 1 2022 is a Saturday.
	if !IsFirstRow(Date(2022, time.January, 1), time.Sunday) || IsFirstRow(Date(2022, time.January, 2), time.Sunday) {
		t.Fatalf("sunday start: only Jan 1 is on the first row")
	}
	if !IsFirstRow(Date(2022, time.January, 2), time.Monday) || IsFirstRow(Date(2022, time.January, 3), time.Monday) {
		t.Fatalf("monday start: Jan 1-2 are on the first row")
	}
	// Monday start: Jan 31 2022 is a Monday alone on the last row.
	if IsLastRow(Date(2022, time.January, 30), time.Monday) || !IsLastRow(Date(2022, time.January, 31), time.Monday) {
		t.Fatalf("monday start: only Jan 31 is on the last row")
	}
}

func TestWeeksAndWeekend(t *testing.T) {
	if !IsFirstWeek(Date(2021, time.November, 7)) || IsFirstWeek(Date(2021, time.November, 8)) {
		t.Errorf("first week boundary wrong")
	}
	if !IsLastWeek(Date(2021, time.November, 24)) || IsLastWeek(Date(2021, time.November, 23)) {
		t.Errorf("last week boundary wrong")
	}
	if !IsWeekend(Date(2021, time.November, 6)) || !IsWeekend(Date(2021, time.November, 7)) {
		t.Errorf("saturday and sunday are weekend")
	}
	if IsWeekend(Date(2021, time.November, 8)) {
		t.Errorf("monday is not weekend")
	}
}

func TestRangeIncludesInvalidDate(t *testing.T) {
	noWeekends := func(d time.Time) bool { return !IsWeekend(d) }
	mon := Date(2021, time.November, 1)
	fri := Date(2021, time.November, 5)
	sat := Date(2021, time.November, 6)

	if RangeIncludesInvalidDate(mon, fri, noWeekends) {
		t.Errorf("mon..fri has no weekend")
	}
	if !RangeIncludesInvalidDate(mon, sat, noWeekends) {
		t.Errorf("mon..sat includes saturday")
	}
	if !RangeIncludesInvalidDate(sat, mon, noWeekends) {
		t.Errorf("reversed range should be normalized")
	}
	if RangeIncludesInvalidDate(time.Time{}, sat, noWeekends) {
		t.Errorf("open range is never invalid")
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"0", time.Sunday},
		{"6", time.Saturday},
		{"mon", time.Monday},
		{"Monday", time.Monday},
		{"tu", time.Tuesday},
		{"th", time.Thursday},
		{" sat ", time.Saturday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseWeekday(%q)=%v,%v want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"7", "-1", "s", "funday", ""} {
		if _, err := ParseWeekday(bad); !errors.Is(err, ErrInvalidWeekday) {
			t.Errorf("ParseWeekday(%q) error = %v, want ErrInvalidWeekday", bad, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2021-11-05")
	if err != nil || !got.Equal(Date(2021, time.November, 5)) {
		t.Fatalf("ParseDate = %v, %v", got, err)
	}
	if _, err := ParseDate("11/05/2021"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestViewNormalize(t *testing.T) {
	tests := []struct {
		in   View
		want View
	}{
		{View{Year: 2021, Month: 16}, View{Year: 2022, Month: time.April}},
		{View{Year: 2021, Month: 0}, View{Year: 2020, Month: time.December}},
		{View{Year: 2021, Month: -12}, View{Year: 2019, Month: time.December}},
		{View{Year: 2021, Month: 25}, View{Year: 2023, Month: time.January}},
		{View{Year: 2021, Month: time.May}, View{Year: 2021, Month: time.May}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%+v.Normalize()=%+v want %+v", tt.in, got, tt.want)
		}
	}
	v := View{Year: 2021, Month: time.December}
	if v.Next() != (View{Year: 2022, Month: time.January}) || v.Previous() != (View{Year: 2021, Month: time.November}) {
		t.Errorf("Next/Previous wrong around December")
	}
	if !v.Previous().Before(v) || v.Before(v) || !v.Before(v.NextYear().Previous()) {
		t.Errorf("Before ordering wrong")
	}
}
