package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/lululau/calgrid/internal/holidays"
)

func TestMonthGeneratesCompleteWeeks(t *testing.T) {
	now := time.Date(2025, 11, 18, 10, 0, 0, 0, time.Local)
	svc := NewService(WithNow(func() time.Time { return now }))
	view := svc.Month(View{Year: 2025, Month: time.November})
	if view.Month != time.November {
		t.Fatalf("expected November, got %v", view.Month)
	}
	if len(view.Weeks) < 5 {
		t.Fatalf("expected at least 5 weeks, got %d", len(view.Weeks))
	}
	start := view.Weeks[0][0].Date
	if start.Weekday() != time.Sunday {
		t.Fatalf("calendar should start on Sunday, got %v", start.Weekday())
	}
	for i, week := range view.Weeks {
		if len(week) != 7 {
			t.Fatalf("week should have 7 days, got %d", len(week))
		}
		if !week[0].Date.Equal(view.Days[i*7].Date) {
			t.Fatalf("week %d should start at Days[%d]", i, i*7)
		}
	}
	if len(view.Weeks)*7 != len(view.Days) {
		t.Fatalf("%d weeks for %d days", len(view.Weeks), len(view.Days))
	}
	if got := svc.Today(); !got.Equal(Date(2025, time.November, 18)) {
		t.Fatalf("Today should be midnight of the injected clock, got %v", got)
	}
	if view.Title != "November 2025" {
		t.Fatalf("unexpected title %q", view.Title)
	}
}

func TestMonthRespectsWeekStart(t *testing.T) {
	svc := NewService(WithWeekStart(time.Monday))
	view := svc.Month(View{Year: 2025, Month: time.November})
	if got := view.Weeks[0][0].Date.Weekday(); got != time.Monday {
		t.Fatalf("calendar should start on Monday, got %v", got)
	}
	if view.WeekStart != time.Monday {
		t.Fatalf("view should carry its week start")
	}
}

func TestMonthRollsOverOutOfRangeMonth(t *testing.T) {
	svc := NewService()
	view := svc.Month(View{Year: 2024, Month: 13})
	if view.View != (View{Year: 2025, Month: time.January}) {
		t.Fatalf("expected January 2025, got %+v", view.View)
	}
}

func TestYearLoadsAllMonths(t *testing.T) {
	svc := NewService()
	months := svc.Year(2024)
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[1].Month != time.February || len(months[1].Days)%7 != 0 {
		t.Fatalf("unexpected February view %+v", months[1].View)
	}
}

func TestLunarLabels(t *testing.T) {
	svc := NewService(WithLunar(true))
	view := svc.Month(View{Year: 2025, Month: time.November})
	found := false
	for _, d := range view.Days {
		if !d.HasLunarData() {
			t.Fatalf("%s should carry lunar data", d.Key)
		}
		label := d.SecondaryLabel()
		if strings.Contains(label, "初") || strings.Contains(label, "廿") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected lunar day labels in November 2025")
	}

	plain := NewService().Month(View{Year: 2025, Month: time.November})
	if plain.Days[0].HasLunarData() || plain.Days[0].SecondaryLabel() != "" {
		t.Fatalf("lunar data should be opt-in")
	}
}

func TestHolidayAnnotation(t *testing.T) {
	table := holidays.Table{2025: {"10-01": {Holiday: true, Name: "国庆节"}}}
	svc := NewService(WithHolidays(table))
	view := svc.Month(View{Year: 2025, Month: time.October})
	var hit *holidays.Info
	for _, d := range view.Days {
		if d.Key == "2025-10-01" {
			hit = d.HolidayInfo
		} else if d.HolidayInfo != nil {
			t.Fatalf("unexpected holiday on %s", d.Key)
		}
	}
	if hit == nil || !hit.IsHoliday || hit.Name != "国庆节" {
		t.Fatalf("Oct 1 holiday info = %+v", hit)
	}
}

func TestSecondaryLabelPrecedence(t *testing.T) {
	d := AnnotatedDay{LunarDayAlias: "初一", LunarMonthAlias: "十月"}
	if d.SecondaryLabel() != "十月" {
		t.Fatalf("first lunar day should show month alias, got %q", d.SecondaryLabel())
	}
	d.SolarTerm = "立冬"
	if d.SecondaryLabel() != "立冬" {
		t.Fatalf("solar term takes precedence, got %q", d.SecondaryLabel())
	}
}
