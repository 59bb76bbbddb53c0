package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/calgrid/internal/calendar"
	"github.com/lululau/calgrid/internal/render"
)

func testService() *calendar.Service {
	now := time.Date(2021, time.November, 15, 9, 0, 0, 0, time.Local)
	return calendar.NewService(calendar.WithNow(func() time.Time { return now }))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func newTestModel(t *testing.T, opts Options) model {
	t.Helper()
	if opts.Service == nil {
		opts.Service = testService()
	}
	m, err := newModel(opts)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return m
}

func TestKeyboardSelectsDay(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		runes("j"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	want := calendar.Date(2021, time.November, 23)
	if got := m.result().Value; !got.Equal(want) {
		t.Fatalf("value = %v want %v", got, want)
	}
	if m.result().Confirmed {
		t.Fatalf("not confirmed until esc")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.result().Confirmed {
		t.Fatalf("esc should confirm")
	}
}

func TestPagingMovesDisplay(t *testing.T) {
	m := newTestModel(t, Options{Value: calendar.Date(2021, time.January, 31)})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if got := m.ctrl.Display(); got != (calendar.View{Year: 2021, Month: time.February}) {
		t.Fatalf("display = %+v", got)
	}
	if !m.ctrl.Selected().Equal(calendar.Date(2021, time.February, 28)) {
		t.Fatalf("selected = %v", m.ctrl.Selected())
	}

	m = send(t, m, runes("}"))
	if got := m.ctrl.Display(); got != (calendar.View{Year: 2022, Month: time.February}) {
		t.Fatalf("display after year step = %+v", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp, Alt: true})
	if got := m.ctrl.Display(); got != (calendar.View{Year: 2021, Month: time.February}) {
		t.Fatalf("display after alt+pgup = %+v", got)
	}
}

func TestBlockedNavigationShowsStatus(t *testing.T) {
	m := newTestModel(t, Options{
		Value:       calendar.Date(2021, time.November, 12),
		DateEnabled: func(d time.Time) bool { return !calendar.IsWeekend(d) },
	})
	m = send(t, m, runes("l"))
	if !m.ctrl.Selected().Equal(calendar.Date(2021, time.November, 12)) {
		t.Fatalf("selection moved onto a disabled day")
	}
	if !strings.Contains(m.host.status, "2021-11-13") {
		t.Fatalf("status = %q", m.host.status)
	}
}

func TestStrictRangeRejectsDisabledDays(t *testing.T) {
	opts := Options{
		Range:       &calendar.Range{},
		DateEnabled: func(d time.Time) bool { return !calendar.IsWeekend(d) },
		StrictRange: true,
	}
	m := newTestModel(t, opts)
	view := m.monthView()

	// Nov 12 (Friday) is column 5 of the second week, Nov 16 column 2 of the third.
	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}
	if d, _ := render.HitTest(view, 5*render.CellWidth, 3); d.Key != "2021-11-12" {
		t.Fatalf("geometry changed, got %s", d.Key)
	}
	m = send(t, m, click(5*render.CellWidth, 3), click(2*render.CellWidth, 4))
	if !m.result().Range.IsZero() {
		t.Fatalf("range across a weekend should be rejected, got %v", m.result().Range)
	}
	if !strings.Contains(m.host.status, "disabled") {
		t.Fatalf("status = %q", m.host.status)
	}

	opts.StrictRange = false
	m = send(t, newTestModel(t, opts), click(2*render.CellWidth, 4), click(5*render.CellWidth, 3))
	if got := m.result().Range.String(); got != "2021-11-12..2021-11-16" {
		t.Fatalf("range = %q", got)
	}
}

func TestMouseHoverAndFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionMotion})
	if !m.ctrl.Hovered().Equal(calendar.Date(2021, time.November, 1)) {
		t.Fatalf("hovered = %v", m.ctrl.Hovered())
	}
	m = send(t, m, tea.MouseMsg{X: 4, Y: 0, Action: tea.MouseActionMotion})
	if !m.ctrl.Hovered().IsZero() {
		t.Fatalf("leaving the grid clears hover")
	}

	m = send(t, m, tea.BlurMsg{})
	if m.ctrl.FocusWithin() {
		t.Fatalf("blur should clear focus")
	}
	m = send(t, m, tea.FocusMsg{})
	if !m.ctrl.FocusWithin() {
		t.Fatalf("focus should set focus")
	}
}

func TestGoToPrompt(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, runes("y"), runes("2024 2"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.ctrl.Display(); got != (calendar.View{Year: 2024, Month: time.February}) {
		t.Fatalf("display = %+v", got)
	}
	if m.inputMode != inputNone {
		t.Fatalf("prompt should close")
	}

	m = send(t, m, runes("y"), runes("2024 13"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputMode == inputNone || m.host.status == "" {
		t.Fatalf("bad month should keep the prompt open with an error")
	}
}

func TestParseGoTo(t *testing.T) {
	current := calendar.View{Year: 2021, Month: time.November}
	tests := []struct {
		in      string
		want    calendar.View
		wantErr bool
	}{
		{"2030", calendar.View{Year: 2030, Month: time.November}, false},
		{"2030 3", calendar.View{Year: 2030, Month: time.March}, false},
		{"", calendar.View{}, true},
		{"abc", calendar.View{}, true},
		{"2030 0", calendar.View{}, true},
		{"1 2 3", calendar.View{}, true},
	}
	for _, tt := range tests {
		got, err := parseGoTo(tt.in, current)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseGoTo(%q)=%+v,%v", tt.in, got, err)
		}
	}
}

func TestViewShowsSummary(t *testing.T) {
	SetNoColor(true)
	render.SetNoColor(true)
	t.Cleanup(func() {
		SetNoColor(false)
		render.SetNoColor(false)
	})
	m := newTestModel(t, Options{Value: calendar.Date(2021, time.November, 10)})
	out := m.View()
	if !strings.Contains(out, "November 2021") || !strings.Contains(out, "date: 2021-11-10") {
		t.Fatalf("view:\n%s", out)
	}
	if !strings.Contains(out, "[10]") {
		t.Fatalf("selected day should be marked:\n%s", out)
	}
	if !strings.Contains(out, "focus: Wed Nov 10 2021") {
		t.Fatalf("highlighted day should be labelled:\n%s", out)
	}
}
