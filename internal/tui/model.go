package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/calgrid/internal/calendar"
	"github.com/lululau/calgrid/internal/render"
	"github.com/lululau/calgrid/internal/selection"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

// Options configures the interactive picker.
type Options struct {
	Service *calendar.Service
	// Value and Range seed the picker. A non-nil Range selects range mode.
	Value       time.Time
	Range       *calendar.Range
	DateEnabled func(time.Time) bool
	Display     calendar.View
	// StrictRange rejects committed ranges that span a disabled day.
	StrictRange       bool
	HolidayCacheStale bool
	Logger            *slog.Logger
}

// Result is what the user picked.
type Result struct {
	Value     time.Time
	Range     calendar.Range
	RangeMode bool
	// Confirmed is false when the user quit instead of finishing.
	Confirmed bool
}

// Run starts the interactive Bubble Tea UI and blocks until it exits.
func Run(opts Options) (Result, error) {
	m, err := newModel(opts)
	if err != nil {
		return Result{}, err
	}
	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	final, err := prog.Run()
	if err != nil {
		return Result{}, err
	}
	fm, ok := final.(model)
	if !ok {
		return Result{}, fmt.Errorf("tui: unexpected model %T", final)
	}
	return fm.result(), nil
}

// host holds the controlled values; the controller reports changes here and
// the host writes accepted values back.
type host struct {
	ctrl        *selection.Controller
	value       time.Time
	rng         calendar.Range
	status      string
	confirmed   bool
	strictRange bool
	enabled     func(time.Time) bool
	log         *slog.Logger
}

func (h *host) onChange(d time.Time) {
	h.value = d
	h.ctrl.SetValue(d)
	h.status = ""
}

func (h *host) onRangeStart(d time.Time) {
	h.status = "range from " + d.Format(calendar.DateLayout) + ", pick the other end"
}

func (h *host) onRangeChange(r calendar.Range) {
	if h.strictRange && calendar.RangeIncludesInvalidDate(r.Start, r.End, h.enabled) {
		h.log.Info("rejected range spanning disabled days", "range", r.String())
		h.status = "range " + r.String() + " includes disabled days"
		return
	}
	h.rng = r
	h.ctrl.SetRangeValue(r)
	h.status = ""
}

type inputMode int

const (
	inputNone inputMode = iota
	inputGoTo
)

type model struct {
	svc       *calendar.Service
	ctrl      *selection.Controller
	host      *host
	keys      keyMap
	help      help.Model
	width     int
	inputMode inputMode
	input     textinput.Model
	stale     bool
	log       *slog.Logger
}

func newModel(opts Options) (model, error) {
	if opts.Service == nil {
		opts.Service = calendar.NewService()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	enabled := opts.DateEnabled
	if enabled == nil {
		enabled = func(time.Time) bool { return true }
	}

	h := &host{
		value:       calendar.Midnight(opts.Value),
		strictRange: opts.StrictRange,
		enabled:     enabled,
		log:         logger,
	}
	cfg := selection.Config{
		Value:       opts.Value,
		OnChange:    h.onChange,
		DateEnabled: enabled,
		WeekStart:   opts.Service.WeekStart(),
		Display:     opts.Display,
		Now:         opts.Service.Today,
		Logger:      logger,
	}
	if opts.Range != nil {
		h.rng = *opts.Range
		cfg.RangeValue = opts.Range
		cfg.OnRangeChange = h.onRangeChange
		cfg.OnRangeStartChange = h.onRangeStart
	}
	ctrl, err := selection.New(cfg)
	if err != nil {
		return model{}, err
	}
	h.ctrl = ctrl
	ctrl.SetFocusWithin(true)

	ti := textinput.New()
	ti.Placeholder = "year [month]"
	ti.CharLimit = 16
	ti.Prompt = "> "

	return model{
		svc:   opts.Service,
		ctrl:  ctrl,
		host:  h,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
		stale: opts.HolidayCacheStale,
		log:   logger,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.FocusMsg:
		m.ctrl.SetFocusWithin(true)
	case tea.BlurMsg:
		m.ctrl.SetFocusWithin(false)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.host.confirmed = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.navigate(selection.KeyLeft, selection.Modifiers{})
	case key.Matches(msg, m.keys.Right):
		m.navigate(selection.KeyRight, selection.Modifiers{})
	case key.Matches(msg, m.keys.Up):
		m.navigate(selection.KeyUp, selection.Modifiers{})
	case key.Matches(msg, m.keys.Down):
		m.navigate(selection.KeyDown, selection.Modifiers{})
	case key.Matches(msg, m.keys.PrevYear):
		m.navigate(selection.KeyPageUp, selection.Modifiers{Alt: true})
	case key.Matches(msg, m.keys.NextYear):
		m.navigate(selection.KeyPageDown, selection.Modifiers{Alt: true})
	case key.Matches(msg, m.keys.PrevMonth):
		m.navigate(selection.KeyPageUp, selection.Modifiers{})
	case key.Matches(msg, m.keys.NextMonth):
		m.navigate(selection.KeyPageDown, selection.Modifiers{})
	case key.Matches(msg, m.keys.WeekStart):
		m.navigate(selection.KeyHome, selection.Modifiers{})
	case key.Matches(msg, m.keys.WeekEnd):
		m.navigate(selection.KeyEnd, selection.Modifiers{})
	case key.Matches(msg, m.keys.Select):
		m.selectDay(m.ctrl.Highlighted())
	case key.Matches(msg, m.keys.Today):
		today := m.svc.Today()
		m.ctrl.SetHighlighted(today)
		m.ctrl.SetDisplay(calendar.ViewOf(today))
		m.host.status = ""
	case key.Matches(msg, m.keys.GoTo):
		m.activateInput()
	}
	return m, nil
}

func (m model) navigate(k selection.Key, mods selection.Modifiers) {
	out := m.ctrl.KeyNavigate(k, mods)
	switch {
	case out.Blocked:
		m.host.status = out.Target.Format(calendar.DateLayout) + " is not available"
		return
	case out.Display != nil:
		m.ctrl.SetDisplay(*out.Display)
	}
	if m.ctrl.PendingRangeStart().IsZero() {
		m.host.status = ""
	}
}

func (m model) selectDay(date time.Time) {
	if date.IsZero() {
		return
	}
	if !m.ctrl.Select(date) {
		m.host.status = date.Format(calendar.DateLayout) + " is not available"
		return
	}
	// Picking a filler day brings its month on screen.
	m.ctrl.SetDisplay(calendar.ViewOf(date))
}

func (m model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.SetDisplay(m.ctrl.Display().Previous())
		return
	case tea.MouseButtonWheelDown:
		m.ctrl.SetDisplay(m.ctrl.Display().Next())
		return
	}

	day, ok := render.HitTest(m.monthView(), msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if !ok {
			m.ctrl.ClearHover()
			return
		}
		m.ctrl.Hover(day.Date)
	case tea.MouseActionPress:
		if ok && msg.Button == tea.MouseButtonLeft {
			m.selectDay(day.Date)
		}
	}
}

func (m model) monthView() calendar.MonthView {
	return m.svc.Month(m.ctrl.Display())
}

func (m model) result() Result {
	return Result{
		Value:     m.host.value,
		Range:     m.host.rng,
		RangeMode: m.ctrl.RangeMode(),
		Confirmed: m.host.confirmed,
	}
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	block := render.BuildBlock(m.monthView(), m.ctrl.State())
	sb := strings.Builder{}
	sb.WriteString(strings.Join(block.Lines, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(m.summary())
	if line := m.focusLine(); line != "" {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	if m.host.status != "" {
		sb.WriteString("\n")
		sb.WriteString(render.Status(m.host.status))
	}
	if m.svc.Holidays() != nil {
		sb.WriteString("\n")
		sb.WriteString(render.ColorLegend())
	}
	if m.stale {
		sb.WriteString("\nholiday data is missing or older than 6 months, run calgrid -u to refresh it")
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m model) summary() string {
	if m.ctrl.RangeMode() {
		if m.host.rng.IsZero() {
			return "range: none"
		}
		return "range: " + m.host.rng.String()
	}
	if m.host.value.IsZero() {
		return "date: none"
	}
	return "date: " + m.host.value.Format(calendar.DateLayout)
}

// focusLine names the highlighted day and its holiday, if any.
func (m model) focusLine() string {
	date := m.ctrl.Highlighted()
	if date.IsZero() {
		return ""
	}
	line := "focus: " + calendar.Label(date)
	if info := m.svc.Holidays().Lookup(date); info != nil && info.Name != "" {
		line += " (" + info.Name + ")"
	}
	return line
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.host.status = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput() {
	m.inputMode = inputGoTo
	m.input.SetValue("")
	m.input.CursorEnd()
	m.input.Focus()
	m.host.status = ""
}

func (m *model) applyInput() {
	view, err := parseGoTo(m.input.Value(), m.ctrl.Display())
	if err != nil {
		m.host.status = err.Error()
		return
	}
	m.ctrl.SetDisplay(view)
	m.host.status = ""
	m.inputMode = inputNone
	m.input.Blur()
}

// parseGoTo reads "year" or "year month". A bare year keeps the current month.
func parseGoTo(value string, current calendar.View) (calendar.View, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 2 {
		return calendar.View{}, fmt.Errorf("expected: year [month]")
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return calendar.View{}, fmt.Errorf("invalid year %q", fields[0])
	}
	view := calendar.View{Year: year, Month: current.Month}
	if len(fields) == 2 {
		month, err := strconv.Atoi(fields[1])
		if err != nil || month < 1 || month > 12 {
			return calendar.View{}, fmt.Errorf("month must be between 1 and 12")
		}
		view.Month = time.Month(month)
	}
	return view, nil
}

func (m model) inputView() string {
	label := "Go to year [month] (enter to confirm / esc to cancel)"
	out := label
	if !noColorMode {
		out = lipgloss.NewStyle().Bold(true).Render(label)
	}
	out += "\n\n" + m.input.View()
	if m.host.status != "" {
		out += "\n" + render.Status(m.host.status)
	}
	return out
}
