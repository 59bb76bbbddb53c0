package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/calgrid/internal/calendar"
	"github.com/lululau/calgrid/internal/textwidth"
)

// CellWidth is the number of terminal columns every day cell occupies.
const CellWidth = 4

// Lines above the first week row in a month block: title and weekday header.
const headerLines = 2

const blockGap = 3

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	cellStyle = lipgloss.NewStyle()

	dimColor      = lipgloss.Color("#6B7280")
	disabledColor = lipgloss.Color("#475569")
	holidayColor  = lipgloss.Color("#3B82F6")
	workdayColor  = lipgloss.Color("#F97316")
	todayColor    = lipgloss.Color("#34D399")
	weekendColor  = lipgloss.Color("#FCA5A5")
	endpointBg    = lipgloss.Color("#FEC260")
	endpointFg    = lipgloss.Color("#1E293B")
	inRangeBg     = lipgloss.Color("#334155")
	invalidBg     = lipgloss.Color("#7F1D1D")
)

var weekdayNames = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MonthBlock packages rendered lines with their visual width/height.
type MonthBlock struct {
	Lines  []string
	Width  int
	Height int
}

// BuildBlocks converts month views into renderable blocks, deriving every
// cell's flags from st.
func BuildBlocks(views []calendar.MonthView, st calendar.State) []MonthBlock {
	blocks := make([]MonthBlock, len(views))
	for i, view := range views {
		blocks[i] = BuildBlock(view, st)
	}
	return blocks
}

// BuildBlock renders a single month.
func BuildBlock(view calendar.MonthView, st calendar.State) MonthBlock {
	width := CellWidth * 7
	title := view.Title
	if !noColorMode {
		title = titleStyle.Render(title)
	}
	lines := []string{
		lipgloss.PlaceHorizontal(width, lipgloss.Center, title),
		WeekdayHeader(view.WeekStart),
	}

	for _, week := range view.Weeks {
		var dates, lunar strings.Builder
		for _, day := range week {
			flags := calendar.Derive(day.Day, st)
			dates.WriteString(Cell(day, flags))
			if view.Lunar {
				lunar.WriteString(LunarCell(day, flags))
			}
		}
		lines = append(lines, dates.String())
		if view.Lunar {
			lines = append(lines, lunar.String())
		}
	}

	return MonthBlock{
		Lines:  lines,
		Width:  width,
		Height: len(lines),
	}
}

// WeekdayHeader returns the column titles rotated so ws comes first.
func WeekdayHeader(ws time.Weekday) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		b.WriteString(fmt.Sprintf(" %s ", weekdayNames[(int(ws)+i)%7]))
	}
	if noColorMode {
		return b.String()
	}
	return headerStyle.Render(b.String())
}

// Cell renders the day number of one grid cell in CellWidth columns.
func Cell(day calendar.AnnotatedDay, flags calendar.Flags) string {
	num := fmt.Sprintf("%2d", day.Date.Day())
	if noColorMode {
		return plainCell(num, flags)
	}
	return cellStyleFor(day, flags).Render(" " + num + " ")
}

// LunarCell renders the secondary label of one grid cell in CellWidth columns.
func LunarCell(day calendar.AnnotatedDay, flags calendar.Flags) string {
	if flags.Has(calendar.FlagDifferentMonth) {
		return strings.Repeat(" ", CellWidth)
	}
	label := textwidth.Fit(day.SecondaryLabel(), CellWidth)
	if noColorMode {
		return label
	}
	return cellStyle.Foreground(foreground(day, flags, dimColor)).Render(label)
}

func plainCell(num string, flags calendar.Flags) string {
	switch {
	case flags.Has(calendar.FlagDifferentMonth):
		return strings.Repeat(" ", CellWidth)
	case flags.Has(calendar.FlagSelected), flags.Has(calendar.FlagRangeStart), flags.Has(calendar.FlagRangeEnd):
		return "[" + num + "]"
	case flags.Has(calendar.FlagHighlighted):
		return "<" + num + ">"
	case flags.Has(calendar.FlagInRange):
		return "(" + num + ")"
	case flags.Has(calendar.FlagDisabled):
		return " " + num + "*"
	}
	return " " + num + " "
}

func cellStyleFor(day calendar.AnnotatedDay, flags calendar.Flags) lipgloss.Style {
	style := cellStyle
	if fg := foreground(day, flags, ""); fg != "" {
		style = style.Foreground(fg)
	}
	if flags.Has(calendar.FlagToday) {
		style = style.Bold(true)
	}
	if flags.Has(calendar.FlagDisabled) {
		style = style.Strikethrough(true)
	}

	switch {
	case flags.Has(calendar.FlagSelected), flags.Has(calendar.FlagRangeStart), flags.Has(calendar.FlagRangeEnd):
		style = style.Background(endpointBg).Foreground(endpointFg).Bold(true)
	case flags.Has(calendar.FlagInRange):
		style = style.Background(inRangeBg)
	}

	switch {
	case flags.Has(calendar.FlagHighlighted) && flags.Has(calendar.FlagDisabled):
		style = style.Background(invalidBg)
	case flags.Has(calendar.FlagHighlighted):
		style = style.Reverse(true)
	case flags.Has(calendar.FlagHighlightedInactive):
		style = style.Underline(true)
	}
	return style
}

// foreground picks the text color: filler days are dimmed, then disabled
// days, then holiday markers, today and weekends.
func foreground(day calendar.AnnotatedDay, flags calendar.Flags, fallback lipgloss.Color) lipgloss.Color {
	switch {
	case flags.Has(calendar.FlagDifferentMonth):
		return dimColor
	case flags.Has(calendar.FlagDisabled):
		return disabledColor
	case day.HolidayInfo != nil && day.HolidayInfo.IsHoliday:
		return holidayColor
	case day.HolidayInfo != nil:
		return workdayColor
	case flags.Has(calendar.FlagToday):
		return todayColor
	case flags.Has(calendar.FlagWeekend):
		return weekendColor
	}
	return fallback
}

// Layout tiles blocks left to right, wrapping to a new band when the next
// block would exceed width.
func Layout(blocks []MonthBlock, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	perRow := 1
	if w := blocks[0].Width; w > 0 {
		perRow = max(1, (width+blockGap)/(w+blockGap))
	}

	var bands []string
	for start := 0; start < len(blocks); start += perRow {
		end := min(start+perRow, len(blocks))
		bands = append(bands, joinBand(blocks[start:end]))
	}
	return strings.Join(bands, "\n\n")
}

func joinBand(blocks []MonthBlock) string {
	height := 0
	for _, b := range blocks {
		height = max(height, b.Height)
	}
	gap := strings.Repeat(" ", blockGap)
	lines := make([]string, height)
	for row := range lines {
		parts := make([]string, len(blocks))
		for i, b := range blocks {
			line := ""
			if row < len(b.Lines) {
				line = b.Lines[row]
			}
			if i < len(blocks)-1 {
				line = textwidth.PadRight(line, b.Width)
			}
			parts[i] = line
		}
		lines[row] = strings.TrimRight(strings.Join(parts, gap), " ")
	}
	return strings.Join(lines, "\n")
}

// LinesPerWeek reports how many screen lines one week occupies in a block.
func LinesPerWeek(view calendar.MonthView) int {
	if view.Lunar {
		return 2
	}
	return 1
}

// HitTest maps a screen position relative to a block's top-left corner back
// to the day drawn there.
func HitTest(view calendar.MonthView, x, y int) (calendar.AnnotatedDay, bool) {
	if x < 0 || y < headerLines || x >= CellWidth*7 {
		return calendar.AnnotatedDay{}, false
	}
	row := (y - headerLines) / LinesPerWeek(view)
	if row >= len(view.Weeks) {
		return calendar.AnnotatedDay{}, false
	}
	return view.Weeks[row][x/CellWidth], true
}

// ColorLegend explains the holiday colors.
func ColorLegend() string {
	legend := "blue=holiday  orange=make-up workday"
	if noColorMode {
		return legend
	}
	return legendStyle.Render(legend)
}

// Status renders a one-line status message, such as a rejected range.
func Status(msg string) string {
	if msg == "" || noColorMode {
		return msg
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Render(msg)
}
