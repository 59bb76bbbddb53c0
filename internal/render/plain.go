package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/calgrid/internal/calendar"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer  io.Writer
	Service *calendar.Service
	View    calendar.View
	// Year renders all twelve months of View.Year.
	Year  bool
	State calendar.State
	Width int
	// HolidayCacheStale prints a hint that the holiday file is missing or old.
	HolidayCacheStale bool
}

// RunPlain renders the requested view exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Service == nil {
		opts.Service = calendar.NewService()
	}

	blocks := BuildBlocks(fetchViews(opts.Service, opts.View, opts.Year), opts.State)
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}
	output := Layout(blocks, width)
	if output == "" {
		return nil
	}
	if _, err := fmt.Fprintln(opts.Writer, output); err != nil {
		return err
	}

	if opts.Service.Holidays() != nil {
		if _, err := fmt.Fprintln(opts.Writer, "\n"+ColorLegend()); err != nil {
			return err
		}
	}
	if opts.HolidayCacheStale {
		_, err := fmt.Fprintln(opts.Writer, "\nholiday data is missing or older than 6 months, run calgrid -u to refresh it")
		return err
	}
	return nil
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}

func fetchViews(svc *calendar.Service, v calendar.View, year bool) []calendar.MonthView {
	v = v.Normalize()
	if year {
		return svc.Year(v.Year)
	}
	return []calendar.MonthView{svc.Month(v)}
}
