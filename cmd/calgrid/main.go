package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/lululau/calgrid/internal/calendar"
	"github.com/lululau/calgrid/internal/config"
	"github.com/lululau/calgrid/internal/holidays"
	"github.com/lululau/calgrid/internal/logger"
	"github.com/lululau/calgrid/internal/render"
	"github.com/lululau/calgrid/internal/selection"
	"github.com/lululau/calgrid/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("calgrid", flag.ContinueOnError)
	var (
		yearFlag     = fs.Bool("y", false, "show the whole year")
		plain        = fs.Bool("n", false, "render once and exit (non-interactive)")
		noColor      = fs.Bool("N", cfg.NoColor, "disable all color output")
		rangeMode    = fs.Bool("r", false, "pick a date range instead of a single date")
		selectFlag   = fs.String("select", "", "initially selected date, YYYY-MM-DD")
		rangeFlag    = fs.String("range", "", "initial range, YYYY-MM-DD,YYYY-MM-DD (implies -r)")
		holidaysFile = fs.String("h", cfg.HolidaysFile, "holiday data file")
		update       = fs.Bool("u", false, "download the latest holiday data into the user cache")
	)
	fs.BoolVar(update, "update-holidays", false, "download the latest holiday data into the user cache")
	fs.StringVar(&cfg.HolidaysURL, "holidays-url", cfg.HolidaysURL, "where -u downloads holiday data from")
	fs.StringVar(&cfg.WeekStart, "s", cfg.WeekStart, "first day of the week (name or 0-6)")
	fs.BoolVar(noColor, "no-color", cfg.NoColor, "disable all color output")
	fs.StringVar(holidaysFile, "holidays-file", cfg.HolidaysFile, "holiday data file")
	fs.BoolVar(&cfg.DisableWeekends, "disable-weekends", cfg.DisableWeekends, "make weekends unselectable")
	fs.BoolVar(&cfg.DisableHolidays, "disable-holidays", cfg.DisableHolidays, "make public holidays unselectable")
	fs.BoolVar(&cfg.Lunar, "lunar", cfg.Lunar, "show Chinese lunar labels")
	fs.BoolVar(&cfg.StrictRange, "strict-range", cfg.StrictRange, "reject ranges that span unselectable days")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log destination for the interactive picker")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: calgrid [options] [year] [month]\n")
		fmt.Fprintf(fs.Output(), `
  no arguments   current month
  -y             current year
  9              September of this year
  1983           the whole of 1983
  2012 12        December 2012
  -y 9           the whole of year 9
  -u             refresh the holiday cache and exit

options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.NoColor = *noColor
	cfg.HolidaysFile = *holidaysFile
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.NoColor {
		render.SetNoColor(true)
		tui.SetNoColor(true)
	}

	if *update {
		dest, err := holidays.CachePath()
		if err != nil {
			return err
		}
		return updateHolidays(context.Background(), cfg.HolidaysURL, dest, os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
	}

	now := time.Now()
	view, showYear, err := parseRequest(now, *yearFlag, fs.Args())
	if err != nil {
		return err
	}
	interactive := !*plain && !showYear

	out, closeLog, err := logger.Output(cfg, interactive)
	if err != nil {
		return err
	}
	defer reportClose(os.Stderr, closeLog)
	log := logger.Setup(cfg, out)

	table, stale := loadHolidays(cfg, now, log, os.Stderr)

	value, err := parseOptionalDate(*selectFlag)
	if err != nil {
		return err
	}
	var initialRange *calendar.Range
	if *rangeMode || *rangeFlag != "" {
		r, err := parseRange(*rangeFlag)
		if err != nil {
			return err
		}
		initialRange = &r
	}

	svcOpts := []calendar.Option{
		calendar.WithWeekStart(cfg.Weekday()),
		calendar.WithLunar(cfg.Lunar),
	}
	if table != nil {
		svcOpts = append(svcOpts, calendar.WithHolidays(table))
	}
	service := calendar.NewService(svcOpts...)
	enabled := holidays.Policy{
		DisableHolidays: cfg.DisableHolidays,
		DisableWeekends: cfg.DisableWeekends,
	}.Enabled(table)

	if !interactive {
		ctrl, err := selection.New(selection.Config{
			Value:         value,
			RangeValue:    initialRange,
			OnRangeChange: func(calendar.Range) {},
			DateEnabled:   enabled,
			WeekStart:     cfg.Weekday(),
			Display:       view,
			Logger:        log,
		})
		if err != nil {
			return err
		}
		return render.RunPlain(render.PlainOptions{
			Service:           service,
			View:              view,
			Year:              showYear,
			State:             ctrl.State(),
			HolidayCacheStale: stale,
		})
	}

	res, err := tui.Run(tui.Options{
		Service:           service,
		Value:             value,
		Range:             initialRange,
		DateEnabled:       enabled,
		Display:           view,
		StrictRange:       cfg.StrictRange,
		HolidayCacheStale: stale,
		Logger:            log,
	})
	if err != nil {
		return err
	}
	if !res.Confirmed {
		return nil
	}
	switch {
	case res.RangeMode && !res.Range.IsZero():
		fmt.Println(res.Range.String())
	case !res.RangeMode && !res.Value.IsZero():
		fmt.Println(res.Value.Format(calendar.DateLayout))
	}
	return nil
}

// reportClose runs closeFn and reports a failure on w.
func reportClose(w io.Writer, closeFn func() error) {
	if err := closeFn(); err != nil {
		fmt.Fprintln(w, "error: close log file:", err)
	}
}

// updateHolidays downloads the holiday table into dest. A terminal gets the
// progress screen; otherwise a summary is written to stdout.
func updateHolidays(ctx context.Context, url, dest string, stdout io.Writer, interactive bool) error {
	if interactive {
		return holidays.DownloadHolidays(ctx, url, dest)
	}
	info, err := holidays.Download(ctx, url, dest, nil)
	if err != nil {
		return fmt.Errorf("update holidays: %w", err)
	}
	var size int64
	var modTime time.Time
	if st, err := os.Stat(dest); err == nil {
		size, modTime = st.Size(), st.ModTime()
	}
	_, err = fmt.Fprint(stdout, holidays.FormatSummary(dest, size, modTime, info))
	return err
}

// loadHolidays reads the configured holiday file, or the user cache. stale
// reports that holiday-based disabling was requested without fresh data.
// An unreadable holiday file is reported on stderr and the calendar runs
// without holiday data.
func loadHolidays(cfg *config.Config, now time.Time, log *slog.Logger, stderr io.Writer) (holidays.Table, bool) {
	if cfg.HolidaysFile != "" {
		table, err := holidays.LoadFromFile(cfg.HolidaysFile)
		if err != nil {
			log.Warn("cannot load holiday file", "path", cfg.HolidaysFile, "error", err)
			fmt.Fprintf(stderr, "warning: cannot load holiday file %s: %v\n", cfg.HolidaysFile, err)
			return nil, cfg.DisableHolidays
		}
		return table, false
	}

	path, err := holidays.CachePath()
	if err != nil {
		log.Debug("no user cache directory", "error", err)
		return nil, cfg.DisableHolidays
	}
	valid, err := holidays.IsCacheValid(path, now)
	if err != nil {
		log.Debug("holiday cache unavailable", "path", path, "error", err)
		return nil, cfg.DisableHolidays
	}
	table, err := holidays.LoadFromFile(path)
	if err != nil {
		log.Warn("cannot read holiday cache", "path", path, "error", err)
		return nil, cfg.DisableHolidays
	}
	return table, cfg.DisableHolidays && !valid
}

func parseRequest(now time.Time, showYear bool, args []string) (calendar.View, bool, error) {
	year := now.Year()
	month := int(now.Month())

	switch len(args) {
	case 0:
		// defaults
	case 1:
		if showYear {
			val, err := parseNumber(args[0], "year")
			if err != nil {
				return calendar.View{}, false, err
			}
			year = val
		} else {
			val, err := parseNumber(args[0], "month/year")
			if err != nil {
				return calendar.View{}, false, err
			}
			if val >= 1 && val <= 12 {
				month = val
			} else {
				year = val
				showYear = true
			}
		}
	case 2:
		if showYear {
			return calendar.View{}, false, errors.New("-y takes at most one year argument")
		}
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return calendar.View{}, false, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return calendar.View{}, false, err
		}
		if m < 1 || m > 12 {
			return calendar.View{}, false, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year = y
		month = m
	default:
		return calendar.View{}, false, errors.New("too many arguments, see --help")
	}

	return calendar.View{Year: year, Month: time.Month(month)}.Normalize(), showYear, nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return calendar.ParseDate(s)
}

func parseRange(s string) (calendar.Range, error) {
	if s == "" {
		return calendar.Range{}, nil
	}
	start, end, ok := strings.Cut(s, ",")
	if !ok {
		return calendar.Range{}, fmt.Errorf("range %q: expected START,END", s)
	}
	a, err := calendar.ParseDate(start)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("range start: %w", err)
	}
	b, err := calendar.ParseDate(end)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("range end: %w", err)
	}
	return calendar.Range{Start: a, End: b}.Normalized(), nil
}
