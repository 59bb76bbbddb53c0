// Package selection tracks the highlighted day, single-date and range
// selection, and keyboard navigation of a calendar view.
//
// Focus follows the roving tabindex pattern: the highlighted day is the only
// cell a host should make keyboard reachable, so tabbing away and back lands
// on the same day.
package selection

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/lululau/calgrid/internal/calendar"
)

// ErrRangeWithoutCallback is returned when a range value is supplied without
// OnRangeChange; committed ranges would otherwise be silently dropped.
var ErrRangeWithoutCallback = errors.New("selection: OnRangeChange must be supplied with RangeValue")

// Config is supplied by the host view.
type Config struct {
	// Value is the selected day in single mode. Incompatible with RangeValue.
	Value time.Time
	// OnChange is called when the user selects a day in single mode.
	OnChange func(time.Time)

	// RangeValue enables range mode.
	RangeValue *calendar.Range
	// OnRangeChange receives every committed range, earlier date first.
	OnRangeChange func(calendar.Range)
	// OnRangeStartChange is called after the first click of a range.
	OnRangeStartChange func(time.Time)

	// DateEnabled rejects days that cannot be selected. Nil enables all days.
	DateEnabled func(time.Time) bool
	// DefaultDate is the navigation origin when nothing is highlighted.
	// Defaults to today.
	DefaultDate time.Time
	WeekStart   time.Weekday

	// Display is the month on screen. Zero means the month of the initial
	// selection or of DefaultDate.
	Display calendar.View
	// OnDisplayChange is told when keyboard navigation leaves the month.
	OnDisplayChange func(calendar.View)

	Now    func() time.Time
	Logger *slog.Logger
}

// Controller owns selection state for one calendar view. It is not safe for
// concurrent use; hosts deliver events one at a time.
type Controller struct {
	cfg     Config
	log     *slog.Logger
	enabled func(time.Time) bool
	now     func() time.Time

	rangeMode  bool
	value      time.Time
	rangeValue calendar.Range

	selected     time.Time
	hovered      time.Time
	pendingStart time.Time

	display     calendar.View
	focusWithin bool
}

// New validates cfg and seeds the selection from the supplied values.
func New(cfg Config) (*Controller, error) {
	if cfg.RangeValue != nil && cfg.OnRangeChange == nil {
		return nil, ErrRangeWithoutCallback
	}

	c := &Controller{
		cfg:     cfg,
		log:     cfg.Logger,
		enabled: cfg.DateEnabled,
		now:     cfg.Now,
		value:   calendar.Midnight(cfg.Value),
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.enabled == nil {
		c.enabled = func(time.Time) bool { return true }
	}
	if c.now == nil {
		c.now = time.Now
	}

	if cfg.RangeValue != nil {
		c.rangeMode = true
		c.rangeValue = *cfg.RangeValue
		if !cfg.Value.IsZero() {
			c.log.Warn("both value and range value supplied; value is ignored in favor of the range",
				"value", cfg.Value.Format(calendar.DateLayout))
		}
		c.selected = calendar.Midnight(c.rangeValue.End)
	} else {
		c.selected = c.value
	}

	c.display = cfg.Display.Normalize()
	if cfg.Display == (calendar.View{}) {
		c.display = calendar.ViewOf(c.origin())
	}
	return c, nil
}

// RangeMode reports whether the controller selects ranges.
func (c *Controller) RangeMode() bool { return c.rangeMode }

// Value is the committed single-mode value as last supplied by the host.
func (c *Controller) Value() time.Time { return c.value }

// Selected is the persistent selection cursor.
func (c *Controller) Selected() time.Time { return c.selected }

// Hovered is the transient pointer target, if any.
func (c *Controller) Hovered() time.Time { return c.hovered }

// PendingRangeStart is the first endpoint of an uncommitted range.
func (c *Controller) PendingRangeStart() time.Time { return c.pendingStart }

// Display is the month the controller believes is on screen.
func (c *Controller) Display() calendar.View { return c.display }

// FocusWithin reports whether the host view has input focus.
func (c *Controller) FocusWithin() bool { return c.focusWithin }

// WeekStart returns the configured first weekday.
func (c *Controller) WeekStart() time.Weekday { return c.cfg.WeekStart }

// Enabled applies the configured DateEnabled predicate.
func (c *Controller) Enabled(date time.Time) bool { return c.enabled(date) }

// Highlighted is the hovered day if any, else the selection cursor.
func (c *Controller) Highlighted() time.Time {
	if !c.hovered.IsZero() {
		return c.hovered
	}
	return c.selected
}

// Range is the range to display. While a range is pending it previews from
// the pending start to the highlighted day.
func (c *Controller) Range() calendar.Range {
	if !c.pendingStart.IsZero() {
		return calendar.Range{Start: c.pendingStart, End: c.Highlighted()}
	}
	return c.rangeValue
}

// IsTabStop reports whether date is the day a host should make focusable.
func (c *Controller) IsTabStop(date time.Time) bool {
	return calendar.IsSameDay(date, c.Highlighted())
}

// State snapshots everything calendar.Derive needs.
func (c *Controller) State() calendar.State {
	return calendar.State{
		Today:       calendar.Midnight(c.now()),
		WeekStart:   c.cfg.WeekStart,
		Selected:    c.value,
		Highlighted: c.Highlighted(),
		Range:       c.Range(),
		RangeMode:   c.rangeMode,
		FocusWithin: c.focusWithin,
		Enabled:     c.enabled,
	}
}

// SetFocusWithin records whether the host view has input focus.
func (c *Controller) SetFocusWithin(focused bool) {
	c.focusWithin = focused
}

// SetValue replaces the host-controlled single value.
func (c *Controller) SetValue(date time.Time) {
	c.value = calendar.Midnight(date)
}

// SetRangeValue replaces the host-controlled range.
func (c *Controller) SetRangeValue(r calendar.Range) {
	c.rangeValue = calendar.Range{Start: calendar.Midnight(r.Start), End: calendar.Midnight(r.End)}
}

// SetHighlighted moves the selection cursor without selecting.
func (c *Controller) SetHighlighted(date time.Time) {
	c.selected = calendar.Midnight(date)
}

// Hover marks date as the pointer target. It reports false when the day is
// disabled so the host can flag the attempt.
func (c *Controller) Hover(date time.Time) bool {
	c.hovered = calendar.Midnight(date)
	return c.enabled(c.hovered)
}

// ClearHover forgets the pointer target.
func (c *Controller) ClearHover() {
	c.hovered = time.Time{}
}

// Select activates date. Disabled days are ignored and false is returned.
func (c *Controller) Select(date time.Time) bool {
	date = calendar.Midnight(date)
	if date.IsZero() || !c.enabled(date) {
		c.log.Debug("ignoring selection of disabled day", "date", date.Format(calendar.DateLayout))
		return false
	}

	c.selected = date
	c.hovered = time.Time{}

	if !c.rangeMode {
		if c.cfg.OnChange != nil {
			c.cfg.OnChange(date)
		}
		return true
	}

	if c.pendingStart.IsZero() {
		c.pendingStart = date
		if c.cfg.OnRangeStartChange != nil {
			c.cfg.OnRangeStartChange(date)
		}
		return true
	}

	start := c.pendingStart
	c.pendingStart = time.Time{}
	committed := calendar.Range{Start: start, End: date}.Normalized()
	c.cfg.OnRangeChange(committed)
	return true
}

// SetDisplay tells the controller which month is on screen. When the month
// actually changes and the selection cursor falls outside it, the cursor
// snaps to day 1 (moving forward) or the last day (moving backward).
// Repeating the current view is a no-op.
func (c *Controller) SetDisplay(v calendar.View) bool {
	v = v.Normalize()
	prev := c.display
	if v == prev {
		return false
	}
	c.display = v
	if !v.Contains(c.selected) {
		if v.Before(prev) {
			c.selected = v.Last()
		} else {
			c.selected = v.First()
		}
	}
	return true
}

func (c *Controller) origin() time.Time {
	if h := c.Highlighted(); !h.IsZero() {
		return h
	}
	if !c.cfg.DefaultDate.IsZero() {
		return calendar.Midnight(c.cfg.DefaultDate)
	}
	return calendar.Midnight(c.now())
}
