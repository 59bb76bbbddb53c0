package selection

import (
	"strings"
	"time"

	"github.com/lululau/calgrid/internal/calendar"
)

// Key is a navigation command understood by KeyNavigate.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

var keyNames = map[string]Key{
	"arrowleft":  KeyLeft,
	"left":       KeyLeft,
	"arrowright": KeyRight,
	"right":      KeyRight,
	"arrowup":    KeyUp,
	"up":         KeyUp,
	"arrowdown":  KeyDown,
	"down":       KeyDown,
	"pageup":     KeyPageUp,
	"pgup":       KeyPageUp,
	"pagedown":   KeyPageDown,
	"pgdown":     KeyPageDown,
	"home":       KeyHome,
	"end":        KeyEnd,
}

// KeyFromName maps names such as "ArrowLeft", "pgup" or "Home" to a Key.
// Unknown names map to KeyNone.
func KeyFromName(name string) Key {
	return keyNames[strings.ToLower(name)]
}

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	}
	return "none"
}

// Modifiers accompany a key press. Alt turns month paging into year paging.
type Modifiers struct {
	Alt bool
}

// Outcome reports what KeyNavigate did with a key.
type Outcome struct {
	// Handled means the key is a navigation key and was consumed, even when
	// nothing moved.
	Handled bool
	// Blocked means the target day is disabled; state is unchanged.
	Blocked bool
	// Moved means the selection cursor changed.
	Moved bool
	// Target is the day the key pointed at.
	Target time.Time
	// Display is set when the host should show a different month.
	Display *calendar.View
}

// KeyNavigate moves the selection cursor from the highlighted day, or the
// default date when nothing is highlighted.
func (c *Controller) KeyNavigate(key Key, mods Modifiers) Outcome {
	previous := c.Highlighted()
	current := previous
	if current.IsZero() {
		current = c.origin()
	}

	next, ok := c.step(current, key, mods)
	if !ok {
		return Outcome{}
	}
	out := Outcome{Handled: true, Target: next}

	if !c.enabled(next) {
		c.log.Debug("navigation blocked by disabled day", "key", key.String(), "target", next.Format(calendar.DateLayout))
		out.Blocked = true
		return out
	}

	c.selected = next
	c.hovered = time.Time{}
	out.Moved = true

	if previous.IsZero() || calendar.ViewOf(previous) != calendar.ViewOf(next) {
		view := calendar.ViewOf(next)
		out.Display = &view
		if c.cfg.OnDisplayChange != nil {
			c.cfg.OnDisplayChange(view)
		}
	}
	return out
}

func (c *Controller) step(from time.Time, key Key, mods Modifiers) (time.Time, bool) {
	months := 1
	if mods.Alt {
		months = 12
	}
	column := ((int(from.Weekday())-int(c.cfg.WeekStart))%7 + 7) % 7

	switch key {
	case KeyLeft:
		return from.AddDate(0, 0, -1), true
	case KeyRight:
		return from.AddDate(0, 0, 1), true
	case KeyUp:
		return from.AddDate(0, 0, -7), true
	case KeyDown:
		return from.AddDate(0, 0, 7), true
	case KeyPageUp:
		return calendar.AddMonths(from, -months), true
	case KeyPageDown:
		return calendar.AddMonths(from, months), true
	case KeyHome:
		return from.AddDate(0, 0, -column), true
	case KeyEnd:
		return from.AddDate(0, 0, 6-column), true
	}
	return time.Time{}, false
}
