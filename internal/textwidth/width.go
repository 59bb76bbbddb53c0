// Package textwidth measures strings in monospace terminal columns.
package textwidth

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/width"
)

// StringWidth returns the widest line of s in terminal columns. ANSI escape
// sequences take no space and East Asian wide characters take two columns.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lineWidth(ansi.Strip(line)); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// PadRight appends ASCII spaces until the rendered width matches target.
func PadRight(s string, target int) string {
	diff := target - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

// Truncate cuts plain text s so it fits in limit columns. A wide rune that
// would straddle the limit is dropped whole.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	used := 0
	for i, r := range s {
		w := runeWidth(r)
		if used+w > limit {
			return s[:i]
		}
		used += w
	}
	return s
}

// Fit truncates then pads s to exactly target columns.
func Fit(s string, target int) string {
	return PadRight(Truncate(s, target), target)
}

func lineWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}

func runeWidth(r rune) int {
	switch {
	case r == '\r' || r == '\t':
		return 0
	case r < 0x20 || r == 0x7f:
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
