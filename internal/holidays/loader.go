package holidays

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CacheMaxAge is how long a cached holiday file stays trustworthy.
const CacheMaxAge = 6 * 30 * 24 * time.Hour

// Table maps a year to its "MM-DD" keyed entries.
type Table map[int]map[string]*Entry

// Decode parses the holiday JSON format from r.
func Decode(r io.Reader) (Table, error) {
	var raw file
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}

	table := make(Table, len(raw))
	for _, yearData := range raw {
		year, err := strconv.Atoi(yearData.Year)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q in holidays JSON: %w", yearData.Year, err)
		}
		table[year] = yearData.Holiday
	}
	return table, nil
}

// LoadFromFile loads holiday data from a JSON file.
func LoadFromFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// CachePath returns the default holiday file location in the user cache dir.
func CachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "calgrid", "holidays.json"), nil
}

// IsCacheValid reports whether the cache file exists and is younger than
// CacheMaxAge at now.
func IsCacheValid(path string, now time.Time) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.ModTime().After(now.Add(-CacheMaxAge)), nil
}

// Lookup returns the holiday information for date, or nil.
func (t Table) Lookup(date time.Time) *Info {
	if t == nil || date.IsZero() {
		return nil
	}
	entry, ok := t[date.Year()][date.Format("01-02")]
	if !ok || entry == nil {
		return nil
	}
	return &Info{
		IsHoliday: entry.Holiday,
		Name:      entry.Name,
	}
}

// Policy decides which days a picker may select.
type Policy struct {
	DisableHolidays bool
	DisableWeekends bool
}

// Enabled builds a date predicate from the policy. Make-up workdays listed
// in the table stay selectable even when weekends are disabled; holidays
// that fall on a weekend are still weekends.
func (p Policy) Enabled(table Table) func(time.Time) bool {
	return func(date time.Time) bool {
		info := table.Lookup(date)
		if info != nil && !info.IsHoliday {
			return true
		}
		if info != nil && p.DisableHolidays {
			return false
		}
		if p.DisableWeekends {
			wd := date.Weekday()
			return wd != time.Saturday && wd != time.Sunday
		}
		return true
	}
}
