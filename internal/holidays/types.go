package holidays

import (
	"encoding/json"
)

// Entry is one dated record of the holiday file. Other fields of the
// published format (wage, target, rest) are ignored.
type Entry struct {
	Holiday bool   `json:"holiday"`
	Name    string `json:"name"`
}

// UnmarshalJSON accepts "holiday" as either a boolean or a string; any
// non-empty string counts as a holiday.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		Holiday any `json:"holiday"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch v := aux.Holiday.(type) {
	case bool:
		e.Holiday = v
	case string:
		e.Holiday = v != ""
	default:
		e.Holiday = false
	}
	return nil
}

// file is the on-disk layout: one object per year keyed by "MM-DD".
type file []struct {
	Year    string            `json:"year"`
	Holiday map[string]*Entry `json:"holiday"`
}

// Info describes a dated exception to the regular week.
type Info struct {
	// IsHoliday is true for a day off and false for a make-up workday.
	IsHoliday bool
	Name      string
}
