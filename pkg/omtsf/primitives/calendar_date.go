package primitives

import (
	"encoding/json"
	"regexp"
)

var calendarDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CalendarDate is a `YYYY-MM-DD` shaped date string. No calendar validation
// (month range, days-in-month, leap years) is performed at construction —
// "0001-01-01" and "9999-12-31" are both accepted. Calendar-correctness
// checks, where the spec wants them, belong to the validation engine.
type CalendarDate struct {
	value string
}

// NewCalendarDate validates s against the date shape.
func NewCalendarDate(s string) (CalendarDate, error) {
	if !calendarDateRe.MatchString(s) {
		return CalendarDate{}, newInvalidFormat("CalendarDate", "YYYY-MM-DD", s)
	}
	return CalendarDate{value: s}, nil
}

func (d CalendarDate) String() string { return d.value }

// Compare performs zero-padded lexicographic string comparison, which is
// equivalent to chronological order for this shape.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.value < other.value:
		return -1
	case d.value > other.value:
		return 1
	default:
		return 0
	}
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
