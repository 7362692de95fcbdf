package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every date field (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Derived is the display state computed from a start/end date pair.
type Derived struct {
	Period string // e.g. "2019–2023" or "2021–present"
	Closed bool
}

// Labels names the two states of a Derived value for one section.
type Labels struct {
	Open, Closed string
}

// Label returns the label matching d.
func (l Labels) Label(d Derived) string {
	if d.Closed {
		return l.Closed
	}
	return l.Open
}

// ParseDate parses a YYYY-MM-DD string as a calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Year returns the leading year segment of a YYYY-MM-DD string.
func Year(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// Derive computes the period and open/closed state for a dated record.
// An end date on or before today closes the record. A missing end date or
// one in the future leaves it open, and the period then ends in "present"
// even though an end date exists. An unparseable end date counts as open.
func Derive(start string, end *string, today time.Time) Derived {
	startYear := Year(start)
	open := Derived{Period: startYear + "–present"}
	if end == nil || strings.TrimSpace(*end) == "" {
		return open
	}
	endDate, err := ParseDate(*end, today.Location())
	if err != nil {
		return open
	}
	if endDate.After(StartOfDay(today)) {
		return open
	}
	return Derived{Period: startYear + "–" + Year(*end), Closed: true}
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
