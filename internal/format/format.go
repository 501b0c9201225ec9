// Package format holds the pure display helpers shared by the views and the
// notification email: the phone mask, date rendering, and day arithmetic.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateOnly = "2006-01-02"

// Phone strips non-digits, truncates to 10 digits, and formats progressively:
// up to 3 digits are returned as-is, 4-6 become "(XXX) YYY", and 7-10 become
// "(XXX) YYY-ZZZZ". It is total and idempotent on its own output.
func Phone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 10 {
				break
			}
		}
	}
	d := digits.String()
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}

// Date renders an ISO calendar date as "Jan 2, 2006". The input is anchored
// to local midnight so the rendered day never shifts across timezones. Empty
// or unparseable input yields an empty string.
func Date(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	t, err := time.ParseInLocation(dateOnly, isoDate, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// DaysSince returns the whole days elapsed since local midnight of the given
// ISO calendar date. Empty or unparseable input yields 0. A future date gives
// a negative count; callers treat that as accepted behavior rather than
// clamping it away.
func DaysSince(isoDate string) int {
	return DaysSinceAt(isoDate, time.Now())
}

// DaysSinceAt is DaysSince evaluated against an explicit instant.
func DaysSinceAt(isoDate string, now time.Time) int {
	if isoDate == "" {
		return 0
	}
	t, err := time.ParseInLocation(dateOnly, isoDate, time.Local)
	if err != nil {
		return 0
	}
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// DisplayName normalizes a donor name for display and email greetings.
func DisplayName(name string) string {
	c := cases.Title(language.Und)
	return c.String(strings.TrimSpace(name))
}
