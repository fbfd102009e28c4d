// Package calendar handles day-granular dates and ISO week labels.
//
// Every date value is normalised to midnight UTC of its calendar day.
// Day arithmetic goes through Unix seconds, so it holds for any span
// representable in YYYY-MM-DD.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/ddt/internal/domain"
)

// DateLayout is the only accepted textual date format.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day truncates t to midnight UTC of the calendar day t falls on in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a day value.
func Date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.Invalidf("invalid date %q: expected format YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatOptional renders nil as an empty string.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// DaysBetween returns the signed number of calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	return int((Day(to).Unix() - Day(from).Unix()) / secondsPerDay)
}

// WeekLabel formats an ISO year and week as YYYY-Www.
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ISOWeekKey returns the label of the ISO week containing t.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return WeekLabel(year, week)
}

// ParseWeek accepts YYYY-WW or YYYY-Www.
func ParseWeek(s string) (year, week int, err error) {
	v := strings.TrimSpace(s)

	var parts []string
	if strings.Contains(v, "-W") {
		parts = strings.Split(v, "-W")
	} else {
		parts = strings.Split(v, "-")
	}
	if len(parts) != 2 {
		return 0, 0, domain.Invalidf("invalid week %q: use YYYY-WW (example: 2026-07)", s)
	}

	if !allDigits(parts[0]) {
		return 0, 0, domain.Invalidf("invalid week %q: bad year", s)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, domain.Invalidf("invalid week %q: bad year", s)
	}
	// the week is always two digits: 2026-07, never 2026-7
	if len(parts[1]) != 2 || !allDigits(parts[1]) {
		return 0, 0, domain.Invalidf("invalid week %q: week must be two digits", s)
	}
	week, _ = strconv.Atoi(parts[1])
	if week < 1 || week > 53 {
		return 0, 0, domain.Invalidf("invalid week %q: week number must be between 1 and 53", s)
	}
	return year, week, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Clock supplies "today". Scores are always computed against it.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

// SystemClock reports the local calendar date.
var SystemClock Clock = systemClock{}

func (systemClock) Today() time.Time {
	return Day(time.Now())
}

// FixedClock always reports the same day.
type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return Day(time.Time(c))
}
