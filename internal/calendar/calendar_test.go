package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/ddt/internal/domain"
)

// ============================================================
// Dates
// ============================================================

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-13")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(Date(2026, time.February, 13)) {
		t.Fatalf("got %v", d)
	}
	if d.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", d.Location())
	}
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	for _, s := range []string{"", "2026/02/13", "13-02-2026", "2026-2-13", "2026-02-30", "2026-02-13T00:00:00Z", "tomorrow"} {
		_, err := ParseDate(s)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("expected INVALID for %q, got %v", s, err)
		}
		if s != "" && !strings.Contains(err.Error(), s) {
			t.Fatalf("error should name %q: %v", s, err)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	if err != nil || d != nil {
		t.Fatalf("empty should be nil, got %v, %v", d, err)
	}
	d, err = ParseOptionalDate("2026-03-01")
	if err != nil || d == nil || FormatDate(*d) != "2026-03-01" {
		t.Fatalf("got %v, %v", d, err)
	}
	if _, err := ParseOptionalDate("soon"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatOptional(t *testing.T) {
	if FormatOptional(nil) != "" {
		t.Fatal("nil should format empty")
	}
	d := Date(2026, time.July, 4)
	if FormatOptional(&d) != "2026-07-04" {
		t.Fatalf("got %q", FormatOptional(&d))
	}
}

func TestDayDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, time.March, 1, 23, 59, 0, 0, loc)
	if got := Day(in); !got.Equal(Date(2026, time.March, 1)) {
		t.Fatalf("Day = %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{Date(2026, 1, 14), Date(2026, 2, 13), 30},
		{Date(2026, 2, 1), Date(2026, 2, 13), 12},
		{Date(2026, 2, 13), Date(2026, 2, 13), 0},
		{Date(2026, 2, 14), Date(2026, 2, 13), -1},
		{Date(2024, 2, 28), Date(2024, 3, 1), 2},
		{time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC), Date(2026, 1, 2), 1},
		// beyond the ~292 year range of time.Duration
		{Date(1500, 1, 1), Date(2026, 2, 13), 192161},
		{Date(2026, 2, 13), Date(1500, 1, 1), -192161},
		{Date(1, 1, 1), Date(9999, 12, 31), 3652058},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", FormatDate(tt.from), FormatDate(tt.to), got, tt.want)
		}
	}
}

// ============================================================
// Weeks
// ============================================================

func TestParseWeekBothForms(t *testing.T) {
	for _, s := range []string{"2026-07", "2026-W07", " 2026-W07 "} {
		y, w, err := ParseWeek(s)
		if err != nil {
			t.Fatalf("ParseWeek(%q): %v", s, err)
		}
		if y != 2026 || w != 7 {
			t.Fatalf("ParseWeek(%q) = %d, %d", s, y, w)
		}
	}
}

func TestParseWeekInvalid(t *testing.T) {
	for _, s := range []string{"", "2026", "2026-00", "2026-54", "2026-W", "abcd-07", "2026-07-01", "2026-Wx",
		"2026-7", "2026-W7", "2026-+7", "2026-W+7", "+2026-07", "2026-007", "2026- 7"} {
		if _, _, err := ParseWeek(s); err == nil {
			t.Fatalf("expected error for %q", s)
		} else if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("expected INVALID for %q, got %v", s, err)
		}
	}
}

func TestWeekLabel(t *testing.T) {
	if got := WeekLabel(2026, 7); got != "2026-W07" {
		t.Fatalf("WeekLabel = %q", got)
	}
	if got := WeekLabel(2026, 53); got != "2026-W53" {
		t.Fatalf("WeekLabel = %q", got)
	}
	y, w, _ := ParseWeek("2026-W07")
	if WeekLabel(y, w) != "2026-W07" {
		t.Fatal("label should round-trip")
	}
}

func TestISOWeekKeyUsesISOYear(t *testing.T) {
	// 2027-01-01 is a Friday and belongs to ISO week 53 of 2026.
	if got := ISOWeekKey(Date(2027, time.January, 1)); got != "2026-W53" {
		t.Fatalf("ISOWeekKey = %q", got)
	}
	if got := ISOWeekKey(Date(2026, time.February, 13)); got != "2026-W07" {
		t.Fatalf("ISOWeekKey = %q", got)
	}
}

// ============================================================
// Clock
// ============================================================

func TestFixedClock(t *testing.T) {
	c := FixedClock(time.Date(2026, 2, 13, 17, 30, 0, 0, time.UTC))
	if !c.Today().Equal(Date(2026, 2, 13)) {
		t.Fatalf("Today = %v", c.Today())
	}
}

func TestSystemClockIsMidnight(t *testing.T) {
	today := SystemClock.Today()
	if today.Hour() != 0 || today.Minute() != 0 || today.Location() != time.UTC {
		t.Fatalf("system clock should return a day value, got %v", today)
	}
}
