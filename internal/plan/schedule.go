package plan

import (
	"errors"
	"fmt"
	"time"

	"pitchplan/internal/domain"
)

// DateLayout is the calendar-date format used everywhere dates cross a
// boundary: storage, API payloads, CSV exports. No time-of-day, no timezone.
const DateLayout = "2006-01-02"

// ErrWeekLocked is returned when an athlete asks for a week beyond the
// resolved current week while future weeks are locked.
var ErrWeekLocked = errors.New("requested week is locked")

// ParseDate parses an ISO YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as an ISO YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekNumber maps today onto a 1-based program week. The seven-day window
// always begins exactly on the start date and repeats every seven days; the
// start date is treated as the week's "Monday" regardless of its actual
// weekday. Never returns less than 1, even when today precedes the start.
func WeekNumber(start, today time.Time) int {
	diffDays := int(midnight(today).Sub(midnight(start)) / (24 * time.Hour))
	week := diffDays/7 + 1
	if week < 1 {
		return 1
	}
	return week
}

// WeekDates returns the seven consecutive ISO dates of the given program
// week, anchor first. The anchor is start + (weekNumber-1)*7 days.
func WeekDates(start time.Time, weekNumber int) []string {
	anchor := midnight(start).AddDate(0, 0, (weekNumber-1)*7)
	dates := make([]string, 0, len(domain.Weekdays))
	for i := 0; i < len(domain.Weekdays); i++ {
		dates = append(dates, FormatDate(anchor.AddDate(0, 0, i)))
	}
	return dates
}

// CheckWeekAccess enforces the future-week lock: when locked, a requested
// week greater than the current week is rejected with ErrWeekLocked. Weeks at
// or before the current week are always visible, so an athlete can review
// past weeks regardless of the setting.
func CheckWeekAccess(currentWeek, requestedWeek int, locked bool) error {
	if locked && requestedWeek > currentWeek {
		return ErrWeekLocked
	}
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
