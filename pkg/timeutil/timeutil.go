// Package timeutil provides the process clock and the calendar-date helpers
// used by the registry: date-only formatting for the flat files and the
// whole-years arithmetic behind a person's age.
// No external dependencies - uses only standard library.
package timeutil

import (
	"sync"
	"time"
)

// FormatDate is the on-disk date format (YYYY-MM-DD).
const FormatDate = time.DateOnly

var (
	clockMu sync.RWMutex
	nowFunc = time.Now
)

// Now returns the current time from the process clock.
func Now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return nowFunc()
}

// SetClock replaces the process clock and returns a func restoring the
// previous one. Intended for tests.
func SetClock(fn func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := nowFunc
	nowFunc = fn
	clockMu.Unlock()

	return func() {
		clockMu.Lock()
		nowFunc = prev
		clockMu.Unlock()
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Today returns the start of the current day in the local timezone.
func Today() time.Time {
	return StartOfDay(Now())
}

// Date creates a local midnight time for the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// StartOfDay returns the start of the day (00:00:00) of t in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDateStr formats t as YYYY-MM-DD.
func FormatDateStr(t time.Time) string {
	return t.Format(FormatDate)
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, time.Local)
}

// YearsBetween returns the number of whole years elapsed from `from` to `to`.
// A year counts only once its month/day anniversary has been reached.
func YearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// YearsSince returns the whole years elapsed from t to today.
func YearsSince(t time.Time) int {
	return YearsBetween(t, Today())
}

// IsAfterNow reports whether t is strictly later than the process clock.
func IsAfterNow(t time.Time) bool {
	return t.After(Now())
}
