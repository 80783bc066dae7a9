package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/dayly/internal/constants"
)

// Clock provides the current wall-clock time. Engines take a Clock instead of
// calling time.Now so that day boundaries can be driven from tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local machine clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock returns a settable instant.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) { c.T = t }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// AddDays moves the clock forward by n calendar days, keeping the wall time.
func (c *FixedClock) AddDays(n int) { c.T = c.T.AddDate(0, 0, n) }

// DateKey returns the YYYY-MM-DD key of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns today's date key.
func Today(c Clock) string {
	return DateKey(c.Now())
}

// Yesterday returns yesterday's date key.
func Yesterday(c Clock) string {
	return DateKey(c.Now().AddDate(0, 0, -1))
}

// ParseDate parses a date key as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// AddDays returns the date key n days after date (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the absolute number of whole calendar days between two
// date keys. The arithmetic runs in UTC so DST shifts never produce 23 or 25
// hour days.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(constants.DateFormat, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	tb, err := time.Parse(constants.DateFormat, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}
	days := int(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}

// StartOfDay returns local midnight of t's date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Millis converts t to Unix milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts Unix milliseconds to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based ordinal of t within its year.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// WeekNumber returns ceil(dayOfYear / 7).
func WeekNumber(t time.Time) int {
	return int(math.Ceil(float64(DayOfYear(t)) / 7))
}

// Progress describes how far through a period a date is.
type Progress struct {
	Label     string
	Elapsed   int
	Total     int
	Remaining int
	Percent   float64
}

// YearProgress reports the day of year against the length of the year.
func YearProgress(t time.Time) Progress {
	total := DaysInYear(t.Year())
	day := DayOfYear(t)
	return Progress{
		Label:     fmt.Sprintf("%d", t.Year()),
		Elapsed:   day,
		Total:     total,
		Remaining: total - day,
		Percent:   float64(day) / float64(total) * 100,
	}
}

// MonthProgress reports the day of month against the length of the month.
func MonthProgress(t time.Time) Progress {
	lastDay := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	day := t.Day()
	return Progress{
		Label:     t.Month().String(),
		Elapsed:   day,
		Total:     lastDay,
		Remaining: lastDay - day,
		Percent:   float64(day) / float64(lastDay) * 100,
	}
}

// Greeting returns a time-of-day greeting.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
