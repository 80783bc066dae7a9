package calendar

import (
	"time"

	"github.com/julianstephens/dayly/internal/constants"
)

// Season is a named span of the year bounded by month/day pairs (inclusive).
type Season struct {
	Name       string
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

var northernSeasons = []Season{
	{"Spring", time.March, 20, time.June, 20},
	{"Summer", time.June, 21, time.September, 22},
	{"Autumn", time.September, 23, time.December, 21},
	{"Winter", time.December, 22, time.March, 19},
}

var southernSeasons = []Season{
	{"Autumn", time.March, 20, time.June, 20},
	{"Winter", time.June, 21, time.September, 22},
	{"Spring", time.September, 23, time.December, 21},
	{"Summer", time.December, 22, time.March, 19},
}

// wraps reports whether the season crosses the new year.
func (s Season) wraps() bool {
	return s.StartMonth > s.EndMonth
}

// Contains reports whether t's month/day falls inside the season.
func (s Season) Contains(t time.Time) bool {
	m, d := t.Month(), t.Day()
	afterStart := m > s.StartMonth || (m == s.StartMonth && d >= s.StartDay)
	beforeEnd := m < s.EndMonth || (m == s.EndMonth && d <= s.EndDay)
	if s.wraps() {
		return afterStart || beforeEnd
	}
	return afterStart && beforeEnd
}

// SeasonFor returns the season containing t for the given hemisphere.
// Unknown hemispheres use the northern table.
func SeasonFor(t time.Time, h constants.Hemisphere) Season {
	table := northernSeasons
	if h == constants.HemisphereSouthern {
		table = southernSeasons
	}
	for _, s := range table {
		if s.Contains(t) {
			return s
		}
	}
	return table[0]
}
