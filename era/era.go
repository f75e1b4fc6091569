// Package era maps calendar dates to named eras (the Japanese imperial
// gengou by default) for format codes such as "ggge" that print the era name
// and an era-relative year.
package era

import "time"

// Era is one named period of a calendar.  An era runs from Start (inclusive)
// until the Start of the next era in the same calendar.
type Era struct {
	// Name is the full era name, e.g. "平成".
	Name string
	// Short is the one-character form, e.g. "平".
	Short string
	// Abbr is the Latin initial, e.g. "H".
	Abbr string
	// Start is the first day of the era, at 00:00 UTC.
	Start time.Time
}

// Year returns the era-relative year of t.  The first calendar year of the
// era is year 1.
func (e Era) Year(t time.Time) int {
	return t.Year() - e.Start.Year() + 1
}

// Calendar resolves the era in effect at a given instant.  Lookup reports
// false when t lies before the first known era.
type Calendar interface {
	Lookup(t time.Time) (Era, bool)
}

// Table is a Calendar backed by a list of eras sorted by ascending Start.
type Table []Era

// Lookup returns the last era in the table whose Start is not after t.
func (tb Table) Lookup(t time.Time) (Era, bool) {
	t = t.UTC()
	for i := len(tb) - 1; i >= 0; i-- {
		if !t.Before(tb[i].Start) {
			return tb[i], true
		}
	}
	return Era{}, false
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Japanese is the modern Japanese gengou table, from Meiji onward.
var Japanese = Table{
	{Name: "明治", Short: "明", Abbr: "M", Start: day(1868, time.September, 8)},
	{Name: "大正", Short: "大", Abbr: "T", Start: day(1912, time.July, 30)},
	{Name: "昭和", Short: "昭", Abbr: "S", Start: day(1926, time.December, 25)},
	{Name: "平成", Short: "平", Abbr: "H", Start: day(1989, time.January, 8)},
	{Name: "令和", Short: "令", Abbr: "R", Start: day(2019, time.May, 1)},
}
