package week

import (
	"fmt"
	"time"
)

const (
	labelLayout = "Jan 2/1"
	dayLayout   = "2/1/2006"
)

// Clock returns the current time. Handlers take a Clock instead of calling
// time.Now so that tests can pin "today".
type Clock func() time.Time

// SystemClock returns a Clock reporting the wall time in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Weekday returns the day of the week with Monday as 0 and Sunday as 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Monday returns midnight of the Monday on or before t, in t's location.
func Monday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -Weekday(d))
}

// Label returns the worksheet title of the Monday-Sunday week containing t,
// formatted as "Mar 11/3 - Mar 17/3".
func Label(t time.Time) string {
	start := Monday(t)
	end := start.AddDate(0, 0, 6)
	return start.Format(labelLayout) + " - " + end.Format(labelLayout)
}

// Day formats t as D/M/YYYY without zero padding.
func Day(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDay parses a D/M/YYYY string as produced by Day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return t, nil
}

// previousMonth returns the first day of the month before today's month and
// the number of days in it.
func previousMonth(today time.Time) (time.Time, int) {
	firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastOfPrev := firstOfThis.AddDate(0, 0, -1)
	firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, today.Location())
	return firstOfPrev, lastOfPrev.Day()
}

// PreviousMonthName returns the full English name of the month before today's,
// e.g. "February".
func PreviousMonthName(today time.Time) string {
	first, _ := previousMonth(today)
	return first.Month().String()
}

// DaysInPreviousMonth lists every day of the previous calendar month as
// D/M/YYYY, in order.
func DaysInPreviousMonth(today time.Time) []string {
	first, n := previousMonth(today)
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, Day(first.AddDate(0, 0, i)))
	}
	return days
}

// WeeksInPreviousMonth lists the labels of every week that touches a day of
// the previous calendar month, in first-encountered order without duplicates.
func WeeksInPreviousMonth(today time.Time) []string {
	first, n := previousMonth(today)
	var weeks []string
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		label := Label(first.AddDate(0, 0, i))
		if seen[label] {
			continue
		}
		seen[label] = true
		weeks = append(weeks, label)
	}
	return weeks
}
