package dateutil

import "time"

// CurrentWeek returns the midnight of the monday of the week containing t.
func CurrentWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CurrentMonth returns the midnight of the first day of the month containing t.
func CurrentMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the instant exactly n days before now.
func DaysAgo(now time.Time, n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}
