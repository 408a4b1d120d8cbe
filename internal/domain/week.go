package domain

import (
	"fmt"
	"time"
)

// DeriveWeekKey returns the ISO-8601 week bucket for a date, formatted
// "{isoYear}-W{2-digit week}". Weeks start on Monday and week 1 is the
// week containing the year's first Thursday, so the key's year can differ
// from the calendar year around New Year. The lexicographic order of keys
// matches chronological order.
func DeriveWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
