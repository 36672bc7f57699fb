package engine

import (
	"sort"
	"time"

	"github.com/dmourad/delaylens/internal/schedule"
)

// Window is a contiguous, non-overlapping analysis period.
type Window struct {
	Index int
	Start time.Time
	End   time.Time
}

// SnapshotDates returns the update dates of a snapshot map in ascending order.
func SnapshotDates(updates map[time.Time]*schedule.Schedule) []time.Time {
	dates := make([]time.Time, 0, len(updates))
	for d := range updates {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// AtOrBefore returns the snapshot at or immediately before t, or nil if
// no snapshot exists that early.
func AtOrBefore(updates map[time.Time]*schedule.Schedule, t time.Time) *schedule.Schedule {
	var best time.Time
	found := false
	for d := range updates {
		if d.After(t) {
			continue
		}
		if !found || d.After(best) {
			best = d
			found = true
		}
	}
	if !found {
		return nil
	}
	return updates[best]
}

// MonthlyWindows partitions the span of the given update dates into
// calendar-month windows. Consecutive windows share their boundary date
// so delay landing exactly on a month start is never lost between
// windows; the last window is truncated to the final update date.
func MonthlyWindows(dates []time.Time) []Window {
	if len(dates) == 0 {
		return nil
	}
	start, end := dates[0], dates[len(dates)-1]

	var windows []Window
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for cur.Before(end) {
		wEnd := cur.AddDate(0, 1, 0)
		if wEnd.After(end) {
			wEnd = end
		}
		windows = append(windows, Window{Index: len(windows), Start: cur, End: wEnd})
		cur = wEnd
	}
	return windows
}

// FixedWindows partitions the span of the given update dates into
// consecutive buckets of sizeDays calendar days, sharing boundary dates
// the same way MonthlyWindows does.
func FixedWindows(dates []time.Time, sizeDays int) []Window {
	if len(dates) == 0 || sizeDays <= 0 {
		return nil
	}
	start, end := dates[0], dates[len(dates)-1]

	var windows []Window
	cur := start
	for cur.Before(end) {
		wEnd := cur.AddDate(0, 0, sizeDays)
		if wEnd.After(end) {
			wEnd = end
		}
		windows = append(windows, Window{Index: len(windows), Start: cur, End: wEnd})
		cur = wEnd
	}
	return windows
}

// UpdateWindows makes each gap between consecutive update dates one
// window. Fewer than two updates yields no windows.
func UpdateWindows(dates []time.Time) []Window {
	if len(dates) < 2 {
		return nil
	}
	windows := make([]Window, 0, len(dates)-1)
	for i := 0; i < len(dates)-1; i++ {
		windows = append(windows, Window{Index: i, Start: dates[i], End: dates[i+1]})
	}
	return windows
}
