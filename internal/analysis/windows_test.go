package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/dmourad/delaylens/internal/engine"
	"github.com/dmourad/delaylens/internal/schedule"
)

// snapshot builds one progress snapshot: a critical tower activity and a
// fitout activity with five days of float.
func snapshot(t *testing.T, towerFinish, fitoutFinish time.Time, towerPct, fitoutPct float64) *schedule.Schedule {
	t.Helper()
	s := schedule.New("Tower Project")
	s.ProjectStart = date(2024, 1, 1)
	s.AddActivity(&schedule.Activity{ID: "T100", Name: "Tower Structure", Duration: 90,
		Start: date(2024, 1, 1), Finish: towerFinish, PercentComplete: towerPct})
	s.AddActivity(&schedule.Activity{ID: "F200", Name: "Lobby Fitout", Duration: 30,
		Start: date(2024, 2, 1), Finish: fitoutFinish, PercentComplete: fitoutPct, TotalFloat: 5})
	s.RefreshProjectFinish()
	return s
}

func threeSnapshots(t *testing.T) map[time.Time]*schedule.Schedule {
	t.Helper()
	return map[time.Time]*schedule.Schedule{
		// Tower slips 5 then 7 days with barely any progress; fitout
		// slips 2 per period while advancing normally.
		date(2024, 1, 1): snapshot(t, date(2024, 3, 31), date(2024, 3, 2), 10, 10),
		date(2024, 2, 1): snapshot(t, date(2024, 4, 5), date(2024, 3, 4), 15, 40),
		date(2024, 3, 1): snapshot(t, date(2024, 4, 12), date(2024, 3, 6), 20, 70),
	}
}

func TestWindowsAnalysis_UpdateWindows(t *testing.T) {
	m := &Windows{}
	in := NewInputs()
	in.Updates = threeSnapshots(t)
	in.WindowMethod = WindowMethodUpdates

	r, err := m.Analyze(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.TotalDelayDays != 16 {
		t.Errorf("expected total delay 16, got %.1f", r.TotalDelayDays)
	}
	if r.CriticalDelayDays != 12 {
		t.Errorf("expected critical delay 12, got %.1f", r.CriticalDelayDays)
	}
	if got := r.Metadata["window_count"]; got != 2 {
		t.Errorf("expected 2 windows, got %v", got)
	}

	// Four records: tower and fitout in each window.
	if len(r.DelaysByActivity) != 4 {
		t.Fatalf("expected 4 delay records, got %d", len(r.DelaysByActivity))
	}
	// The tower crawled from 10% to 20% while slipping.
	for _, d := range r.DelaysByActivity {
		if d.ActivityID == "T100" && d.Cause != "Slow Progress" {
			t.Errorf("window %d: expected tower cause Slow Progress, got %q", d.Window, d.Cause)
		}
		if d.ActivityID == "F200" && d.Cause != "Schedule Slip" {
			t.Errorf("window %d: expected fitout cause Schedule Slip, got %q", d.Window, d.Cause)
		}
	}
}

// The per-window deltas must telescope: summing every window equals a
// single comparison of the first and last snapshots.
func TestWindowsAnalysis_WindowsSumMatchesDirectDiff(t *testing.T) {
	updates := threeSnapshots(t)
	dates := engine.SnapshotDates(updates)
	first, last := updates[dates[0]], updates[dates[len(dates)-1]]

	direct := 0.0
	for _, d := range engine.Diff(first, last) {
		if d.FinishDelta > 0 {
			direct += d.FinishDelta
		}
	}

	for _, method := range []string{WindowMethodUpdates, WindowMethodMonthly} {
		in := NewInputs()
		in.Updates = updates
		in.WindowMethod = method

		r, err := (&Windows{}).Analyze(in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if r.TotalDelayDays != direct {
			t.Errorf("%s: window sum %.1f != direct diff %.1f", method, r.TotalDelayDays, direct)
		}
	}
}

func TestWindowsAnalysis_SparseSnapshotsYieldEmptyWindows(t *testing.T) {
	m := &Windows{}
	in := NewInputs()
	in.Updates = threeSnapshots(t)
	in.WindowMethod = WindowMethodFixed
	in.WindowSizeDays = 10

	r, err := m.Analyze(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10-day buckets over two months: most windows have no snapshot
	// pair and must report zero delay rather than fail.
	stats, ok := r.Metadata["windows"].([]WindowStat)
	if !ok {
		t.Fatalf("expected window breakdown in metadata, got %T", r.Metadata["windows"])
	}
	empty := 0
	for _, ws := range stats {
		if !ws.Snapshots {
			if ws.DelayDays != 0 {
				t.Errorf("window %d has no snapshots but reports %.1f days", ws.Index, ws.DelayDays)
			}
			empty++
		}
	}
	if empty == 0 {
		t.Error("expected at least one window without snapshots")
	}
	if r.TotalDelayDays != 16 {
		t.Errorf("expected total delay 16, got %.1f", r.TotalDelayDays)
	}
}

func TestWindowsAnalysis_CriticalOnly(t *testing.T) {
	m := &Windows{}
	in := NewInputs()
	in.Updates = threeSnapshots(t)
	in.WindowMethod = WindowMethodUpdates
	in.IncludeNonCritical = false

	r, err := m.Analyze(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalDelayDays != 12 {
		t.Errorf("expected critical-only total 12, got %.1f", r.TotalDelayDays)
	}
	for _, d := range r.DelaysByActivity {
		if !d.IsCritical {
			t.Errorf("non-critical record %s in critical-only run", d.ActivityID)
		}
	}
}

func TestWindowsAnalysis_InsufficientData(t *testing.T) {
	m := &Windows{}

	in := NewInputs()
	_, err := m.Analyze(in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError with no updates, got %v", err)
	}

	in = NewInputs()
	in.Updates = map[time.Time]*schedule.Schedule{
		date(2024, 1, 1): snapshot(t, date(2024, 3, 31), date(2024, 3, 2), 10, 10),
	}
	_, err = m.Analyze(in)
	var ierr *InsufficientDataError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InsufficientDataError with one update, got %v", err)
	}
	if ierr.Need != 2 || ierr.Got != 1 {
		t.Errorf("expected need 2 got 1, have need %d got %d", ierr.Need, ierr.Got)
	}
}
