package analysis

import (
	"testing"
	"time"

	"github.com/dmourad/delaylens/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

type fixtureActivity struct {
	id, name     string
	duration     float64
	start        time.Time
	finish       time.Time
	actualStart  *time.Time
	actualFinish *time.Time
	pct          float64
	float        float64
}

func buildFixture(t *testing.T, name string, start, finish, dataDate time.Time, acts []fixtureActivity) *schedule.Schedule {
	t.Helper()
	s := schedule.New(name)
	s.ProjectStart = start
	s.ProjectFinish = finish
	s.DataDate = dataDate
	for _, fa := range acts {
		s.AddActivity(&schedule.Activity{
			ID:              fa.id,
			Name:            fa.name,
			Duration:        fa.duration,
			Start:           fa.start,
			Finish:          fa.finish,
			ActualStart:     fa.actualStart,
			ActualFinish:    fa.actualFinish,
			PercentComplete: fa.pct,
			TotalFloat:      fa.float,
		})
	}
	for _, rel := range [][2]string{
		{"A1000", "A1010"}, {"A1010", "A2000"}, {"A2000", "A2010"},
		{"A2010", "A2020"}, {"A2020", "A3000"}, {"A3000", "A3010"},
		{"A3010", "A4000"}, {"A4000", "A6000"}, {"A2020", "A5000"},
		{"A5000", "A5010"},
	} {
		s.AddRelationship(rel[0], rel[1], schedule.FinishToStart, 0)
	}
	return s
}

// sampleBaseline is an eleven-activity construction project: a critical
// chain from mobilization through final inspections, with an MEP branch
// (A5000, A5010) carrying float.
func sampleBaseline(t *testing.T) *schedule.Schedule {
	t.Helper()
	return buildFixture(t, "Office Block - Baseline",
		date(2024, 1, 1), date(2024, 6, 30), date(2024, 1, 1),
		[]fixtureActivity{
			{id: "A1000", name: "Site Mobilization", duration: 5, start: date(2024, 1, 1), finish: date(2024, 1, 5)},
			{id: "A1010", name: "Site Survey and Layout", duration: 10, start: date(2024, 1, 8), finish: date(2024, 1, 19)},
			{id: "A2000", name: "Excavation", duration: 15, start: date(2024, 1, 22), finish: date(2024, 2, 9)},
			{id: "A2010", name: "Foundation Formwork", duration: 20, start: date(2024, 2, 12), finish: date(2024, 3, 8)},
			{id: "A2020", name: "Foundation Concrete", duration: 10, start: date(2024, 3, 11), finish: date(2024, 3, 22)},
			{id: "A3000", name: "Structural Steel Erection", duration: 30, start: date(2024, 3, 25), finish: date(2024, 5, 3)},
			{id: "A3010", name: "Roof Structure", duration: 15, start: date(2024, 5, 6), finish: date(2024, 5, 24)},
			{id: "A4000", name: "Exterior Cladding", duration: 20, start: date(2024, 5, 27), finish: date(2024, 6, 21)},
			{id: "A5000", name: "MEP Rough-in", duration: 25, start: date(2024, 4, 1), finish: date(2024, 5, 3), float: 10},
			{id: "A5010", name: "Interior Finishes", duration: 20, start: date(2024, 5, 20), finish: date(2024, 6, 14), float: 5},
			{id: "A6000", name: "Final Inspections", duration: 5, start: date(2024, 6, 24), finish: date(2024, 6, 28)},
		})
}

// sampleCurrent is the same project statused at mid-April: early work
// finished late, steel erection in progress with a duration blowout, and
// everything downstream pushed out.
func sampleCurrent(t *testing.T) *schedule.Schedule {
	t.Helper()
	return buildFixture(t, "Office Block - Current",
		date(2024, 1, 1), date(2024, 7, 20), date(2024, 4, 15),
		[]fixtureActivity{
			{id: "A1000", name: "Site Mobilization", duration: 5, start: date(2024, 1, 1), finish: date(2024, 1, 5),
				actualStart: datePtr(2024, 1, 1), actualFinish: datePtr(2024, 1, 5), pct: 100},
			{id: "A1010", name: "Site Survey and Layout", duration: 12, start: date(2024, 1, 8), finish: date(2024, 1, 23),
				actualStart: datePtr(2024, 1, 8), actualFinish: datePtr(2024, 1, 23), pct: 100},
			{id: "A2000", name: "Excavation", duration: 20, start: date(2024, 1, 24), finish: date(2024, 2, 16),
				actualStart: datePtr(2024, 1, 24), actualFinish: datePtr(2024, 2, 16), pct: 100},
			{id: "A2010", name: "Foundation Formwork", duration: 25, start: date(2024, 2, 19), finish: date(2024, 3, 22),
				actualStart: datePtr(2024, 2, 19), actualFinish: datePtr(2024, 3, 22), pct: 100},
			{id: "A2020", name: "Foundation Concrete", duration: 12, start: date(2024, 3, 25), finish: date(2024, 4, 9),
				actualStart: datePtr(2024, 3, 25), actualFinish: datePtr(2024, 4, 9), pct: 100},
			{id: "A3000", name: "Structural Steel Erection", duration: 35, start: date(2024, 4, 10), finish: date(2024, 5, 24),
				actualStart: datePtr(2024, 4, 10), pct: 35},
			{id: "A3010", name: "Roof Structure", duration: 15, start: date(2024, 5, 27), finish: date(2024, 6, 14)},
			{id: "A4000", name: "Exterior Cladding", duration: 20, start: date(2024, 6, 17), finish: date(2024, 7, 12)},
			{id: "A5000", name: "MEP Rough-in", duration: 25, start: date(2024, 4, 15), finish: date(2024, 5, 17),
				actualStart: datePtr(2024, 4, 15), pct: 20, float: 8},
			{id: "A5010", name: "Interior Finishes", duration: 20, start: date(2024, 6, 10), finish: date(2024, 7, 5), float: 5},
			{id: "A6000", name: "Final Inspections", duration: 5, start: date(2024, 7, 15), finish: date(2024, 7, 19)},
		})
}

// tightChain builds a -> b -> c with back-to-back dates, so any delay on
// an upstream activity propagates in full.
//
//	a: Jan 1 - Jan 6  (5d)
//	b: Jan 6 - Jan 16 (10d)
//	c: Jan 16 - Jan 19 (3d)
func tightChain(t *testing.T, name string) *schedule.Schedule {
	t.Helper()
	s := schedule.New(name)
	s.ProjectStart = date(2025, 1, 1)
	s.ProjectFinish = date(2025, 1, 19)
	s.AddActivity(&schedule.Activity{ID: "a", Name: "Groundworks", Duration: 5,
		Start: date(2025, 1, 1), Finish: date(2025, 1, 6)})
	s.AddActivity(&schedule.Activity{ID: "b", Name: "Frame", Duration: 10,
		Start: date(2025, 1, 6), Finish: date(2025, 1, 16)})
	s.AddActivity(&schedule.Activity{ID: "c", Name: "Fitout", Duration: 3,
		Start: date(2025, 1, 16), Finish: date(2025, 1, 19)})
	s.AddRelationship("a", "b", schedule.FinishToStart, 0)
	s.AddRelationship("b", "c", schedule.FinishToStart, 0)
	return s
}

func findDelay(t *testing.T, r *Result, activityID string) ActivityDelay {
	t.Helper()
	for _, d := range r.DelaysByActivity {
		if d.ActivityID == activityID {
			return d
		}
	}
	t.Fatalf("no delay record for activity %s", activityID)
	return ActivityDelay{}
}
