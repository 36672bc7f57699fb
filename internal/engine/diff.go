package engine

import (
	"sort"
	"time"

	"github.com/dmourad/delaylens/internal/schedule"
)

// Delta is the per-activity comparison between a baseline and a current
// schedule. FinishDelta uses the current activity's actual finish when
// present, otherwise its planned finish.
type Delta struct {
	ActivityID       string
	Name             string
	StartDelta       float64 // signed days
	FinishDelta      float64 // signed days
	BaselineFinish   time.Time
	CurrentFinish    time.Time
	BaselineDuration float64
	CurrentDuration  float64
	IsCritical       bool // from the baseline activity
}

// Diff aligns two schedules by activity ID and returns the signed day
// deltas for every matched pair, in lexical ID order. IDs present on only
// one side are ignored, by design.
func Diff(baseline, current *schedule.Schedule) []Delta {
	ids := make([]string, 0, len(baseline.Activities))
	for id := range baseline.Activities {
		if _, ok := current.Activities[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]Delta, 0, len(ids))
	for _, id := range ids {
		b := baseline.Activities[id]
		c := current.Activities[id]

		d := Delta{
			ActivityID:       id,
			Name:             c.Name,
			BaselineFinish:   b.Finish,
			CurrentFinish:    c.CurrentFinish(),
			BaselineDuration: b.Duration,
			CurrentDuration:  c.Duration,
			IsCritical:       b.IsCritical(),
		}
		if !b.Finish.IsZero() && !d.CurrentFinish.IsZero() {
			d.FinishDelta = schedule.DaysBetween(b.Finish, d.CurrentFinish)
		}
		curStart := c.Start
		if c.ActualStart != nil {
			curStart = *c.ActualStart
		}
		if !b.Start.IsZero() && !curStart.IsZero() {
			d.StartDelta = schedule.DaysBetween(b.Start, curStart)
		}
		out = append(out, d)
	}
	return out
}
