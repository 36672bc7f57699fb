package engine

import (
	"fmt"

	"github.com/dmourad/delaylens/internal/schedule"
)

// Propagate shifts an activity's finish by delta days (extending its
// duration when extendDuration is set) and pushes every downstream
// activity whose start would otherwise overlap the shifted finish.
// Propagation stops at any activity already consistent with its
// predecessor. A visited set bounds the work on malformed inputs.
// The schedule is mutated in place; callers pass a private clone.
func Propagate(s *schedule.Schedule, activityID string, delta float64, extendDuration bool) {
	a, ok := s.Activities[activityID]
	if !ok {
		return // unknown activity contributes nothing
	}
	if !a.Finish.IsZero() {
		a.Finish = schedule.AddDays(a.Finish, delta)
	}
	if extendDuration {
		a.Duration += delta
	}
	forwardShift(s, activityID)
	s.RefreshProjectFinish()
}

// forwardShift walks successors breadth-first from the given activity,
// pushing each successor whose planned start violates its FS ordering to
// the upstream finish and carrying its finish with it.
func forwardShift(s *schedule.Schedule, from string) {
	visited := map[string]bool{}
	queue := []string{from}

	for len(queue) > 0 {
		curID := queue[0]
		queue = queue[1:]
		if visited[curID] {
			continue
		}
		visited[curID] = true

		cur, ok := s.Activities[curID]
		if !ok {
			continue
		}

		for _, succID := range cur.Successors {
			succ, ok := s.Activities[succID]
			if !ok {
				continue
			}
			if cur.Finish.IsZero() || succ.Start.IsZero() {
				continue
			}
			if !succ.Start.Before(cur.Finish) {
				continue // already consistent, propagation stops here
			}
			gap := schedule.DaysBetween(succ.Start, cur.Finish)
			succ.Start = cur.Finish
			if !succ.Finish.IsZero() {
				succ.Finish = schedule.AddDays(succ.Finish, gap)
			}
			queue = append(queue, succID)
		}
	}
}

// InsertFragnet applies a delay event to the schedule as an inserted
// fragnet: the target activity's duration and finish grow by the event's
// delay and the change is propagated downstream. The returned fragnet ID
// tags the insertion for audit trails; it is empty when the event's
// activity is not in the schedule.
func InsertFragnet(s *schedule.Schedule, ev DelayEvent) string {
	if _, ok := s.Activities[ev.ActivityID]; !ok {
		return ""
	}
	Propagate(s, ev.ActivityID, ev.DelayDays, true)

	suffix := "TIA"
	if ev.EventDate != nil {
		suffix = ev.EventDate.Format("20060102")
	}
	return fmt.Sprintf("DELAY_%s_%s", ev.ActivityID, suffix)
}

// Collapse removes the given delay events from the schedule: each target
// activity's finish and duration shrink by the event's delay and every
// downstream activity is pulled back by the same amount, mirroring the
// forward case. Events referencing unknown activities are skipped.
func Collapse(s *schedule.Schedule, events []DelayEvent) {
	for _, ev := range events {
		a, ok := s.Activities[ev.ActivityID]
		if !ok {
			continue
		}
		if !a.Finish.IsZero() {
			a.Finish = schedule.AddDays(a.Finish, -ev.DelayDays)
		}
		if a.Duration >= ev.DelayDays {
			a.Duration -= ev.DelayDays
		}
		pullBack(s, ev.ActivityID, ev.DelayDays)
	}
	s.RefreshProjectFinish()
}

// pullBack shifts every downstream activity's start and finish earlier by
// days. The pull is unconditional but applied exactly once per activity;
// the shifted set also guards against cycles.
func pullBack(s *schedule.Schedule, from string, days float64) {
	shifted := map[string]bool{from: true}
	queue := []string{from}

	for len(queue) > 0 {
		curID := queue[0]
		queue = queue[1:]

		cur, ok := s.Activities[curID]
		if !ok {
			continue
		}
		for _, succID := range cur.Successors {
			succ, ok := s.Activities[succID]
			if !ok || shifted[succID] {
				continue
			}
			shifted[succID] = true
			if !succ.Start.IsZero() {
				succ.Start = schedule.AddDays(succ.Start, -days)
			}
			if !succ.Finish.IsZero() {
				succ.Finish = schedule.AddDays(succ.Finish, -days)
			}
			queue = append(queue, succID)
		}
	}
}
