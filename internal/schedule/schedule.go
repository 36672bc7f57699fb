package schedule

import (
	"sort"
	"time"
)

// New creates an empty Schedule.
func New(projectName string) *Schedule {
	return &Schedule{
		ProjectName: projectName,
		Activities:  make(map[string]*Activity),
	}
}

// AddActivity adds or replaces an activity.
func (s *Schedule) AddActivity(a *Activity) {
	s.Activities[a.ID] = a
}

// AddRelationship appends a dependency edge and keeps the derived
// predecessor/successor back-references on both endpoints consistent.
// Endpoints that are not (yet) in the schedule still get the edge
// recorded; back-references are wired only for known activities.
func (s *Schedule) AddRelationship(pred, succ string, relType RelType, lag int) {
	s.Relationships = append(s.Relationships, Relationship{Pred: pred, Succ: succ, Type: relType, Lag: lag})

	if a, ok := s.Activities[pred]; ok && !contains(a.Successors, succ) {
		a.Successors = append(a.Successors, succ)
	}
	if a, ok := s.Activities[succ]; ok && !contains(a.Predecessors, pred) {
		a.Predecessors = append(a.Predecessors, pred)
	}
}

// ActivityCount returns the number of activities.
func (s *Schedule) ActivityCount() int {
	return len(s.Activities)
}

// SortedIDs returns all activity IDs in lexical order.
func (s *Schedule) SortedIDs() []string {
	ids := make([]string, 0, len(s.Activities))
	for id := range s.Activities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy. What-if schedules (impacted, collapsed,
// fragnet-extended) are always built on a clone so the engine never
// aliases a caller-owned graph.
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{
		ProjectName:   s.ProjectName,
		ProjectStart:  s.ProjectStart,
		ProjectFinish: s.ProjectFinish,
		DataDate:      s.DataDate,
		Activities:    make(map[string]*Activity, len(s.Activities)),
		Relationships: append([]Relationship(nil), s.Relationships...),
	}
	for id, a := range s.Activities {
		dup := *a
		dup.Predecessors = append([]string(nil), a.Predecessors...)
		dup.Successors = append([]string(nil), a.Successors...)
		if a.ActualStart != nil {
			t := *a.ActualStart
			dup.ActualStart = &t
		}
		if a.ActualFinish != nil {
			t := *a.ActualFinish
			dup.ActualFinish = &t
		}
		c.Activities[id] = &dup
	}
	return c
}

// RefreshProjectFinish recomputes ProjectFinish as the latest planned
// finish over all activities. Used after mutating a what-if schedule.
func (s *Schedule) RefreshProjectFinish() {
	var max time.Time
	for _, a := range s.Activities {
		if a.Finish.After(max) {
			max = a.Finish
		}
	}
	if !max.IsZero() {
		s.ProjectFinish = max
	}
}

// ActivitiesByFloat returns activities with total float at or below the
// threshold, in lexical ID order.
func (s *Schedule) ActivitiesByFloat(maxFloat float64) []*Activity {
	var out []*Activity
	for _, id := range s.SortedIDs() {
		if a := s.Activities[id]; a.TotalFloat <= maxFloat {
			out = append(out, a)
		}
	}
	return out
}

// DelayedActivities returns activities whose actual dates have slipped
// past their planned dates, in lexical ID order.
func (s *Schedule) DelayedActivities() []*Activity {
	var out []*Activity
	for _, id := range s.SortedIDs() {
		a := s.Activities[id]
		switch {
		case a.ActualFinish != nil && !a.Finish.IsZero() && a.ActualFinish.After(a.Finish):
			out = append(out, a)
		case a.ActualStart != nil && !a.Start.IsZero() && a.ActualStart.After(a.Start):
			out = append(out, a)
		}
	}
	return out
}

// Stats returns aggregate figures over the schedule.
func (s *Schedule) Stats() SummaryStats {
	st := SummaryStats{TotalActivities: len(s.Activities)}
	var pctSum float64
	for _, a := range s.Activities {
		if a.IsCritical() {
			st.CriticalActivities++
		}
		switch {
		case a.IsFinished():
			st.CompletedActivities++
		case a.IsStarted():
			st.InProgressActivities++
		default:
			st.NotStartedActivities++
		}
		st.TotalDuration += a.Duration
		pctSum += a.PercentComplete
	}
	if st.TotalActivities > 0 {
		st.AvgCompletion = pctSum / float64(st.TotalActivities)
	}
	return st
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
