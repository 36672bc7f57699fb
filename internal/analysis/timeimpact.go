package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmourad/delaylens/internal/engine"
	"github.com/dmourad/delaylens/internal/schedule"
)

// TimeImpact inserts delay events one at a time, in chronological
// order, measuring the incremental impact of each. The per-event
// impacts depend on insertion order: an earlier event can consume
// float that a later event would otherwise have absorbed.
type TimeImpact struct{}

func (m *TimeImpact) Name() string { return "Time Impact Analysis (TIA)" }

func (m *TimeImpact) Describe() string {
	return "Inserts delay events chronologically into the schedule to measure the incremental impact of each"
}

func (m *TimeImpact) Prompts() []Prompt {
	return []Prompt{
		{
			Key:     "use_updates",
			Label:   "Use contemporaneous schedule updates when available?",
			Type:    "select",
			Options: []string{"Yes", "No"},
			Default: "Yes",
			Help:    "Inserting each event into the schedule of record at its date is the preferred TIA practice",
		},
	}
}

func (m *TimeImpact) Validate(in Inputs) error {
	if in.Baseline == nil {
		return &ValidationError{Input: "baseline schedule"}
	}
	if len(in.Events) == 0 {
		return &ValidationError{Input: "delay events"}
	}
	return nil
}

func (m *TimeImpact) Suggest(in Inputs) []string {
	var out []string
	undated := 0
	for _, ev := range in.Events {
		if ev.EventDate == nil {
			undated++
		}
	}
	if undated > 0 {
		out = append(out, fmt.Sprintf(
			"%d delay events have no event date; they will be inserted last, which may understate their impact", undated))
	}
	if len(in.Updates) == 0 {
		out = append(out, "No schedule updates provided; all events will be inserted into the baseline")
	}
	return out
}

func (m *TimeImpact) Analyze(in Inputs) (*Result, error) {
	if err := m.Validate(in); err != nil {
		return nil, err
	}

	result := NewResult(m.Name())
	result.Metadata["baseline_project"] = in.Baseline.ProjectName
	result.Metadata["events_inserted"] = len(in.Events)

	events := make([]engine.DelayEvent, len(in.Events))
	copy(events, in.Events)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].EventDate, events[j].EventDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	working := in.Baseline.Clone()
	cumulative := 0.0

	for seq, ev := range events {
		// Prefer the schedule of record at the event date. A newer
		// update already reflects earlier events, so adopting it
		// replaces the progressively impacted working copy.
		if ev.EventDate != nil {
			if upd := engine.AtOrBefore(in.Updates, *ev.EventDate); upd != nil && upd.DataDate.After(working.DataDate) {
				working = upd.Clone()
			}
		}

		before := working.ProjectFinish
		engine.InsertFragnet(working, ev)
		after := working.ProjectFinish

		impact := 0.0
		if !before.IsZero() && !after.IsZero() {
			if d := schedule.DaysBetween(before, after); d > 0 {
				impact = d
			}
		}
		cumulative += impact

		activity, ok := working.Activities[ev.ActivityID]
		if !ok {
			continue
		}
		cause := ev.Cause
		if cause == "" {
			cause = "Unclassified Delay"
		}

		ti := impact
		cum := cumulative
		d := ActivityDelay{
			ActivityID:       ev.ActivityID,
			Name:             activity.Name,
			DelayDays:        ev.DelayDays,
			Cause:            cause,
			IsCritical:       activity.IsCritical(),
			EventDate:        ev.EventDate,
			TimeImpactDays:   &ti,
			CumulativeImpact: &cum,
			Sequence:         seq + 1,
		}
		result.AddDelay(d)

		if activity.IsCritical() && impact > 0 {
			result.CriticalDelayDays += impact
		}
	}

	result.TotalDelayDays = cumulative
	result.Recommendations = m.recommendations(result, events)
	result.Summary = m.summary(result, in.Baseline.ProjectFinish, working.ProjectFinish)
	return result, nil
}

func (m *TimeImpact) recommendations(r *Result, events []engine.DelayEvent) []string {
	var out []string
	absorbed := 0
	for _, d := range r.DelaysByActivity {
		if d.TimeImpactDays != nil && *d.TimeImpactDays == 0 {
			absorbed++
		}
	}
	if absorbed > 0 {
		out = append(out, fmt.Sprintf("%d events were absorbed by available float and caused no completion slip", absorbed))
	}
	if r.TotalDelayDays > 0 {
		out = append(out, fmt.Sprintf("Cumulative time impact is %s; reconcile against the as-built completion date", fmtDays(r.TotalDelayDays)))
	}
	if len(events) > 1 {
		out = append(out, "Results are order dependent; insertion followed event chronology")
	}
	return out
}

func (m *TimeImpact) summary(r *Result, baselineFinish, finalFinish time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time Impact Analysis Summary:\n\n")
	fmt.Fprintf(&b, "Events Inserted: %d\n", len(r.DelaysByActivity))
	fmt.Fprintf(&b, "Cumulative Impact: %s\n", fmtDays(r.TotalDelayDays))
	fmt.Fprintf(&b, "Critical Path Impact: %s\n\n", fmtDays(r.CriticalDelayDays))
	if !baselineFinish.IsZero() {
		fmt.Fprintf(&b, "Baseline Completion: %s\n", baselineFinish.Format("2006-01-02"))
	}
	if !finalFinish.IsZero() {
		fmt.Fprintf(&b, "Impacted Completion: %s\n", finalFinish.Format("2006-01-02"))
	}
	b.WriteString("\nImpact Sequence:\n")
	for _, d := range r.DelaysByActivity {
		impact := 0.0
		if d.TimeImpactDays != nil {
			impact = *d.TimeImpactDays
		}
		fmt.Fprintf(&b, "  %d. %s (%s): %s impact\n", d.Sequence, d.Name, d.ActivityID, fmtDays(impact))
	}
	return b.String()
}
