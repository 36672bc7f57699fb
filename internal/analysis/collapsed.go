package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmourad/delaylens/internal/engine"
	"github.com/dmourad/delaylens/internal/schedule"
)

// CollapsedAsBuilt removes specified delays from a private copy of the
// as-built schedule to show when the project would have completed "but
// for" those delays.
type CollapsedAsBuilt struct{}

func (m *CollapsedAsBuilt) Name() string { return "Collapsed As-Built (But-For)" }

func (m *CollapsedAsBuilt) Describe() string {
	return "Removes specific delays from the actual schedule to show when the project would have completed without those delays"
}

func (m *CollapsedAsBuilt) Prompts() []Prompt {
	return []Prompt{
		{
			Key:     "has_baseline",
			Label:   "Do you have a baseline schedule for comparison?",
			Type:    "select",
			Options: []string{"Yes", "No"},
			Default: "No",
			Help:    "A baseline helps validate the collapsed schedule",
		},
	}
}

func (m *CollapsedAsBuilt) Validate(in Inputs) error {
	if in.AsBuilt == nil {
		return &ValidationError{Input: "as-built schedule"}
	}
	if len(in.Events) == 0 {
		return &ValidationError{Input: "delay events"}
	}
	return nil
}

func (m *CollapsedAsBuilt) Suggest(in Inputs) []string {
	var out []string
	if in.AsBuilt != nil && len(in.Events) > 0 {
		var totalDelay float64
		for _, ev := range in.Events {
			totalDelay += ev.DelayDays
		}
		if !in.AsBuilt.ProjectStart.IsZero() && !in.AsBuilt.ProjectFinish.IsZero() {
			duration := schedule.DaysBetween(in.AsBuilt.ProjectStart, in.AsBuilt.ProjectFinish)
			if duration > 0 && totalDelay/duration > 0.2 {
				out = append(out, fmt.Sprintf(
					"Removing %s of delays (%.1f%% of project duration); ensure all delays are properly documented and excusable",
					fmtDays(totalDelay), totalDelay/duration*100))
			}
		}

		criticalEvents := 0
		for _, ev := range in.Events {
			if a, ok := in.AsBuilt.Activities[ev.ActivityID]; ok && a.IsCritical() {
				criticalEvents++
			}
		}
		if criticalEvents > 0 {
			out = append(out, fmt.Sprintf(
				"%d delays are on the critical path and will have direct impact on project completion", criticalEvents))
		}
	}
	if in.Baseline != nil {
		out = append(out, "Baseline available for comparison; this strengthens the analysis")
	}
	return out
}

func (m *CollapsedAsBuilt) Analyze(in Inputs) (*Result, error) {
	if err := m.Validate(in); err != nil {
		return nil, err
	}

	result := NewResult(m.Name())
	result.Metadata["as_built_project"] = in.AsBuilt.ProjectName
	result.Metadata["delay_events_removed"] = len(in.Events)

	// But-for schedule on a private copy.
	collapsed := in.AsBuilt.Clone()
	engine.Collapse(collapsed, in.Events)

	asBuiltFinish := in.AsBuilt.ProjectFinish
	collapsedFinish := collapsed.ProjectFinish
	if !asBuiltFinish.IsZero() && !collapsedFinish.IsZero() {
		if days := schedule.DaysBetween(collapsedFinish, asBuiltFinish); days > 0 {
			result.TotalDelayDays = days
		}
	}

	for _, ev := range in.Events {
		activity, ok := in.AsBuilt.Activities[ev.ActivityID]
		if !ok {
			continue
		}
		cause := ev.Cause
		if cause == "" {
			cause = "Excusable Delay"
		}

		d := ActivityDelay{
			ActivityID: ev.ActivityID,
			Name:       activity.Name,
			DelayDays:  ev.DelayDays,
			Cause:      cause,
			IsCritical: activity.IsCritical(),
			EventDate:  ev.EventDate,
		}
		if !activity.Finish.IsZero() {
			orig := activity.Finish
			cf := schedule.AddDays(orig, -ev.DelayDays)
			d.ActualFinish = &orig
			d.CollapsedFinish = &cf
		}
		result.AddDelay(d)

		if activity.IsCritical() {
			result.CriticalDelayDays += ev.DelayDays
		}
	}

	result.Recommendations = m.recommendations(result, in.Baseline, collapsed)
	result.Summary = m.summary(result, in, collapsedFinish)
	return result, nil
}

func (m *CollapsedAsBuilt) recommendations(r *Result, baseline, collapsed *schedule.Schedule) []string {
	var out []string
	if r.TotalDelayDays > 0 {
		out = append(out, fmt.Sprintf("Removed delays account for %s of project delay", fmtDays(r.TotalDelayDays)))
	}
	if baseline != nil && !collapsed.ProjectFinish.IsZero() && !baseline.ProjectFinish.IsZero() {
		remaining := schedule.DaysBetween(baseline.ProjectFinish, collapsed.ProjectFinish)
		if remaining > 0 {
			out = append(out, fmt.Sprintf(
				"After removing excusable delays, %s of delay remain; investigate other causes", fmtDays(remaining)))
		} else if remaining < 0 {
			out = append(out, fmt.Sprintf(
				"Collapsed schedule finishes %s before baseline; review delay event magnitudes", fmtDays(-remaining)))
		}
	}
	if len(r.DelaysByCause) > 0 {
		out = append(out, "Document each delay cause thoroughly for contractual/legal purposes")
	}
	return out
}

func (m *CollapsedAsBuilt) summary(r *Result, in Inputs, collapsedFinish time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Collapsed As-Built (But-For) Analysis Summary:\n\n")
	fmt.Fprintf(&b, "Delay Events Removed: %d\n", len(r.DelaysByActivity))
	fmt.Fprintf(&b, "Total Delay Removed: %s\n\n", fmtDays(r.TotalDelayDays))
	fmt.Fprintf(&b, "As-Built Completion: %s\n", in.AsBuilt.ProjectFinish.Format("2006-01-02"))
	fmt.Fprintf(&b, "But-For Completion: %s\n", collapsedFinish.Format("2006-01-02"))
	if in.Baseline != nil && !in.Baseline.ProjectFinish.IsZero() {
		fmt.Fprintf(&b, "Baseline Completion: %s\n", in.Baseline.ProjectFinish.Format("2006-01-02"))
	}
	b.WriteString("\nDelays Removed by Cause:\n")
	for _, c := range r.TopCauses(0) {
		fmt.Fprintf(&b, "  - %s: %s\n", c.Cause, fmtDays(c.Days))
	}
	return b.String()
}
