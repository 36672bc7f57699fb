package analysis

import (
	"fmt"
	"strings"

	"github.com/dmourad/delaylens/internal/engine"
)

// AsPlannedVsAsBuilt compares the baseline (as-planned) schedule with
// actual progress (as-built) to identify delays and their magnitude.
type AsPlannedVsAsBuilt struct{}

func (m *AsPlannedVsAsBuilt) Name() string { return "As-Planned vs As-Built" }

func (m *AsPlannedVsAsBuilt) Describe() string {
	return "Compares the baseline (as-planned) schedule with actual progress (as-built) to identify delays and their magnitude"
}

func (m *AsPlannedVsAsBuilt) Prompts() []Prompt {
	return []Prompt{
		{
			Key:     "include_non_critical",
			Label:   "Include non-critical activities in the analysis?",
			Type:    "select",
			Options: []string{"Yes", "No"},
			Default: "Yes",
			Help:    "Including non-critical activities provides more detail but may dilute focus on critical delays",
		},
		{
			Key:   "analysis_date",
			Label: "Date to use for the analysis",
			Type:  "date",
			Help:  "Leave blank to use the current date",
		},
	}
}

func (m *AsPlannedVsAsBuilt) Validate(in Inputs) error {
	if in.Baseline == nil {
		return &ValidationError{Input: "baseline schedule"}
	}
	if in.Current == nil {
		return &ValidationError{Input: "current schedule"}
	}
	return nil
}

func (m *AsPlannedVsAsBuilt) Suggest(in Inputs) []string {
	var out []string
	if in.Baseline == nil || in.Current == nil {
		return out
	}

	baseCrit := in.Baseline.Stats().CriticalActivities
	curCrit := in.Current.Stats().CriticalActivities
	if float64(curCrit) > float64(baseCrit)*1.2 {
		out = append(out, fmt.Sprintf(
			"Critical path has grown from %d to %d activities; this suggests significant schedule pressure",
			baseCrit, curCrit))
	}

	if in.Current.Stats().AvgCompletion < in.Baseline.Stats().AvgCompletion {
		out = append(out, "Project is behind schedule in completion percentage; consider focusing on critical path acceleration")
	}

	delayed := in.Current.DelayedActivities()
	if total := in.Current.ActivityCount(); total > 0 && len(delayed)*10 > total*3 {
		out = append(out, fmt.Sprintf(
			"%d activities (%.1f%%) are delayed; review resource allocation and potential bottlenecks",
			len(delayed), float64(len(delayed))/float64(total)*100))
	}
	return out
}

func (m *AsPlannedVsAsBuilt) Analyze(in Inputs) (*Result, error) {
	if err := m.Validate(in); err != nil {
		return nil, err
	}

	result := NewResult(m.Name())
	result.Metadata["baseline_project"] = in.Baseline.ProjectName
	result.Metadata["current_project"] = in.Current.ProjectName

	for _, d := range engine.Diff(in.Baseline, in.Current) {
		if !in.IncludeNonCritical && !d.IsCritical {
			continue
		}
		if d.FinishDelta <= 0 {
			continue
		}

		base := in.Baseline.Activities[d.ActivityID]
		cur := in.Current.Activities[d.ActivityID]
		startedLate := cur.ActualStart != nil && !base.Start.IsZero() && cur.ActualStart.After(base.Start)
		cause := classifyComparisonDelay(d, startedLate, cur.PercentComplete)

		bf, af := d.BaselineFinish, d.CurrentFinish
		result.AddDelay(ActivityDelay{
			ActivityID:     d.ActivityID,
			Name:           d.Name,
			DelayDays:      d.FinishDelta,
			Cause:          cause,
			IsCritical:     d.IsCritical,
			BaselineFinish: &bf,
			ActualFinish:   &af,
		})

		result.TotalDelayDays += d.FinishDelta
		if d.IsCritical {
			result.CriticalDelayDays += d.FinishDelta
		}
	}

	result.Recommendations = m.recommendations(result)
	result.Summary = m.summary(result)
	return result, nil
}

// classifyComparisonDelay applies the simple per-activity cause rules:
// duration growth beyond 10% means productivity loss, a late actual start
// means late start, low completion means slow progress.
func classifyComparisonDelay(d engine.Delta, startedLate bool, pctComplete float64) string {
	if d.CurrentDuration > d.BaselineDuration*1.1 {
		return "Productivity Loss"
	}
	if startedLate {
		return "Late Start"
	}
	if pctComplete < 50 {
		return "Slow Progress"
	}
	return "General Delay"
}

func (m *AsPlannedVsAsBuilt) recommendations(r *Result) []string {
	var out []string
	if r.CriticalDelayDays > 0 {
		out = append(out, fmt.Sprintf("Focus on critical path: %s of delay on critical activities", fmtDays(r.CriticalDelayDays)))
	}
	if top := r.TopCauses(1); len(top) > 0 {
		out = append(out, fmt.Sprintf("Address '%s' which accounts for %s of delay", top[0].Cause, fmtDays(top[0].Days)))
	}
	if worst := r.MostDelayed(3); len(worst) > 0 {
		names := make([]string, 0, len(worst))
		for _, d := range worst {
			names = append(names, fmt.Sprintf("%s (%.1fd)", d.Name, d.DelayDays))
		}
		out = append(out, "Prioritize recovery for most delayed activities: "+strings.Join(names, ", "))
	}
	return out
}

func (m *AsPlannedVsAsBuilt) summary(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As-Planned vs As-Built Analysis Summary:\n\n")
	fmt.Fprintf(&b, "Total Delay: %s\n", fmtDays(r.TotalDelayDays))
	fmt.Fprintf(&b, "Critical Path Delay: %s\n", fmtDays(r.CriticalDelayDays))
	fmt.Fprintf(&b, "Affected Activities: %d\n\n", len(r.DelaysByActivity))
	b.WriteString("Top Delay Causes:\n")
	for _, c := range r.TopCauses(5) {
		fmt.Fprintf(&b, "  - %s: %s\n", c.Cause, fmtDays(c.Days))
	}
	return b.String()
}
