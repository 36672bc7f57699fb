package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmourad/delaylens/internal/engine"
)

// Contemporaneous examines what actually happened in a specific period
// using the schedule updates and project records kept at the time.
type Contemporaneous struct{}

func (m *Contemporaneous) Name() string { return "Contemporaneous Period Analysis" }

func (m *Contemporaneous) Describe() string {
	return "Reconstructs delay in a specific period from the schedule updates and project records kept at the time"
}

func (m *Contemporaneous) Prompts() []Prompt {
	return []Prompt{
		{
			Key:   "period_start",
			Label: "Analysis period start date",
			Type:  "date",
		},
		{
			Key:   "period_end",
			Label: "Analysis period end date",
			Type:  "date",
		},
	}
}

func (m *Contemporaneous) Validate(in Inputs) error {
	if len(in.Updates) == 0 {
		return &ValidationError{Input: "schedule updates"}
	}
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		return &ValidationError{Input: "analysis period"}
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return &ValidationError{Input: "valid analysis period (end precedes start)"}
	}
	return nil
}

func (m *Contemporaneous) Suggest(in Inputs) []string {
	var out []string
	if len(in.DailyLogs) == 0 {
		out = append(out, "No daily logs provided; cause classification will fall back to progress reports and weather")
	}
	if len(in.ProgressReports) == 0 {
		out = append(out, "No progress reports provided; documentation scoring will be weaker")
	}
	if !in.PeriodStart.IsZero() && !in.PeriodEnd.IsZero() {
		score := engine.DocumentationScore(in.DailyLogs, in.ProgressReports, in.PeriodStart, in.PeriodEnd)
		if score < 50 {
			out = append(out, fmt.Sprintf(
				"Documentation score for the period is %.0f/100; contemporaneous findings may be hard to substantiate", score))
		}
	}
	return out
}

func (m *Contemporaneous) Analyze(in Inputs) (*Result, error) {
	if err := m.Validate(in); err != nil {
		return nil, err
	}

	// Snapshots inside the period, oldest first.
	var inPeriod []time.Time
	for _, d := range engine.SnapshotDates(in.Updates) {
		if !d.Before(in.PeriodStart) && !d.After(in.PeriodEnd) {
			inPeriod = append(inPeriod, d)
		}
	}
	if len(inPeriod) < 2 {
		return nil, &InsufficientDataError{Need: 2, Got: len(inPeriod)}
	}

	first := in.Updates[inPeriod[0]]
	last := in.Updates[inPeriod[len(inPeriod)-1]]

	result := NewResult(m.Name())
	result.Metadata["period_start"] = in.PeriodStart.Format("2006-01-02")
	result.Metadata["period_end"] = in.PeriodEnd.Format("2006-01-02")
	result.Metadata["snapshots_in_period"] = len(inPeriod)
	result.Metadata["documentation_score"] = engine.DocumentationScore(
		in.DailyLogs, in.ProgressReports, in.PeriodStart, in.PeriodEnd)

	byResponsibility := map[string]float64{}

	for _, d := range engine.Diff(first, last) {
		if d.FinishDelta <= 0 {
			continue
		}
		if !in.IncludeNonCritical && !d.IsCritical {
			continue
		}

		cause := engine.ClassifyCause(d.ActivityID, d.Name, in.PeriodStart, in.PeriodEnd,
			in.DailyLogs, in.ProgressReports, in.Weather)
		resp := engine.Responsibility(cause)
		documented := engine.DocumentedInLogs(d.ActivityID, d.Name, in.DailyLogs)

		result.AddDelay(ActivityDelay{
			ActivityID:       d.ActivityID,
			Name:             d.Name,
			DelayDays:        d.FinishDelta,
			Cause:            cause,
			IsCritical:       d.IsCritical,
			Responsibility:   resp,
			DocumentedInLogs: documented,
		})
		result.TotalDelayDays += d.FinishDelta
		if d.IsCritical {
			result.CriticalDelayDays += d.FinishDelta
		}
		byResponsibility[resp] += d.FinishDelta
	}

	result.Metadata["delay_by_responsibility"] = byResponsibility
	result.Recommendations = m.recommendations(result, byResponsibility, in)
	result.Summary = m.summary(result, byResponsibility, in)
	return result, nil
}

func (m *Contemporaneous) recommendations(r *Result, byResp map[string]float64, in Inputs) []string {
	var out []string

	undocumented := 0
	for _, d := range r.DelaysByActivity {
		if !d.DocumentedInLogs {
			undocumented++
		}
	}
	if undocumented > 0 {
		out = append(out, fmt.Sprintf(
			"%d delayed activities have no daily-log coverage; gather supplementary records for these", undocumented))
	}
	if days := byResp[engine.ResponsibilityTBD]; days > 0 {
		out = append(out, fmt.Sprintf(
			"%s of delay remain unattributed; review records to establish responsibility", fmtDays(days)))
	}
	if days := byResp[engine.ResponsibilityExcusable]; days > 0 && r.CriticalDelayDays > 0 {
		out = append(out, fmt.Sprintf(
			"%s of excusable delay may support a time-extension claim for this period", fmtDays(days)))
	}
	if score, ok := r.Metadata["documentation_score"].(float64); ok && score < 50 {
		out = append(out, fmt.Sprintf("Documentation score is %.0f/100; findings rest on a thin record", score))
	}
	return out
}

func (m *Contemporaneous) summary(r *Result, byResp map[string]float64, in Inputs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contemporaneous Period Analysis Summary:\n\n")
	fmt.Fprintf(&b, "Period: %s to %s\n", in.PeriodStart.Format("2006-01-02"), in.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total Delay in Period: %s\n", fmtDays(r.TotalDelayDays))
	fmt.Fprintf(&b, "Critical Path Delay: %s\n", fmtDays(r.CriticalDelayDays))
	if score, ok := r.Metadata["documentation_score"].(float64); ok {
		fmt.Fprintf(&b, "Documentation Score: %.0f/100\n", score)
	}

	b.WriteString("\nDelay by Responsibility:\n")
	for _, resp := range []string{
		engine.ResponsibilityOwner,
		engine.ResponsibilityContractor,
		engine.ResponsibilityExcusable,
		engine.ResponsibilityTBD,
	} {
		if days, ok := byResp[resp]; ok && days > 0 {
			fmt.Fprintf(&b, "  - %s: %s\n", resp, fmtDays(days))
		}
	}

	b.WriteString("\nDelay by Cause:\n")
	for _, c := range r.TopCauses(0) {
		fmt.Fprintf(&b, "  - %s: %s\n", c.Cause, fmtDays(c.Days))
	}
	return b.String()
}
