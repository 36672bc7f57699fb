package analysis

import (
	"fmt"
	"sort"
	"time"
)

// ActivityDelay is one per-activity delay record inside a Result. The
// method-specific fields are populated only by the methods that compute
// them and omitted from JSON otherwise.
type ActivityDelay struct {
	ActivityID string  `json:"activity_id"`
	Name       string  `json:"activity_name"`
	DelayDays  float64 `json:"delay_days"`
	Cause      string  `json:"cause"`
	IsCritical bool    `json:"is_critical"`

	EventDate      *time.Time `json:"event_date,omitempty"`
	BaselineFinish *time.Time `json:"baseline_finish,omitempty"`
	ActualFinish   *time.Time `json:"actual_finish,omitempty"`

	// Impacted As-Planned
	ImpactMultiplier *float64 `json:"impact_multiplier,omitempty"`
	ProjectedImpact  *float64 `json:"projected_impact,omitempty"`

	// Collapsed As-Built
	CollapsedFinish *time.Time `json:"collapsed_finish,omitempty"`

	// Time Impact Analysis
	TimeImpactDays   *float64 `json:"time_impact_days,omitempty"`
	CumulativeImpact *float64 `json:"cumulative_impact,omitempty"`
	Sequence         int      `json:"sequence_number,omitempty"`

	// Windows Analysis
	Window int `json:"window_number,omitempty"`

	// Contemporaneous Period Analysis
	Responsibility   string `json:"responsibility,omitempty"`
	DocumentedInLogs bool   `json:"documented_in_logs,omitempty"`
}

// Result is the aggregated output of one analysis invocation. It is
// populated incrementally during the computation that produced it and
// treated as immutable after return.
type Result struct {
	MethodName        string             `json:"method_name"`
	AnalysisDate      time.Time          `json:"analysis_date"`
	TotalDelayDays    float64            `json:"total_delay_days"`
	CriticalDelayDays float64            `json:"critical_delay_days"`
	DelaysByActivity  []ActivityDelay    `json:"delays_by_activity"`
	DelaysByCause     map[string]float64 `json:"delays_by_cause"`
	Recommendations   []string           `json:"recommendations"`
	Summary           string             `json:"summary"`
	Metadata          map[string]any     `json:"metadata"`
}

// NewResult creates an empty Result for the named method, stamped now.
func NewResult(methodName string) *Result {
	return &Result{
		MethodName:    methodName,
		AnalysisDate:  time.Now(),
		DelaysByCause: make(map[string]float64),
		Metadata:      make(map[string]any),
	}
}

// AddDelay appends a per-activity delay record and folds its days into
// the cause totals.
func (r *Result) AddDelay(d ActivityDelay) {
	r.DelaysByActivity = append(r.DelaysByActivity, d)
	r.DelaysByCause[d.Cause] += d.DelayDays
}

// TopCauses returns up to n causes in descending order of cumulative
// days, ties broken by cause name.
func (r *Result) TopCauses(n int) []CauseTotal {
	out := make([]CauseTotal, 0, len(r.DelaysByCause))
	for cause, days := range r.DelaysByCause {
		out = append(out, CauseTotal{Cause: cause, Days: days})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		return out[i].Cause < out[j].Cause
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CauseTotal pairs a delay cause with its cumulative days.
type CauseTotal struct {
	Cause string  `json:"cause"`
	Days  float64 `json:"days"`
}

// MostDelayed returns up to n activity delays in descending order of
// magnitude, ties broken by activity ID.
func (r *Result) MostDelayed(n int) []ActivityDelay {
	out := append([]ActivityDelay(nil), r.DelaysByActivity...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DelayDays != out[j].DelayDays {
			return out[i].DelayDays > out[j].DelayDays
		}
		return out[i].ActivityID < out[j].ActivityID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CriticalCount returns how many recorded delays are on the critical path.
func (r *Result) CriticalCount() int {
	n := 0
	for _, d := range r.DelaysByActivity {
		if d.IsCritical {
			n++
		}
	}
	return n
}

func fmtDays(days float64) string {
	return fmt.Sprintf("%.1f days", days)
}
