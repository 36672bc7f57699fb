package engine

import (
	"strings"
	"time"
)

// Responsibility buckets. Causes map onto a fixed three-way partition;
// anything unmatched stays open for the analyst.
const (
	ResponsibilityExcusable  = "Excusable (Neither Party)"
	ResponsibilityOwner      = "Owner"
	ResponsibilityContractor = "Contractor"
	ResponsibilityTBD        = "To Be Determined"
)

// CauseRule maps contemporaneous-record keywords to a delay cause.
// Rules are evaluated top to bottom; the first hit wins.
type CauseRule struct {
	Keywords []string
	Cause    string
}

// DefaultCauseRules is the standard rule table for classifying delay
// causes from free-text contemporaneous records.
var DefaultCauseRules = []CauseRule{
	{Keywords: []string{"weather", "rain", "storm", "wind"}, Cause: "Weather Delay"},
	{Keywords: []string{"rfi", "clarification", "design"}, Cause: "Design Issue"},
	{Keywords: []string{"material", "delivery", "supplier"}, Cause: "Material Delay"},
	{Keywords: []string{"labor", "crew", "manpower"}, Cause: "Labor Issue"},
	{Keywords: []string{"change", "variation", "extra"}, Cause: "Change Order"},
}

// MatchCauseRules runs the rule table over a free-text record and returns
// the first matching cause.
func MatchCauseRules(rules []CauseRule, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Cause, true
			}
		}
	}
	return "", false
}

// ClassifyCause determines the delay cause for an activity from the
// contemporaneous records within [start, end]. Priority: daily-log
// keyword rules, then sustained adverse weather, then progress-report
// issues, falling back to "Progress Delay".
func ClassifyCause(activityID, activityName string, start, end time.Time,
	logs []DailyLog, reports []ProgressReport, weather map[time.Time]Weather) string {

	idLower := strings.ToLower(activityID)
	nameLower := strings.ToLower(activityName)

	for _, lg := range logs {
		if lg.Date.Before(start) || lg.Date.After(end) {
			continue
		}
		text := strings.ToLower(lg.Notes)
		if !strings.Contains(text, idLower) && !strings.Contains(text, nameLower) {
			continue
		}
		if cause, ok := MatchCauseRules(DefaultCauseRules, text); ok {
			return cause
		}
	}

	adverseDays := 0
	for d, w := range weather {
		if w.Adverse && !d.Before(start) && !d.After(end) {
			adverseDays++
		}
	}
	if adverseDays > 3 {
		return "Adverse Weather"
	}

	for _, rep := range reports {
		if rep.Date.Before(start) || rep.Date.After(end) {
			continue
		}
		for _, issue := range rep.Issues {
			if strings.Contains(issue.Ref, activityID) || strings.Contains(issue.Ref, activityName) {
				if issue.Type != "" {
					return issue.Type
				}
				return "Progress Issue"
			}
		}
	}

	return "Progress Delay"
}

// Responsibility maps a delay cause to the responsible party.
func Responsibility(cause string) string {
	switch cause {
	case "Weather Delay", "Adverse Weather", "Force Majeure":
		return ResponsibilityExcusable
	case "Design Issue", "Change Order", "Late Information", "RFI Delay":
		return ResponsibilityOwner
	case "Labor Issue", "Progress Delay", "Quality Issue", "Rework":
		return ResponsibilityContractor
	default:
		return ResponsibilityTBD
	}
}

// DocumentedInLogs reports whether any daily log mentions the activity.
func DocumentedInLogs(activityID, activityName string, logs []DailyLog) bool {
	idLower := strings.ToLower(activityID)
	nameLower := strings.ToLower(activityName)
	for _, lg := range logs {
		text := strings.ToLower(lg.Notes)
		if strings.Contains(text, idLower) || strings.Contains(text, nameLower) {
			return true
		}
	}
	return false
}

// DocumentationScore rates contemporaneous documentation 0-100: daily-log
// coverage of the period (weight 0.5), progress-report coverage against a
// weekly cadence (weight 0.3), and log completeness (weight 0.2).
func DocumentationScore(logs []DailyLog, reports []ProgressReport, start, end time.Time) float64 {
	var score float64
	periodDays := end.Sub(start).Hours() / 24

	if periodDays > 0 {
		coverage := float64(len(logs)) / periodDays * 100
		if coverage > 100 {
			coverage = 100
		}
		score += coverage * 0.5
	}

	expectedReports := periodDays / 7
	if expectedReports < 1 {
		expectedReports = 1
	}
	reportScore := float64(len(reports)) / expectedReports * 100
	if reportScore > 100 {
		reportScore = 100
	}
	score += reportScore * 0.3

	if len(logs) > 0 {
		complete := 0
		for _, lg := range logs {
			if !lg.Date.IsZero() && lg.Notes != "" {
				complete++
			}
		}
		score += float64(complete) / float64(len(logs)) * 100 * 0.2
	}

	if score > 100 {
		score = 100
	}
	return score
}
