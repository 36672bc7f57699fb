package engine

import (
	"testing"
	"time"
)

func TestMatchCauseRules_OrderedTopToBottom(t *testing.T) {
	// Text mentioning both weather and labor: the earlier rule wins.
	cause, ok := MatchCauseRules(DefaultCauseRules, "crew sent home due to rain")
	if !ok {
		t.Fatal("expected a rule match")
	}
	if cause != "Weather Delay" {
		t.Errorf("expected Weather Delay (first matching rule), got %s", cause)
	}

	if _, ok := MatchCauseRules(DefaultCauseRules, "nothing notable today"); ok {
		t.Error("expected no match for neutral text")
	}
}

func TestClassifyCause_FromDailyLogs(t *testing.T) {
	logs := []DailyLog{
		{Date: date(2024, 2, 10), Notes: "A3000 steel erection waiting on supplier delivery"},
	}

	cause := ClassifyCause("A3000", "Structural Steel Erection",
		date(2024, 2, 1), date(2024, 2, 28), logs, nil, nil)
	if cause != "Material Delay" {
		t.Errorf("expected Material Delay, got %s", cause)
	}
}

func TestClassifyCause_LogOutsidePeriodIgnored(t *testing.T) {
	logs := []DailyLog{
		{Date: date(2024, 5, 1), Notes: "A3000 delayed by rain"},
	}

	cause := ClassifyCause("A3000", "Steel",
		date(2024, 2, 1), date(2024, 2, 28), logs, nil, nil)
	if cause != "Progress Delay" {
		t.Errorf("expected default Progress Delay, got %s", cause)
	}
}

func TestClassifyCause_AdverseWeatherFallback(t *testing.T) {
	weather := map[time.Time]Weather{
		date(2024, 2, 5): {Adverse: true},
		date(2024, 2, 6): {Adverse: true},
		date(2024, 2, 7): {Adverse: true},
		date(2024, 2, 8): {Adverse: true},
	}

	cause := ClassifyCause("A1", "Excavation",
		date(2024, 2, 1), date(2024, 2, 28), nil, nil, weather)
	if cause != "Adverse Weather" {
		t.Errorf("expected Adverse Weather after 4 adverse days, got %s", cause)
	}
}

func TestClassifyCause_ReportIssues(t *testing.T) {
	reports := []ProgressReport{
		{Date: date(2024, 2, 15), Issues: []Issue{{Ref: "A2000 excavation", Type: "Permit Hold"}}},
	}

	cause := ClassifyCause("A2000", "Excavation",
		date(2024, 2, 1), date(2024, 2, 28), nil, reports, nil)
	if cause != "Permit Hold" {
		t.Errorf("expected issue type from report, got %s", cause)
	}
}

func TestResponsibility_Partition(t *testing.T) {
	cases := map[string]string{
		"Weather Delay":   ResponsibilityExcusable,
		"Adverse Weather": ResponsibilityExcusable,
		"Design Issue":    ResponsibilityOwner,
		"Change Order":    ResponsibilityOwner,
		"Labor Issue":     ResponsibilityContractor,
		"Progress Delay":  ResponsibilityContractor,
		"Permit Hold":     ResponsibilityTBD,
	}
	for cause, want := range cases {
		if got := Responsibility(cause); got != want {
			t.Errorf("Responsibility(%q) = %q, want %q", cause, got, want)
		}
	}
}

func TestDocumentationScore(t *testing.T) {
	start, end := date(2024, 2, 1), date(2024, 2, 11) // 10-day period

	// Full coverage: a log every day, reports above weekly cadence,
	// all logs complete.
	var logs []DailyLog
	for i := 0; i < 10; i++ {
		logs = append(logs, DailyLog{Date: start.AddDate(0, 0, i), Notes: "work progressing"})
	}
	reports := []ProgressReport{{Date: date(2024, 2, 5)}, {Date: date(2024, 2, 10)}}

	if got := DocumentationScore(logs, reports, start, end); got != 100 {
		t.Errorf("expected full score 100, got %v", got)
	}

	// No documentation at all.
	if got := DocumentationScore(nil, nil, start, end); got != 0 {
		t.Errorf("expected score 0 with no records, got %v", got)
	}

	// Half log coverage, no reports: 50*0.5 + 0 + 100*0.2 = 45.
	got := DocumentationScore(logs[:5], nil, start, end)
	if got != 45 {
		t.Errorf("expected score 45, got %v", got)
	}
}

func TestDocumentedInLogs(t *testing.T) {
	logs := []DailyLog{{Date: date(2024, 2, 1), Notes: "structural steel erection on hold"}}

	if !DocumentedInLogs("A3000", "Structural Steel Erection", logs) {
		t.Error("expected name match in logs")
	}
	if DocumentedInLogs("A9999", "Landscaping", logs) {
		t.Error("expected no match")
	}
}
