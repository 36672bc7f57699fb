package schedule

import "time"

// RelType is a precedence relationship type between two activities.
type RelType string

const (
	FinishToStart  RelType = "FS"
	StartToStart   RelType = "SS"
	FinishToFinish RelType = "FF"
	StartToFinish  RelType = "SF"
)

// Relationship is a directed dependency edge from a predecessor activity
// to a successor activity. Lag is in calendar days; negative lag is a lead.
type Relationship struct {
	Pred string  `json:"pred"`
	Succ string  `json:"succ"`
	Type RelType `json:"type"`
	Lag  int     `json:"lag"`
}

// Activity is one schedule task. Start/Finish are the planned dates;
// the early/late dates and floats are filled in by Recalculate or by
// ingestion. ActualStart/ActualFinish are nil until work begins/ends.
type Activity struct {
	ID              string     `json:"activity_id"`
	Name            string     `json:"name"`
	Duration        float64    `json:"duration"` // calendar days
	Start           time.Time  `json:"start_date"`
	Finish          time.Time  `json:"finish_date"`
	EarlyStart      time.Time  `json:"early_start"`
	EarlyFinish     time.Time  `json:"early_finish"`
	LateStart       time.Time  `json:"late_start"`
	LateFinish      time.Time  `json:"late_finish"`
	TotalFloat      float64    `json:"total_float"`
	FreeFloat       float64    `json:"free_float"`
	ActualStart     *time.Time `json:"actual_start,omitempty"`
	ActualFinish    *time.Time `json:"actual_finish,omitempty"`
	PercentComplete float64    `json:"percent_complete"`

	// Derived from the relationship list; never authoritative.
	Predecessors []string `json:"-"`
	Successors   []string `json:"-"`
}

// IsCritical reports whether the activity is on the critical path
// (zero or negative total float).
func (a *Activity) IsCritical() bool {
	return a.TotalFloat <= 0
}

// IsStarted reports whether work on the activity has begun.
func (a *Activity) IsStarted() bool {
	return a.ActualStart != nil
}

// IsFinished reports whether the activity is complete.
func (a *Activity) IsFinished() bool {
	return a.ActualFinish != nil
}

// RemainingDuration returns the days of work left based on percent complete.
func (a *Activity) RemainingDuration() float64 {
	if a.IsFinished() {
		return 0
	}
	return a.Duration * (1 - a.PercentComplete/100.0)
}

// CurrentFinish returns the actual finish when present, else the planned finish.
func (a *Activity) CurrentFinish() time.Time {
	if a.ActualFinish != nil {
		return *a.ActualFinish
	}
	return a.Finish
}

// Schedule is a complete project network: activities keyed by ID plus an
// ordered relationship list. Analysis methods treat a caller-supplied
// Schedule as read-only; any what-if schedule is built on a Clone.
type Schedule struct {
	ProjectName   string
	ProjectStart  time.Time
	ProjectFinish time.Time
	DataDate      time.Time

	Activities    map[string]*Activity
	Relationships []Relationship
}

// SummaryStats are aggregate figures over the whole schedule.
type SummaryStats struct {
	TotalActivities      int
	CriticalActivities   int
	CompletedActivities  int
	InProgressActivities int
	NotStartedActivities int
	TotalDuration        float64
	AvgCompletion        float64
}
