// Package engine holds the shared delay-computation primitives that every
// analysis method builds on: schedule diffing, forward propagation,
// fragnet insertion, collapse, windowing, and cause classification.
package engine

import "time"

// DelayEvent is a discrete delay asserted against one activity, produced
// by the caller from claim documentation.
type DelayEvent struct {
	ActivityID string     `json:"activity_id"`
	DelayDays  float64    `json:"delay_days"`
	EventDate  *time.Time `json:"event_date,omitempty"`
	Cause      string     `json:"cause,omitempty"`
}

// DailyLog is one dated field log entry.
type DailyLog struct {
	Date  time.Time `json:"date"`
	Notes string    `json:"notes"`
}

// Issue is a problem item recorded in a progress report.
type Issue struct {
	Ref  string `json:"ref"`  // activity id or name the issue refers to
	Type string `json:"type"` // e.g. "Material Delay"
}

// ProgressReport is one dated periodic report.
type ProgressReport struct {
	Date   time.Time `json:"date"`
	Issues []Issue   `json:"issues,omitempty"`
}

// Weather is the recorded site condition for one day.
type Weather struct {
	Adverse     bool   `json:"adverse"`
	Description string `json:"description,omitempty"`
}
