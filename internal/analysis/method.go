// Package analysis implements the six forensic schedule delay analysis
// methods over a shared Method interface, dispatched through a Registry.
package analysis

import (
	"time"

	"github.com/dmourad/delaylens/internal/engine"
	"github.com/dmourad/delaylens/internal/schedule"
)

// Inputs carries everything a method may need. Each method validates the
// subset it requires; the rest may be zero. Methods never mutate the
// supplied schedules — what-if work happens on private clones.
type Inputs struct {
	Baseline *schedule.Schedule
	Current  *schedule.Schedule
	AsBuilt  *schedule.Schedule

	Events  []engine.DelayEvent
	Updates map[time.Time]*schedule.Schedule

	PeriodStart time.Time
	PeriodEnd   time.Time

	DailyLogs       []engine.DailyLog
	ProgressReports []engine.ProgressReport
	Weather         map[time.Time]engine.Weather

	// Options.
	IncludeNonCritical bool   // As-Planned vs As-Built; default true via NewInputs
	WindowMethod       string // Windows Analysis: "Monthly", "Fixed Duration", "Schedule Updates"
	WindowSizeDays     int    // Windows Analysis, "Fixed Duration" mode
}

// NewInputs returns Inputs with option defaults applied.
func NewInputs() Inputs {
	return Inputs{
		IncludeNonCritical: true,
		WindowMethod:       WindowMethodMonthly,
		WindowSizeDays:     30,
	}
}

// Window method option values.
const (
	WindowMethodMonthly = "Monthly"
	WindowMethodFixed   = "Fixed Duration"
	WindowMethodUpdates = "Schedule Updates"
)

// Prompt describes one configuration input a caller can present to a
// user before running a method. The core never renders these.
type Prompt struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // "select", "number", "date"
	Options []string `json:"options,omitempty"`
	Default string   `json:"default,omitempty"`
	Help    string   `json:"help,omitempty"`
}

// Method is one forensic delay-analysis strategy. Analyze is a pure
// function over its inputs: safe for concurrent use by callers holding
// separate graphs.
type Method interface {
	// Name is the registry key, e.g. "As-Planned vs As-Built".
	Name() string
	// Describe returns a one-paragraph description of the method.
	Describe() string
	// Prompts lists the method's configuration inputs for form building.
	Prompts() []Prompt
	// Validate checks that the required inputs are present.
	Validate(in Inputs) error
	// Suggest returns advisory notes about the supplied inputs.
	Suggest(in Inputs) []string
	// Analyze runs the method and returns a populated Result.
	Analyze(in Inputs) (*Result, error)
}
