// Package loader reads schedules, delay events, and contemporaneous
// records from JSON files into the domain types. It is the only place
// that touches the filesystem; everything downstream works on
// in-memory graphs.
package loader

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dmourad/delaylens/internal/engine"
	"github.com/dmourad/delaylens/internal/schedule"
)

// dateFormats are tried in order. Day-first layouts come before
// month-first, so ambiguous slash dates read as day/month/year.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a date string in any supported layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func optionalDate(r gjson.Result) *time.Time {
	if !r.Exists() || r.String() == "" {
		return nil
	}
	t, err := ParseDate(r.String())
	if err != nil {
		return nil
	}
	return &t
}

// LoadSchedule reads one schedule file. Activities are keyed by
// activity_id; relationship endpoints must name loaded activities.
func LoadSchedule(path string) (*schedule.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return ParseSchedule(data)
}

// ParseSchedule parses schedule JSON.
func ParseSchedule(data []byte) (*schedule.Schedule, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("schedule file is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	s := schedule.New(root.Get("project_name").String())
	if t := optionalDate(root.Get("project_start")); t != nil {
		s.ProjectStart = *t
	}
	if t := optionalDate(root.Get("project_finish")); t != nil {
		s.ProjectFinish = *t
	}
	if t := optionalDate(root.Get("data_date")); t != nil {
		s.DataDate = *t
	}

	var parseErr error
	root.Get("activities").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("activity_id").String()
		if id == "" {
			log.Printf("warning: skipping activity with no activity_id")
			return true
		}
		a := &schedule.Activity{
			ID:              id,
			Name:            item.Get("name").String(),
			Duration:        item.Get("duration").Float(),
			TotalFloat:      item.Get("total_float").Float(),
			FreeFloat:       item.Get("free_float").Float(),
			PercentComplete: item.Get("percent_complete").Float(),
			ActualStart:     optionalDate(item.Get("actual_start")),
			ActualFinish:    optionalDate(item.Get("actual_finish")),
		}
		if t := optionalDate(item.Get("start_date")); t != nil {
			a.Start = *t
		}
		if t := optionalDate(item.Get("finish_date")); t != nil {
			a.Finish = *t
		}
		s.AddActivity(a)
		return true
	})

	root.Get("relationships").ForEach(func(_, item gjson.Result) bool {
		pred := item.Get("pred").String()
		succ := item.Get("succ").String()
		if _, ok := s.Activities[pred]; !ok {
			parseErr = fmt.Errorf("relationship references unknown activity %q", pred)
			return false
		}
		if _, ok := s.Activities[succ]; !ok {
			parseErr = fmt.Errorf("relationship references unknown activity %q", succ)
			return false
		}
		relType := schedule.RelType(item.Get("type").String())
		switch relType {
		case schedule.StartToStart, schedule.FinishToFinish, schedule.StartToFinish:
		default:
			relType = schedule.FinishToStart
		}
		s.AddRelationship(pred, succ, relType, int(item.Get("lag").Int()))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if s.ProjectFinish.IsZero() {
		s.RefreshProjectFinish()
	}
	return s, nil
}

// LoadEvents reads a delay event file: a JSON array of events. Events
// with no activity_id are skipped with a warning.
func LoadEvents(path string) ([]engine.DelayEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("event file is not valid JSON")
	}

	var events []engine.DelayEvent
	gjson.ParseBytes(data).ForEach(func(_, item gjson.Result) bool {
		id := item.Get("activity_id").String()
		if id == "" {
			log.Printf("warning: skipping delay event with no activity_id")
			return true
		}
		events = append(events, engine.DelayEvent{
			ActivityID: id,
			DelayDays:  item.Get("delay_days").Float(),
			Cause:      item.Get("cause").String(),
			EventDate:  optionalDate(item.Get("event_date")),
		})
		return true
	})
	return events, nil
}

// Records bundles the contemporaneous record types read from one file.
type Records struct {
	DailyLogs       []engine.DailyLog
	ProgressReports []engine.ProgressReport
	Weather         map[time.Time]engine.Weather
}

// LoadRecords reads a contemporaneous records file holding daily_logs,
// progress_reports, and weather sections. Entries with unparseable
// dates are skipped with a warning.
func LoadRecords(path string) (*Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("records file is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	rec := &Records{Weather: make(map[time.Time]engine.Weather)}

	root.Get("daily_logs").ForEach(func(_, item gjson.Result) bool {
		t, err := ParseDate(item.Get("date").String())
		if err != nil {
			log.Printf("warning: skipping daily log: %v", err)
			return true
		}
		rec.DailyLogs = append(rec.DailyLogs, engine.DailyLog{
			Date:  t,
			Notes: item.Get("notes").String(),
		})
		return true
	})

	root.Get("progress_reports").ForEach(func(_, item gjson.Result) bool {
		t, err := ParseDate(item.Get("date").String())
		if err != nil {
			log.Printf("warning: skipping progress report: %v", err)
			return true
		}
		rep := engine.ProgressReport{Date: t}
		item.Get("issues").ForEach(func(_, issue gjson.Result) bool {
			rep.Issues = append(rep.Issues, engine.Issue{
				Ref:  issue.Get("ref").String(),
				Type: issue.Get("type").String(),
			})
			return true
		})
		rec.ProgressReports = append(rec.ProgressReports, rep)
		return true
	})

	root.Get("weather").ForEach(func(_, item gjson.Result) bool {
		t, err := ParseDate(item.Get("date").String())
		if err != nil {
			log.Printf("warning: skipping weather entry: %v", err)
			return true
		}
		rec.Weather[t] = engine.Weather{
			Adverse:     item.Get("adverse").Bool(),
			Description: item.Get("description").String(),
		}
		return true
	})

	return rec, nil
}

// LoadUpdates reads a set of schedule files and keys each by its
// data_date. Every update must carry one.
func LoadUpdates(paths []string) (map[time.Time]*schedule.Schedule, error) {
	updates := make(map[time.Time]*schedule.Schedule, len(paths))
	for _, p := range paths {
		s, err := LoadSchedule(p)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", p, err)
		}
		if s.DataDate.IsZero() {
			return nil, fmt.Errorf("update %s: missing data_date", p)
		}
		updates[s.DataDate] = s
	}
	return updates, nil
}
