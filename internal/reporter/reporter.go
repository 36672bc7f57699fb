// Package reporter renders analysis results to a colored terminal
// report and to machine-readable JSON.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmourad/delaylens/internal/analysis"
	"github.com/dmourad/delaylens/internal/ui"
)

// Reporter formats one analysis Result.
type Reporter struct {
	Result *analysis.Result
}

// New creates a Reporter for the given result.
func New(r *analysis.Result) *Reporter {
	return &Reporter{Result: r}
}

// PrintReport writes the full terminal report: header, delay totals,
// per-activity table, cause breakdown, and recommendations.
func (r *Reporter) PrintReport(w io.Writer) {
	res := r.Result

	fmt.Fprintf(w, "\n📋 %s\n", ui.BoldCyan(res.MethodName))
	fmt.Fprintf(w, "%s\n", ui.Cyan(strings.Repeat("═", len(res.MethodName)+3)))
	fmt.Fprintf(w, "Analysis Date:   %s\n", ui.Dim(res.AnalysisDate.Format("2006-01-02")))
	fmt.Fprintf(w, "Total Delay:     %s\n", r.delayFigure(res.TotalDelayDays))
	fmt.Fprintf(w, "Critical Delay:  %s\n", r.delayFigure(res.CriticalDelayDays))
	fmt.Fprintf(w, "Delay Records:   %d (%d on critical path)\n\n",
		len(res.DelaysByActivity), res.CriticalCount())

	if len(res.DelaysByActivity) > 0 {
		fmt.Fprintf(w, "%s\n", ui.BoldWhite("Delayed Activities"))
		for _, d := range res.MostDelayed(0) {
			r.printDelayRow(w, d)
		}
		fmt.Fprintln(w)
	}

	if causes := res.TopCauses(0); len(causes) > 0 {
		fmt.Fprintf(w, "%s\n", ui.BoldWhite("Delay by Cause"))
		for _, c := range causes {
			fmt.Fprintf(w, "  %-24s %s\n", c.Cause, ui.Bold(fmt.Sprintf("%.1f days", c.Days)))
		}
		fmt.Fprintln(w)
	}

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(w, "%s\n", ui.BoldWhite("Recommendations"))
		for _, rec := range res.Recommendations {
			fmt.Fprintf(w, "  %s %s\n", ui.Cyan("→"), rec)
		}
		fmt.Fprintln(w)
	}
}

func (r *Reporter) printDelayRow(w io.Writer, d analysis.ActivityDelay) {
	name := d.Name
	if len(name) > 32 {
		name = name[:29] + "..."
	}

	extra := ""
	switch {
	case d.Responsibility != "":
		extra = ui.Responsibility(d.Responsibility)
	case d.ImpactMultiplier != nil:
		extra = ui.Dim(fmt.Sprintf("[impact ×%.2f]", *d.ImpactMultiplier))
	case d.TimeImpactDays != nil:
		extra = ui.Dim(fmt.Sprintf("[%.1fd to completion]", *d.TimeImpactDays))
	default:
		extra = ui.Dim(d.Cause)
	}

	fmt.Fprintf(w, "  %s %s %-10s %-32s %s  %s\n",
		ui.SeverityIcon(d.DelayDays),
		ui.CriticalMark(d.IsCritical),
		ui.BoldMagenta(d.ActivityID),
		name,
		ui.Bold(fmt.Sprintf("%6.1fd", d.DelayDays)),
		extra)
}

// PrintSummary writes the method's own narrative summary.
func (r *Reporter) PrintSummary(w io.Writer) {
	if r.Result.Summary == "" {
		return
	}
	fmt.Fprintf(w, "%s\n", ui.Dim(strings.Repeat("─", 40)))
	fmt.Fprintln(w, r.Result.Summary)
}

func (r *Reporter) delayFigure(days float64) string {
	s := fmt.Sprintf("%.1f days", days)
	switch {
	case days >= 20:
		return ui.BoldRed(s)
	case days > 0:
		return ui.BoldYellow(s)
	default:
		return ui.Green(s)
	}
}

// JSON returns the result as indented machine-readable JSON.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Result, "", "  ")
}
