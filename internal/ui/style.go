package ui

import "github.com/fatih/color"

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// SeverityIcon returns a colored marker scaled to the size of a delay.
func SeverityIcon(delayDays float64) string {
	switch {
	case delayDays >= 20:
		return BoldRed("▲")
	case delayDays >= 10:
		return Red("▲")
	case delayDays >= 5:
		return Yellow("△")
	case delayDays > 0:
		return Dim("△")
	default:
		return Green("✓")
	}
}

// CriticalMark flags critical-path delays in table rows.
func CriticalMark(critical bool) string {
	if critical {
		return BoldYellow("⚡")
	}
	return " "
}

// Responsibility colors a responsibility bucket for report rows.
func Responsibility(resp string) string {
	switch resp {
	case "Owner":
		return Magenta(resp)
	case "Contractor":
		return Red(resp)
	case "Excusable (Neither Party)":
		return Green(resp)
	default:
		return Dim(resp)
	}
}
