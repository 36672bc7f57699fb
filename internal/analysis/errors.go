package analysis

import "fmt"

// ValidationError reports a required analysis input that is absent.
// The analysis does not proceed.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Input)
}

// InsufficientDataError reports that a period or window analysis found
// fewer schedule snapshots than the method needs.
type InsufficientDataError struct {
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d schedule updates in the analysis period, got %d", e.Need, e.Got)
}
