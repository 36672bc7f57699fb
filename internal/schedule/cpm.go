package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CycleError reports a dependency cycle in the schedule network. A cyclic
// graph is an input error, fatal for CPM and critical-path computation.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// AddDays returns t shifted by a (possibly fractional, possibly negative)
// number of calendar days.
func AddDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// DaysBetween returns the signed calendar-day delta from a to b.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// adjacency builds successor and predecessor edge lists from the
// relationship list, skipping edges whose endpoints are not in the
// schedule. Edge lists are sorted for deterministic traversal.
func (s *Schedule) adjacency() (adj, rev map[string][]Relationship) {
	adj = make(map[string][]Relationship)
	rev = make(map[string][]Relationship)
	for _, r := range s.Relationships {
		if _, ok := s.Activities[r.Pred]; !ok {
			continue
		}
		if _, ok := s.Activities[r.Succ]; !ok {
			continue
		}
		adj[r.Pred] = append(adj[r.Pred], r)
		rev[r.Succ] = append(rev[r.Succ], r)
	}
	for k := range adj {
		sort.Slice(adj[k], func(i, j int) bool { return adj[k][i].Succ < adj[k][j].Succ })
	}
	for k := range rev {
		sort.Slice(rev[k], func(i, j int) bool { return rev[k][i].Pred < rev[k][j].Pred })
	}
	return adj, rev
}

// TopoOrder returns the activity IDs in topological order using Kahn's
// algorithm, ready sets sorted for determinism. Returns a *CycleError if
// the network is cyclic.
func (s *Schedule) TopoOrder() ([]string, error) {
	adj, rev := s.adjacency()

	inDegree := make(map[string]int, len(s.Activities))
	for id := range s.Activities {
		inDegree[id] = len(rev[id])
	}

	var queue []string
	for id := range s.Activities {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []string
		for _, r := range adj[node] {
			inDegree[r.Succ]--
			if inDegree[r.Succ] == 0 {
				newReady = append(newReady, r.Succ)
			}
		}
		sort.Strings(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != len(s.Activities) {
		cycle := s.DetectCycle()
		return nil, &CycleError{Cycle: cycle}
	}
	return order, nil
}

// DetectCycle returns a cycle path if one exists, or nil for an acyclic
// network. DFS with coloring: white (unvisited), gray (in progress),
// black (done).
func (s *Schedule) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	adj, _ := s.adjacency()
	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, r := range adj[node] {
			next := r.Succ
			if color[next] == gray {
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range s.SortedIDs() {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Recalculate runs the forward and backward CPM passes, filling in
// early/late start/finish and total/free float for every activity.
// Activities with unset planned dates also get Start/Finish from the
// early dates. An empty schedule is a no-op, not an error.
func (s *Schedule) Recalculate() error {
	if len(s.Activities) == 0 {
		return nil
	}

	order, err := s.TopoOrder()
	if err != nil {
		return err
	}
	adj, rev := s.adjacency()

	// Forward pass.
	for _, id := range order {
		a := s.Activities[id]

		es := s.ProjectStart
		if a.IsStarted() && !s.DataDate.IsZero() && s.DataDate.After(es) {
			es = s.DataDate
		}
		for _, r := range rev[id] {
			pred := s.Activities[r.Pred]
			var cand time.Time
			switch r.Type {
			case StartToStart:
				cand = AddDays(pred.EarlyStart, float64(r.Lag))
			case FinishToFinish:
				cand = AddDays(pred.EarlyFinish, float64(r.Lag)-a.Duration)
			case StartToFinish:
				cand = AddDays(pred.EarlyStart, float64(r.Lag)-a.Duration)
			default: // FS
				cand = AddDays(pred.EarlyFinish, float64(r.Lag))
			}
			if cand.After(es) {
				es = cand
			}
		}
		a.EarlyStart = es
		a.EarlyFinish = AddDays(es, a.Duration)
	}

	// Project finish = latest early finish over terminal activities.
	var projectFinish time.Time
	for _, id := range order {
		if len(adj[id]) == 0 {
			if ef := s.Activities[id].EarlyFinish; ef.After(projectFinish) {
				projectFinish = ef
			}
		}
	}

	// Backward pass, in reverse topological order.
	for i := len(order) - 1; i >= 0; i-- {
		a := s.Activities[order[i]]

		lf := projectFinish
		for _, r := range adj[order[i]] {
			succ := s.Activities[r.Succ]
			var cand time.Time
			switch r.Type {
			case StartToStart:
				cand = AddDays(succ.LateStart, a.Duration-float64(r.Lag))
			case FinishToFinish:
				cand = AddDays(succ.LateFinish, -float64(r.Lag))
			case StartToFinish:
				cand = AddDays(succ.LateFinish, a.Duration-float64(r.Lag))
			default: // FS
				cand = AddDays(succ.LateStart, -float64(r.Lag))
			}
			if cand.Before(lf) {
				lf = cand
			}
		}
		a.LateFinish = lf
		a.LateStart = AddDays(lf, -a.Duration)
	}

	// Floats.
	for _, id := range order {
		a := s.Activities[id]
		a.TotalFloat = DaysBetween(a.EarlyStart, a.LateStart)

		if len(adj[id]) == 0 {
			a.FreeFloat = a.TotalFloat
			if a.FreeFloat < 0 {
				a.FreeFloat = 0
			}
		} else {
			first := true
			var ff float64
			for _, r := range adj[id] {
				d := DaysBetween(a.EarlyFinish, s.Activities[r.Succ].EarlyStart)
				if first || d < ff {
					ff = d
					first = false
				}
			}
			a.FreeFloat = ff
		}

		if a.Start.IsZero() {
			a.Start = a.EarlyStart
		}
		if a.Finish.IsZero() {
			a.Finish = a.EarlyFinish
		}
	}

	if s.ProjectFinish.IsZero() || projectFinish.After(s.ProjectFinish) {
		s.ProjectFinish = projectFinish
	}
	return nil
}

// CriticalPath returns the maximal-duration chain of zero-float
// activities, as IDs in order from a start activity to an end activity.
// Ties are broken by lexical ID order so the result is deterministic.
// Call Recalculate first; an empty schedule yields an empty path.
func (s *Schedule) CriticalPath() ([]string, error) {
	if len(s.Activities) == 0 {
		return nil, nil
	}

	order, err := s.TopoOrder()
	if err != nil {
		return nil, err
	}
	adj, rev := s.adjacency()

	critical := func(id string) bool { return s.Activities[id].IsCritical() }

	// Longest chain through the critical subgraph, computed over the
	// topological order. bestPred records the chain for backtracking.
	chain := make(map[string]float64)
	bestPred := make(map[string]string)
	for _, id := range order {
		if !critical(id) {
			continue
		}
		chain[id] = s.Activities[id].Duration
		for _, r := range rev[id] {
			if !critical(r.Pred) {
				continue
			}
			cand := chain[r.Pred] + s.Activities[id].Duration
			prev, seen := bestPred[id]
			switch {
			case !seen, cand > chain[id]:
				chain[id] = cand
				bestPred[id] = r.Pred
			case cand == chain[id] && r.Pred < prev:
				bestPred[id] = r.Pred
			}
		}
	}

	// End of the chain: a critical terminal activity. When the network is
	// disconnected, the component with the latest-finishing terminal wins;
	// remaining ties go to chain length, then lexical ID.
	var end string
	for _, id := range order {
		if !critical(id) || len(adj[id]) != 0 {
			continue
		}
		if end == "" {
			end = id
			continue
		}
		a, b := s.Activities[id], s.Activities[end]
		switch {
		case a.EarlyFinish.After(b.EarlyFinish):
			end = id
		case a.EarlyFinish.Equal(b.EarlyFinish) && chain[id] > chain[end]:
			end = id
		case a.EarlyFinish.Equal(b.EarlyFinish) && chain[id] == chain[end] && id < end:
			end = id
		}
	}
	if end == "" {
		// No critical terminal (every critical activity has successors);
		// fall back to all critical IDs in topological order.
		var path []string
		for _, id := range order {
			if critical(id) {
				path = append(path, id)
			}
		}
		return path, nil
	}

	var path []string
	for cur := end; ; {
		path = append(path, cur)
		prev, ok := bestPred[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
