package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/schema"
)

// Report is the outcome of validating one definition.
// Problems make the definition unusable; warnings do not.
type Report struct {
	Name        string
	Problems    []*domain.MalformedError
	Unreachable []domain.StateID // Not reachable from the start state
	Dead        []domain.StateID // Cannot reach any accepting state
}

// OK reports whether the definition builds.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// String renders the report as a short, line-oriented summary.
func (r *Report) String() string {
	var sb strings.Builder
	if r.OK() && len(r.Unreachable) == 0 && len(r.Dead) == 0 {
		fmt.Fprintf(&sb, "%s: ok\n", r.Name)
		return sb.String()
	}
	for _, p := range r.Problems {
		fmt.Fprintf(&sb, "%s: error: %s\n", r.Name, p.Error())
	}
	if len(r.Unreachable) > 0 {
		fmt.Fprintf(&sb, "%s: warning: unreachable states: %s\n", r.Name, join(r.Unreachable))
	}
	if len(r.Dead) > 0 {
		fmt.Fprintf(&sb, "%s: warning: states that never accept: %s\n", r.Name, join(r.Dead))
	}
	return sb.String()
}

// Validate builds def and, when it builds, crawls it from the start state.
func Validate(def *schema.Definition) *Report {
	report := &Report{Name: def.Name}

	a, err := def.ToAutomaton()
	if err != nil {
		report.Problems = domain.MalformedErrors(err)
		if len(report.Problems) == 0 {
			report.Problems = []*domain.MalformedError{{Reason: err.Error()}}
		}
		return report
	}

	reachable := crawl([]domain.StateID{a.Start()}, successors(a))
	live := crawl(a.Accept(), predecessors(a))

	for _, id := range a.States() {
		if !reachable[id] {
			report.Unreachable = append(report.Unreachable, id)
		}
		if !live[id] {
			report.Dead = append(report.Dead, id)
		}
	}
	return report
}

// crawl is a breadth-first search over edges from the seeds.
func crawl(seeds []domain.StateID, edges map[domain.StateID][]domain.StateID) map[domain.StateID]bool {
	visited := make(map[domain.StateID]bool, len(seeds))
	queue := slices.Clone(seeds)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// successors ignores symbols: epsilon moves count like any other.
func successors(a *domain.Automaton) map[domain.StateID][]domain.StateID {
	out := make(map[domain.StateID][]domain.StateID)
	for _, e := range a.Entries() {
		out[e.From] = append(out[e.From], e.To...)
	}
	return out
}

func predecessors(a *domain.Automaton) map[domain.StateID][]domain.StateID {
	out := make(map[domain.StateID][]domain.StateID)
	for _, e := range a.Entries() {
		for _, to := range e.To {
			out[to] = append(out[to], e.From)
		}
	}
	return out
}

func join(ids []domain.StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
