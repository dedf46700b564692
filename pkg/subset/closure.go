package subset

import "github.com/aretw0/powerset/pkg/domain"

// Closure returns the epsilon-closure of set: the members of set plus every
// state reachable from them through empty-symbol transitions.
func Closure(a *domain.Automaton, set domain.StateSet) domain.StateSet {
	if set.IsEmpty() {
		return set
	}

	stack := set.IDs()
	visited := make(map[domain.StateID]struct{}, len(stack))
	for _, id := range stack {
		visited[id] = struct{}{}
	}
	grew := false

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range a.Next(id, domain.Epsilon).IDs() {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
			grew = true
		}
	}

	if !grew {
		return set
	}
	out := make([]domain.StateID, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	return domain.NewStateSet(out...)
}

// Move returns the union of the direct destinations of every member of set on sym.
// It does not follow epsilon transitions; compose with Closure for that.
// Asking for Epsilon itself yields the empty set.
func Move(a *domain.Automaton, set domain.StateSet, sym domain.Symbol) domain.StateSet {
	if sym == domain.Epsilon {
		return domain.StateSet{}
	}
	var out []domain.StateID
	for _, id := range set.IDs() {
		out = append(out, a.Next(id, sym).IDs()...)
	}
	return domain.NewStateSet(out...)
}

// Accepts simulates a on word and reports whether it ends in an accepting state.
// The simulation is epsilon-closed, so it works for both NFAs and DFAs.
func Accepts(a *domain.Automaton, word []domain.Symbol) bool {
	current := Closure(a, domain.NewStateSet(a.Start()))
	for _, sym := range word {
		current = Closure(a, Move(a, current, sym))
		if current.IsEmpty() {
			return false
		}
	}
	return current.Intersects(a.AcceptSet())
}
