package domain

// TraceMove records what happened to one alphabet symbol while expanding a subset.
type TraceMove struct {
	Symbol  Symbol   `json:"symbol"`
	Move    StateSet `json:"move"`
	Closure StateSet `json:"closure"`
	// New is true when Closure was seen for the first time and queued.
	New bool `json:"new,omitempty"`
}

// TraceStep describes one worklist iteration of subset construction.
type TraceStep struct {
	Index  int         `json:"index"`
	Subset StateSet    `json:"subset"`
	Moves  []TraceMove `json:"moves"`
}

// Trace is the ordered list of worklist iterations. It is diagnostic only.
type Trace []TraceStep

// Discovered returns every subset the trace queued, in discovery order,
// starting with the subset of the first step.
func (t Trace) Discovered() []StateSet {
	if len(t) == 0 {
		return nil
	}
	out := []StateSet{t[0].Subset}
	for _, step := range t {
		for _, mv := range step.Moves {
			if mv.New {
				out = append(out, mv.Closure)
			}
		}
	}
	return out
}
