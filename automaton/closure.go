package automaton

// EpsilonClosure returns the smallest superset of s that is closed under the epsilon
// transitions of nfa. Epsilon cycles are allowed.
func EpsilonClosure(nfa *NFA, s StateSet) StateSet {
	if !nfa.hasEpsilon || s.IsEmpty() {
		return s
	}

	visited := make(map[NFAState]struct{}, s.Len())
	stack := make([]NFAState, 0, s.Len())
	for _, state := range s.s {
		visited[state] = struct{}{}
		stack = append(stack, state)
	}
	closure := make([]NFAState, 0, s.Len())
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		closure = append(closure, state)
		for _, next := range nfa.epsilonTransitions(state).s {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return NewStateSet(closure...)
}
