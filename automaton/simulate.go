package automaton

// Accepts reports whether the NFA accepts the input by tracking the set of states it can be in.
// A symbol outside the alphabet, or the epsilon symbol, rejects the input.
func (n *NFA) Accepts(input []string) bool {
	current := EpsilonClosure(n, NewStateSet(n.initial))
	for _, sym := range input {
		if _, ok := n.trans[sym]; !ok || n.IsEpsilon(sym) {
			return false
		}
		current = EpsilonClosure(n, Move(n, current, sym))
		if current.IsEmpty() {
			return false
		}
	}
	return current.Intersects(n.accepting)
}
