package automaton

// Move returns the states reachable from any member of s by one transition on sym. The result
// is empty when sym is the epsilon symbol.
func Move(nfa *NFA, s StateSet, sym string) StateSet {
	if nfa.IsEpsilon(sym) {
		return StateSet{}
	}
	tab, ok := nfa.trans[sym]
	if !ok {
		return StateSet{}
	}
	var to []NFAState
	for _, state := range s.s {
		to = append(to, tab[state].s...)
	}
	return NewStateSet(to...)
}
