package automaton

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// DStateID identifies a DFA state. IDs are assigned in discovery order starting at 1.
type DStateID int

const (
	DStateIDNil     = DStateID(0)
	DStateIDInitial = DStateID(1)
)

func (id DStateID) Int() int {
	return int(id)
}

type DState struct {
	ID     DStateID
	Subset StateSet
	Final  bool
}

func (s *DState) String() string {
	if s.Final {
		return fmt.Sprintf("%v %v (final)", s.ID, s.Subset)
	}
	return fmt.Sprintf("%v %v", s.ID, s.Subset)
}

// DFA is the result of a subset construction.
type DFA struct {
	alphabet []string
	symIndex map[string]int

	// states[0] is unused so that an ID can be used as an index.
	states []*DState

	// trans[id][i] is the destination of state id on alphabet[i], or DStateIDNil.
	trans [][]DStateID
}

// Alphabet returns the input symbols in declared order. It never contains the epsilon symbol.
func (d *DFA) Alphabet() []string {
	return slices.Clone(d.alphabet)
}

func (d *DFA) StateCount() int {
	return len(d.states) - 1
}

// States returns the states in ID order.
func (d *DFA) States() []*DState {
	return slices.Clone(d.states[1:])
}

func (d *DFA) State(id DStateID) (*DState, bool) {
	if id <= DStateIDNil || int(id) >= len(d.states) {
		return nil, false
	}
	return d.states[id], true
}

func (d *DFA) InitialState() DStateID {
	return DStateIDInitial
}

func (d *DFA) FinalStates() []DStateID {
	var ids []DStateID
	for _, s := range d.states[1:] {
		if s.Final {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Next returns the destination of a transition. The second result is false when the state has
// no transition on sym.
func (d *DFA) Next(id DStateID, sym string) (DStateID, bool) {
	i, ok := d.symIndex[sym]
	if !ok || id <= DStateIDNil || int(id) >= len(d.trans) {
		return DStateIDNil, false
	}
	next := d.trans[id][i]
	return next, next != DStateIDNil
}

// Accepts reports whether the DFA accepts the input. A symbol outside the alphabet rejects the
// input.
func (d *DFA) Accepts(input []string) bool {
	id := d.InitialState()
	for _, sym := range input {
		next, ok := d.Next(id, sym)
		if !ok {
			return false
		}
		id = next
	}
	return d.states[id].Final
}
