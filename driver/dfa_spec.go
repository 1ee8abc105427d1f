package driver

import (
	"fmt"

	"github.com/nihei9/nfa2dfa/spec"
)

type StateID int

func (id StateID) Int() int {
	return int(id)
}

const StateIDNil = StateID(0)

type SymbolID int

func (id SymbolID) Int() int {
	return int(id)
}

// DFASpec is the read-only view of a DFA a recognizer walks.
type DFASpec interface {
	InitialState() StateID
	NextState(state StateID, sym SymbolID) (StateID, bool)
	Accept(state StateID) bool
	LookupSymbol(sym string) (SymbolID, bool)
	Subset(state StateID) []int
}

type dfaSpec struct {
	spec   *spec.CompiledDFA
	syms   map[string]SymbolID
	finals map[StateID]struct{}
}

// NewDFASpec validates a compiled DFA and wraps it so that a recognizer can walk it.
func NewDFASpec(cdfa *spec.CompiledDFA) (DFASpec, error) {
	err := validate(cdfa)
	if err != nil {
		return nil, err
	}

	syms := make(map[string]SymbolID, len(cdfa.Alphabet))
	for i, sym := range cdfa.Alphabet {
		syms[sym] = SymbolID(i)
	}
	finals := make(map[StateID]struct{}, len(cdfa.FinalStates))
	for _, id := range cdfa.FinalStates {
		finals[StateID(id.Int())] = struct{}{}
	}
	return &dfaSpec{
		spec:   cdfa,
		syms:   syms,
		finals: finals,
	}, nil
}

func validate(cdfa *spec.CompiledDFA) error {
	if cdfa.StateCount <= 0 {
		return fmt.Errorf("a DFA needs at least one state")
	}
	if len(cdfa.Alphabet) == 0 {
		return fmt.Errorf("a DFA needs at least one symbol")
	}
	if cdfa.InitialState <= spec.StateIDNil || cdfa.InitialState.Int() > cdfa.StateCount {
		return fmt.Errorf("invalid initial state: %v", cdfa.InitialState)
	}
	for _, id := range cdfa.FinalStates {
		if id <= spec.StateIDNil || id.Int() > cdfa.StateCount {
			return fmt.Errorf("invalid final state: %v", id)
		}
	}

	tab := cdfa.Transition
	if tab == nil {
		return fmt.Errorf("a DFA has no transition table")
	}
	if tab.RowCount != cdfa.StateCount+1 || tab.ColCount != len(cdfa.Alphabet) {
		return fmt.Errorf("the transition table size doesn't match the DFA; want: %vx%v, got: %vx%v", cdfa.StateCount+1, len(cdfa.Alphabet), tab.RowCount, tab.ColCount)
	}
	switch tab.CompressionLevel {
	case 2:
		if tab.Transition == nil || tab.Transition.UniqueEntries == nil {
			return fmt.Errorf("a level 2 transition table is broken")
		}
		rd := tab.Transition.UniqueEntries
		if rd.OriginalColCount != tab.ColCount || len(rd.RowDisplacement) != rd.OriginalRowCount || len(rd.Bounds) != len(rd.Entries) {
			return fmt.Errorf("a level 2 transition table is broken")
		}
		err := validateRowNums(tab.Transition.RowNums, tab.RowCount, rd.OriginalRowCount)
		if err != nil {
			return err
		}
		for row, d := range rd.RowDisplacement {
			if d < 0 || d+tab.ColCount > len(rd.Entries) {
				return fmt.Errorf("a displacement of a unique row %v is out of range: %v", row, d)
			}
		}
		return validateDestinations(rd.Entries, cdfa.StateCount)
	case 1:
		if tab.Transition == nil || tab.Transition.UncompressedUniqueEntries == nil {
			return fmt.Errorf("a level 1 transition table is broken")
		}
		tran := tab.Transition
		if tran.OriginalColCount != tab.ColCount || len(tran.UncompressedUniqueEntries)%tab.ColCount != 0 {
			return fmt.Errorf("a level 1 transition table is broken")
		}
		err := validateRowNums(tran.RowNums, tab.RowCount, len(tran.UncompressedUniqueEntries)/tab.ColCount)
		if err != nil {
			return err
		}
		return validateDestinations(tran.UncompressedUniqueEntries, cdfa.StateCount)
	case 0:
		if len(tab.UncompressedTransition) != tab.RowCount*tab.ColCount {
			return fmt.Errorf("an uncompressed transition table is broken")
		}
		return validateDestinations(tab.UncompressedTransition, cdfa.StateCount)
	default:
		return fmt.Errorf("unknown compression level: %v", tab.CompressionLevel)
	}
}

func validateRowNums(rowNums []int, rowCount, uniqueRowCount int) error {
	if len(rowNums) != rowCount {
		return fmt.Errorf("the number of row numbers doesn't match the table; want: %v, got: %v", rowCount, len(rowNums))
	}
	for state, n := range rowNums {
		if n < 0 || n >= uniqueRowCount {
			return fmt.Errorf("a row number of state %v is out of range: %v", state, n)
		}
	}
	return nil
}

// validateDestinations checks that every entry is StateIDNil or a state of the DFA.
func validateDestinations(entries []spec.StateID, stateCount int) error {
	for _, id := range entries {
		if id < spec.StateIDNil || id.Int() > stateCount {
			return fmt.Errorf("invalid destination state: %v", id)
		}
	}
	return nil
}

func (s *dfaSpec) InitialState() StateID {
	return StateID(s.spec.InitialState.Int())
}

func (s *dfaSpec) NextState(state StateID, sym SymbolID) (StateID, bool) {
	tab := s.spec.Transition
	switch tab.CompressionLevel {
	case 2:
		tran := tab.Transition
		rowNum := tran.RowNums[state]
		d := tran.UniqueEntries.RowDisplacement[rowNum]
		if tran.UniqueEntries.Bounds[d+sym.Int()] != rowNum {
			return StateIDNil, false
		}
		next := tran.UniqueEntries.Entries[d+sym.Int()]
		return StateID(next.Int()), next != spec.StateIDNil
	case 1:
		tran := tab.Transition
		next := tran.UncompressedUniqueEntries[tran.RowNums[state]*tran.OriginalColCount+sym.Int()]
		if next == spec.StateIDNil {
			return StateIDNil, false
		}
		return StateID(next.Int()), true
	}

	next := tab.UncompressedTransition[state.Int()*tab.ColCount+sym.Int()]
	if next == spec.StateIDNil {
		return StateIDNil, false
	}
	return StateID(next.Int()), true
}

func (s *dfaSpec) Accept(state StateID) bool {
	_, ok := s.finals[state]
	return ok
}

func (s *dfaSpec) LookupSymbol(sym string) (SymbolID, bool) {
	id, ok := s.syms[sym]
	return id, ok
}

func (s *dfaSpec) Subset(state StateID) []int {
	if state.Int() >= len(s.spec.Subsets) {
		return nil
	}
	return s.spec.Subsets[state]
}
