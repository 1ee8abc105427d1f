package automaton

import (
	"fmt"

	u "github.com/araddon/gou"
	verr "github.com/nihei9/nfa2dfa/error"
	"github.com/nihei9/nfa2dfa/spec"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const DefaultEpsilon = "E"

// NFA is a read-only transition model. Build one with NewNFA or NFABuilder.
type NFA struct {
	alphabet   []string
	epsilon    string
	hasEpsilon bool
	states     StateSet
	initial    NFAState
	accepting  StateSet
	trans      map[string]map[NFAState]StateSet
}

// Alphabet returns the declared symbols in order, including the epsilon symbol if declared.
func (n *NFA) Alphabet() []string {
	return slices.Clone(n.alphabet)
}

// InputSymbols returns the declared symbols in order, excluding the epsilon symbol.
func (n *NFA) InputSymbols() []string {
	syms := make([]string, 0, len(n.alphabet))
	for _, sym := range n.alphabet {
		if n.IsEpsilon(sym) {
			continue
		}
		syms = append(syms, sym)
	}
	return syms
}

func (n *NFA) Epsilon() string {
	return n.epsilon
}

func (n *NFA) IsEpsilon(sym string) bool {
	return n.hasEpsilon && sym == n.epsilon
}

func (n *NFA) States() StateSet {
	return n.states
}

func (n *NFA) Initial() NFAState {
	return n.initial
}

func (n *NFA) Accepting() StateSet {
	return n.accepting
}

func (n *NFA) IsAccepting(state NFAState) bool {
	return n.accepting.Contains(state)
}

// Transitions returns the destinations of a state on a symbol. A pair without an entry has no
// destinations.
func (n *NFA) Transitions(sym string, state NFAState) StateSet {
	return n.trans[sym][state]
}

func (n *NFA) epsilonTransitions(state NFAState) StateSet {
	if !n.hasEpsilon {
		return StateSet{}
	}
	return n.trans[n.epsilon][state]
}

// Definition describes an NFA programmatically. Every state that appears in Initial,
// Accepting or Transitions must be listed in States.
type Definition struct {
	Alphabet []string

	// Epsilon names the epsilon symbol. When it is empty, DefaultEpsilon is used. The NFA has
	// epsilon transitions only when Alphabet contains the epsilon symbol.
	Epsilon     string
	States      []NFAState
	Initial     NFAState
	Accepting   []NFAState
	Transitions map[string]map[NFAState][]NFAState
}

// NewNFA validates a definition and builds an NFA from it.
func NewNFA(def *Definition) (*NFA, error) {
	var errs verr.SpecErrors
	report := func(cause error, detail string) {
		errs = append(errs, &verr.SpecError{
			Cause:  cause,
			Detail: detail,
		})
	}

	epsilon := def.Epsilon
	if epsilon == "" {
		epsilon = DefaultEpsilon
	}

	hasEpsilon := false
	inputSymCount := 0
	{
		known := map[string]struct{}{}
		for _, sym := range def.Alphabet {
			if _, ok := known[sym]; ok {
				report(semErrDuplicateSymbol, sym)
				continue
			}
			known[sym] = struct{}{}
			if sym == epsilon {
				hasEpsilon = true
				continue
			}
			inputSymCount++
		}
		if inputSymCount == 0 {
			report(semErrNoInputSymbol, "")
		}
		for sym := range def.Transitions {
			if _, ok := known[sym]; !ok {
				report(semErrUnknownSymbol, sym)
			}
		}
	}

	declared := map[NFAState]struct{}{}
	{
		if len(def.States) == 0 {
			report(semErrNoState, "")
		}
		for _, s := range def.States {
			if s < 0 {
				report(semErrNegativeState, fmt.Sprintf("%v", s))
				continue
			}
			if _, ok := declared[s]; ok {
				report(semErrDuplicateState, fmt.Sprintf("%v", s))
				continue
			}
			declared[s] = struct{}{}
		}
	}
	checkDeclared := func(s NFAState, role string) {
		if _, ok := declared[s]; !ok {
			report(semErrUndeclaredState, fmt.Sprintf("%v state %v", role, s))
		}
	}
	checkDeclared(def.Initial, "initial")
	for _, s := range def.Accepting {
		checkDeclared(s, "accepting")
	}
	for _, sym := range sortedSymbols(def.Transitions) {
		for _, from := range sortedStates(def.Transitions[sym]) {
			checkDeclared(from, fmt.Sprintf("source (symbol %v)", sym))
			for _, to := range def.Transitions[sym][from] {
				checkDeclared(to, fmt.Sprintf("destination (state %v, symbol %v)", from, sym))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	trans := map[string]map[NFAState]StateSet{}
	for _, sym := range def.Alphabet {
		tab := map[NFAState]StateSet{}
		for from, to := range def.Transitions[sym] {
			set := NewStateSet(to...)
			if set.IsEmpty() {
				continue
			}
			tab[from] = set
		}
		if len(tab) == 0 && sym != epsilon {
			u.Warnf("symbol %v has no transitions from any state", sym)
		}
		trans[sym] = tab
	}

	return &NFA{
		alphabet:   slices.Clone(def.Alphabet),
		epsilon:    epsilon,
		hasEpsilon: hasEpsilon,
		states:     NewStateSet(def.States...),
		initial:    def.Initial,
		accepting:  NewStateSet(def.Accepting...),
		trans:      trans,
	}, nil
}

func sortedSymbols(m map[string]map[NFAState][]NFAState) []string {
	syms := maps.Keys(m)
	slices.Sort(syms)
	return syms
}

func sortedStates(m map[NFAState][]NFAState) []NFAState {
	states := maps.Keys(m)
	slices.Sort(states)
	return states
}

// NFABuilder validates a parsed NFA description and builds an NFA. Errors carry the positions
// of the offending elements.
type NFABuilder struct {
	AST     *spec.NFANode
	Epsilon string

	errs verr.SpecErrors
}

func (b *NFABuilder) Build() (*NFA, error) {
	epsilon := b.Epsilon
	if epsilon == "" {
		epsilon = DefaultEpsilon
	}

	var alphabet []string
	{
		known := map[string]struct{}{}
		inputSymCount := 0
		for _, sym := range b.AST.Header.Symbols {
			if _, ok := known[sym.Name]; ok {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateSymbol,
					Detail: sym.Name,
					Row:    sym.Pos.Row,
					Col:    sym.Pos.Col,
				})
			}
			known[sym.Name] = struct{}{}
			alphabet = append(alphabet, sym.Name)
			if sym.Name != epsilon {
				inputSymCount++
			}
		}
		if inputSymCount == 0 {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrNoInputSymbol,
				Detail: fmt.Sprintf("the epsilon symbol is %v", epsilon),
				Row:    b.AST.Header.Pos.Row,
				Col:    b.AST.Header.Pos.Col,
			})
		}
	}

	declared := map[NFAState]struct{}{}
	var states []NFAState
	for _, row := range b.AST.Rows {
		s := NFAState(row.State.Num)
		if _, ok := declared[s]; ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateState,
				Detail: fmt.Sprintf("%v", s),
				Row:    row.State.Pos.Row,
				Col:    row.State.Pos.Col,
			})
			continue
		}
		declared[s] = struct{}{}
		states = append(states, s)
	}

	if b.AST.Total != nil && b.AST.Total.Count != len(b.AST.Rows) {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrStateCountMismatch,
			Detail: fmt.Sprintf("want %v states, got %v", b.AST.Total.Count, len(b.AST.Rows)),
			Row:    b.AST.Total.Pos.Row,
			Col:    b.AST.Total.Pos.Col,
		})
	}

	checkDeclared := func(s *spec.StateNode, role string) {
		if _, ok := declared[NFAState(s.Num)]; ok {
			return
		}
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrUndeclaredState,
			Detail: fmt.Sprintf("%v state %v", role, s.Num),
			Row:    s.Pos.Row,
			Col:    s.Pos.Col,
		})
	}
	initial := b.AST.Initial.States[0]
	checkDeclared(initial, "initial")
	var accepting []NFAState
	for _, s := range b.AST.Final.States {
		checkDeclared(s, "accepting")
		accepting = append(accepting, NFAState(s.Num))
	}

	trans := map[string]map[NFAState][]NFAState{}
	for _, sym := range alphabet {
		trans[sym] = map[NFAState][]NFAState{}
	}
	for _, row := range b.AST.Rows {
		from := NFAState(row.State.Num)
		for i, set := range row.Sets {
			sym := alphabet[i]
			for _, to := range set.States {
				checkDeclared(to, fmt.Sprintf("destination (state %v, symbol %v)", from, sym))
				trans[sym][from] = append(trans[sym][from], NFAState(to.Num))
			}
		}
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return NewNFA(&Definition{
		Alphabet:    alphabet,
		Epsilon:     epsilon,
		States:      states,
		Initial:     NFAState(initial.Num),
		Accepting:   accepting,
		Transitions: trans,
	})
}
