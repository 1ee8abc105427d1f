package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/nfa2dfa/spec"
)

// Result describes a run of a recognizer.
type Result struct {
	Input []string

	// Path holds the states visited, starting with the initial state.
	Path []StateID

	Accepted bool

	// Stuck is the index of the input symbol the DFA has no transition on, or -1 when the whole
	// input was consumed.
	Stuck int
}

func (r *Result) String() string {
	var b strings.Builder
	for i, id := range r.Path {
		if i > 0 {
			fmt.Fprintf(&b, " --%v--> ", r.Input[i-1])
		}
		fmt.Fprintf(&b, "%v", id)
	}
	if r.Stuck >= 0 {
		fmt.Fprintf(&b, " --%v--> (none)", r.Input[r.Stuck])
	}
	if r.Accepted {
		fmt.Fprintf(&b, ": accepted")
	} else {
		fmt.Fprintf(&b, ": rejected")
	}
	return b.String()
}

type Recognizer struct {
	spec DFASpec
}

func NewRecognizer(cdfa *spec.CompiledDFA) (*Recognizer, error) {
	s, err := NewDFASpec(cdfa)
	if err != nil {
		return nil, err
	}
	return &Recognizer{
		spec: s,
	}, nil
}

// Run feeds the input to the DFA. A symbol outside the alphabet is an error; a missing
// transition rejects the input.
func (r *Recognizer) Run(input []string) (*Result, error) {
	state := r.spec.InitialState()
	res := &Result{
		Input: input,
		Path:  []StateID{state},
		Stuck: -1,
	}
	for i, sym := range input {
		symID, ok := r.spec.LookupSymbol(sym)
		if !ok {
			return nil, fmt.Errorf("unknown symbol at %v: %v", i, sym)
		}
		next, ok := r.spec.NextState(state, symID)
		if !ok {
			res.Stuck = i
			return res, nil
		}
		state = next
		res.Path = append(res.Path, state)
	}
	res.Accepted = r.spec.Accept(state)
	return res, nil
}

// Accepts is a shorthand of Run for callers that only need the verdict.
func (r *Recognizer) Accepts(input []string) (bool, error) {
	res, err := r.Run(input)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Subset returns the NFA states a DFA state stands for.
func (r *Recognizer) Subset(state StateID) []int {
	return r.spec.Subset(state)
}
