package automaton

import (
	"fmt"
	"sync"

	u "github.com/araddon/gou"
)

type constructConfig struct {
	tracer   Tracer
	parallel bool
}

type ConstructOption func(config *constructConfig)

// WithTracer attaches a tracer that receives every closure, move and mark step.
func WithTracer(t Tracer) ConstructOption {
	return func(config *constructConfig) {
		config.tracer = t
	}
}

// ParallelMoves computes the moves and closures of all symbols of a state concurrently. IDs and
// trace are the same as those of a sequential construction.
func ParallelMoves() ConstructOption {
	return func(config *constructConfig) {
		config.parallel = true
	}
}

// Construct converts an NFA into an equivalent DFA using subset construction.
func Construct(nfa *NFA, opts ...ConstructOption) *DFA {
	config := &constructConfig{
		tracer: nopTracer{},
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.tracer == nil {
		config.tracer = nopTracer{}
	}

	b := newSubsetBuilder(nfa, config)
	dfa := b.build()
	u.Debugf("constructed a DFA; NFA states: %v, DFA states: %v, final states: %v", nfa.States().Len(), dfa.StateCount(), len(dfa.FinalStates()))
	return dfa
}

// step is the result of moving a DFA state on one symbol and closing the destination.
type step struct {
	move    StateSet
	closure StateSet
}

type subsetBuilder struct {
	nfa      *NFA
	alphabet []string
	tracer   Tracer
	parallel bool

	// states[0] is unused.
	states   []*DState
	registry map[string]DStateID
	worklist []DStateID
	trans    [][]DStateID
}

func newSubsetBuilder(nfa *NFA, config *constructConfig) *subsetBuilder {
	return &subsetBuilder{
		nfa:      nfa,
		alphabet: nfa.InputSymbols(),
		tracer:   config.tracer,
		parallel: config.parallel,
		states:   []*DState{nil},
		registry: map[string]DStateID{},
		trans:    [][]DStateID{nil},
	}
}

func (b *subsetBuilder) build() *DFA {
	initial := NewStateSet(b.nfa.Initial())
	closure := EpsilonClosure(b.nfa, initial)
	id, _ := b.discover(closure)
	b.tracer.Closure(initial, closure, id)

	for len(b.worklist) > 0 {
		id := b.worklist[0]
		b.worklist = b.worklist[1:]
		b.mark(id)
	}

	symIndex := make(map[string]int, len(b.alphabet))
	for i, sym := range b.alphabet {
		symIndex[sym] = i
	}
	return &DFA{
		alphabet: b.alphabet,
		symIndex: symIndex,
		states:   b.states,
		trans:    b.trans,
	}
}

// discover returns the ID of a subset, registering it as a new state and putting it on the
// worklist when it hasn't been seen. The second result reports whether the state is new.
func (b *subsetBuilder) discover(subset StateSet) (DStateID, bool) {
	key := subset.Key()
	if id, ok := b.registry[key]; ok {
		return id, false
	}
	id := DStateID(len(b.states))
	b.states = append(b.states, &DState{
		ID:     id,
		Subset: subset,
		Final:  subset.Intersects(b.nfa.Accepting()),
	})
	b.trans = append(b.trans, make([]DStateID, len(b.alphabet)))
	b.registry[key] = id
	b.worklist = append(b.worklist, id)
	return id, true
}

func (b *subsetBuilder) state(id DStateID) *DState {
	if id <= DStateIDNil || int(id) >= len(b.states) {
		panic(fmt.Errorf("DFA state %v has no subset", id))
	}
	return b.states[id]
}

func (b *subsetBuilder) mark(id DStateID) {
	from := b.state(id)
	b.tracer.Mark(id)

	steps := b.computeSteps(from.Subset)
	for i, sym := range b.alphabet {
		st := steps[i]
		if st.move.IsEmpty() {
			continue
		}
		b.tracer.Move(id, from.Subset, sym, st.move)
		next, _ := b.discover(st.closure)
		b.tracer.Closure(st.move, st.closure, next)
		b.trans[id][i] = next
	}
}

func (b *subsetBuilder) computeSteps(subset StateSet) []step {
	steps := make([]step, len(b.alphabet))
	compute := func(i int) {
		move := Move(b.nfa, subset, b.alphabet[i])
		if move.IsEmpty() {
			return
		}
		steps[i] = step{
			move:    move,
			closure: EpsilonClosure(b.nfa, move),
		}
	}

	if !b.parallel || len(b.alphabet) < 2 {
		for i := range b.alphabet {
			compute(i)
		}
		return steps
	}

	var wg sync.WaitGroup
	for i := range b.alphabet {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			compute(i)
		}(i)
	}
	wg.Wait()
	return steps
}
