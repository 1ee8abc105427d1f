package printer

import (
	"fmt"
	"io"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/spec"
)

// TraceWriter prints the steps of a subset construction as they happen:
//
//	E-closure{0} = {0,1} = 1
//
//	Mark 1
//	{0,1} --a--> {1}
//	E-closure{1} = {1} = 2
//
// Call Close after the construction to end the last block.
type TraceWriter struct {
	w      io.Writer
	err    error
	marked bool
}

var _ automaton.Tracer = &TraceWriter{}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{
		w: w,
	}
}

func (tw *TraceWriter) Closure(from, to automaton.StateSet, id automaton.DStateID) {
	tw.write(&spec.TraceRecord{
		Kind:  spec.TraceKindClosure,
		State: spec.StateID(id),
		From:  from.Ints(),
		To:    to.Ints(),
	})
}

func (tw *TraceWriter) Move(id automaton.DStateID, from automaton.StateSet, sym string, to automaton.StateSet) {
	tw.write(&spec.TraceRecord{
		Kind:   spec.TraceKindMove,
		State:  spec.StateID(id),
		From:   from.Ints(),
		Symbol: sym,
		To:     to.Ints(),
	})
}

func (tw *TraceWriter) Mark(id automaton.DStateID) {
	tw.write(&spec.TraceRecord{
		Kind:  spec.TraceKindMark,
		State: spec.StateID(id),
	})
}

func (tw *TraceWriter) write(r *spec.TraceRecord) {
	if tw.err != nil {
		return
	}
	switch r.Kind {
	case spec.TraceKindClosure:
		_, tw.err = fmt.Fprintf(tw.w, "E-closure%v = %v = %v\n", formatSet(r.From), formatSet(r.To), r.State)
	case spec.TraceKindMove:
		_, tw.err = fmt.Fprintf(tw.w, "%v --%v--> %v\n", formatSet(r.From), r.Symbol, formatSet(r.To))
	case spec.TraceKindMark:
		_, tw.err = fmt.Fprintf(tw.w, "\nMark %v\n", r.State)
		tw.marked = true
	default:
		tw.err = fmt.Errorf("unknown trace record kind: %v", r.Kind)
	}
}

// Close ends the last block and returns the first error that occurred while writing.
func (tw *TraceWriter) Close() error {
	if tw.err == nil && tw.marked {
		_, tw.err = fmt.Fprintf(tw.w, "\n")
	}
	return tw.err
}

// WriteTrace prints recorded steps in the format of TraceWriter.
func WriteTrace(w io.Writer, records []*spec.TraceRecord) error {
	tw := NewTraceWriter(w)
	for _, r := range records {
		tw.write(r)
	}
	return tw.Close()
}

func formatSet(states []int) string {
	return fmt.Sprint(automaton.NewStateSet(toNFAStates(states)...))
}

func toNFAStates(states []int) []automaton.NFAState {
	s := make([]automaton.NFAState, len(states))
	for i, v := range states {
		s[i] = automaton.NFAState(v)
	}
	return s
}
