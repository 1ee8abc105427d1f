package automaton

import (
	u "github.com/araddon/gou"
	"github.com/nihei9/nfa2dfa/spec"
)

// Tracer receives the steps of a subset construction in the order they happen.
type Tracer interface {
	// Closure reports that the epsilon closure of from is to, and that to is the DFA state id.
	Closure(from, to StateSet, id DStateID)

	// Move reports a non-empty move from the DFA state id on sym.
	Move(id DStateID, from StateSet, sym string, to StateSet)

	// Mark reports that the DFA state id has been taken off the worklist.
	Mark(id DStateID)
}

type nopTracer struct{}

func (nopTracer) Closure(from, to StateSet, id DStateID)                   {}
func (nopTracer) Move(id DStateID, from StateSet, sym string, to StateSet) {}
func (nopTracer) Mark(id DStateID)                                         {}

// TraceRecorder keeps every step as a spec.TraceRecord.
type TraceRecorder struct {
	Records []*spec.TraceRecord
}

func (r *TraceRecorder) Closure(from, to StateSet, id DStateID) {
	r.Records = append(r.Records, &spec.TraceRecord{
		Kind:  spec.TraceKindClosure,
		State: spec.StateID(id),
		From:  from.Ints(),
		To:    to.Ints(),
	})
}

func (r *TraceRecorder) Move(id DStateID, from StateSet, sym string, to StateSet) {
	r.Records = append(r.Records, &spec.TraceRecord{
		Kind:   spec.TraceKindMove,
		State:  spec.StateID(id),
		From:   from.Ints(),
		Symbol: sym,
		To:     to.Ints(),
	})
}

func (r *TraceRecorder) Mark(id DStateID) {
	r.Records = append(r.Records, &spec.TraceRecord{
		Kind:  spec.TraceKindMark,
		State: spec.StateID(id),
	})
}

type logTracer struct{}

// NewLogTracer returns a tracer that writes every step to the debug log.
func NewLogTracer() Tracer {
	return logTracer{}
}

func (logTracer) Closure(from, to StateSet, id DStateID) {
	u.Debugf("closure: %v = %v = %v", from, to, id)
}

func (logTracer) Move(id DStateID, from StateSet, sym string, to StateSet) {
	u.Debugf("move: %v %v --%v--> %v", id, from, sym, to)
}

func (logTracer) Mark(id DStateID) {
	u.Debugf("mark: %v", id)
}

type multiTracer []Tracer

// MultiTracer returns a tracer that passes every step to all the tracers in order.
func MultiTracer(tracers ...Tracer) Tracer {
	ts := make(multiTracer, 0, len(tracers))
	for _, t := range tracers {
		if t == nil {
			continue
		}
		ts = append(ts, t)
	}
	return ts
}

func (ts multiTracer) Closure(from, to StateSet, id DStateID) {
	for _, t := range ts {
		t.Closure(from, to, id)
	}
}

func (ts multiTracer) Move(id DStateID, from StateSet, sym string, to StateSet) {
	for _, t := range ts {
		t.Move(id, from, sym, to)
	}
}

func (ts multiTracer) Mark(id DStateID) {
	for _, t := range ts {
		t.Mark(id)
	}
}
