package automaton

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// NFAState identifies a state of an NFA. Valid states are non-negative.
type NFAState int

func (s NFAState) Int() int {
	return int(s)
}

// StateSet is an immutable set of NFA states. Its elements are kept sorted and free of
// duplicates, so two sets are equal iff their keys are equal.
type StateSet struct {
	s []NFAState
}

func NewStateSet(states ...NFAState) StateSet {
	if len(states) == 0 {
		return StateSet{}
	}
	s := slices.Clone(states)
	slices.Sort(s)
	return StateSet{
		s: slices.Compact(s),
	}
}

func newStateSetFromInts(states []int) StateSet {
	s := make([]NFAState, len(states))
	for i, v := range states {
		s[i] = NFAState(v)
	}
	return NewStateSet(s...)
}

// States returns the elements in ascending order.
func (s StateSet) States() []NFAState {
	return slices.Clone(s.s)
}

func (s StateSet) Ints() []int {
	is := make([]int, len(s.s))
	for i, v := range s.s {
		is[i] = v.Int()
	}
	return is
}

func (s StateSet) Len() int {
	return len(s.s)
}

func (s StateSet) IsEmpty() bool {
	return len(s.s) == 0
}

func (s StateSet) Contains(state NFAState) bool {
	_, ok := slices.BinarySearch(s.s, state)
	return ok
}

func (s StateSet) Equal(t StateSet) bool {
	return slices.Equal(s.s, t.s)
}

func (s StateSet) Union(t StateSet) StateSet {
	if s.IsEmpty() {
		return t
	}
	if t.IsEmpty() {
		return s
	}
	u := make([]NFAState, 0, len(s.s)+len(t.s))
	u = append(u, s.s...)
	u = append(u, t.s...)
	return NewStateSet(u...)
}

func (s StateSet) Intersects(t StateSet) bool {
	i, j := 0, 0
	for i < len(s.s) && j < len(t.s) {
		switch {
		case s.s[i] == t.s[j]:
			return true
		case s.s[i] < t.s[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func (s StateSet) IsSubsetOf(t StateSet) bool {
	for _, v := range s.s {
		if !t.Contains(v) {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key. The string is a sequence of uvarints, so it is not
// well-formed UTF-8.
func (s StateSet) Key() string {
	if len(s.s) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(s.s)*2)
	for _, v := range s.s {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	return string(buf)
}

func (s StateSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{")
	for i, v := range s.s {
		if i > 0 {
			fmt.Fprintf(&b, ",")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	fmt.Fprintf(&b, "}")
	return b.String()
}
