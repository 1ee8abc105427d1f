package automaton

import (
	"strings"
	"testing"

	u "github.com/araddon/gou"
	"github.com/nihei9/nfa2dfa/spec"
)

func init() {
	u.SetupLogging("warn")
}

const srcSimple = `
Initial State: {0}
Final States: {2}
Total States: 3
State a b E
0 {} {} {1}
1 {1} {2} {}
2 {} {} {}
`

// (a|b)*abb
const srcABB = `
Initial State: {0}
Final States: {10}
State a b E
0 {} {} {1,7}
1 {} {} {2,4}
2 {3} {} {}
3 {} {} {6}
4 {} {5} {}
5 {} {} {6}
6 {} {} {1,7}
7 {8} {} {}
8 {} {9} {}
9 {} {10} {}
10 {} {} {}
`

const srcEpsilonCycle = `
Initial State: {0}
Final States: {1}
State a E
0 {} {1}
1 {} {2}
2 {0} {0}
`

const srcUnreachable = `
Initial State: {0}
Final States: {1}
State a b c
0 {1} {} {}
1 {} {1} {}
2 {} {} {}
3 {3} {} {}
`

// Every symbol has transitions from several states, so each DFA state moves on each symbol.
const srcDense = `
Initial State: {0}
Final States: {3}
State x y z E
0 {1} {2} {0,3} {}
1 {1,2} {} {3} {0}
2 {} {3} {1} {}
3 {0} {0,1} {} {2}
`

func buildNFA(t *testing.T, src string) *NFA {
	t.Helper()
	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := &NFABuilder{
		AST: ast,
	}
	nfa, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return nfa
}

func set(states ...int) StateSet {
	return newStateSetFromInts(states)
}
