package automaton

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/nfa2dfa/error"
	"github.com/nihei9/nfa2dfa/spec"
)

func TestNFABuilder_Build(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		epsilon string
		errs    []*SemanticError
	}{
		{
			caption: "a valid NFA",
			src:     srcSimple,
		},
		{
			caption: "an undeclared destination state",
			src: `Initial State: {0}
Final States: {1}
State a
0 {1}
1 {5}
`,
			errs: []*SemanticError{semErrUndeclaredState},
		},
		{
			caption: "an undeclared initial state",
			src: `Initial State: {3}
Final States: {0}
State a
0 {}
`,
			errs: []*SemanticError{semErrUndeclaredState},
		},
		{
			caption: "an undeclared accepting state",
			src: `Initial State: {0}
Final States: {0, 2}
State a
0 {}
`,
			errs: []*SemanticError{semErrUndeclaredState},
		},
		{
			caption: "a duplicate state row",
			src: `Initial State: {0}
Final States: {0}
State a
0 {}
0 {0}
`,
			errs: []*SemanticError{semErrDuplicateState},
		},
		{
			caption: "a duplicate symbol",
			src: `Initial State: {0}
Final States: {0}
State a a
0 {} {}
`,
			errs: []*SemanticError{semErrDuplicateSymbol},
		},
		{
			caption: "only the epsilon symbol",
			src: `Initial State: {0}
Final States: {0}
State E
0 {}
`,
			errs: []*SemanticError{semErrNoInputSymbol},
		},
		{
			caption: "a custom epsilon symbol",
			src: `Initial State: {0}
Final States: {0}
State eps
0 {}
`,
			epsilon: "eps",
			errs:    []*SemanticError{semErrNoInputSymbol},
		},
		{
			caption: "the total doesn't match the rows",
			src: `Initial State: {0}
Final States: {0}
Total States: 2
State a
0 {}
`,
			errs: []*SemanticError{semErrStateCountMismatch},
		},
		{
			caption: "all errors are reported",
			src: `Initial State: {9}
Final States: {0}
Total States: 3
State a
0 {8}
0 {}
`,
			errs: []*SemanticError{
				semErrDuplicateState,
				semErrStateCountMismatch,
				semErrUndeclaredState,
				semErrUndeclaredState,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			b := &NFABuilder{
				AST:     ast,
				Epsilon: tt.epsilon,
			}
			nfa, err := b.Build()
			if len(tt.errs) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if nfa == nil {
					t.Fatal("NFA must be non-nil")
				}
				return
			}
			if nfa != nil {
				t.Fatal("NFA must be nil")
			}
			var specErrs verr.SpecErrors
			if !errors.As(err, &specErrs) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if len(specErrs) != len(tt.errs) {
				t.Fatalf("unexpected error count; want: %v, got: %v (%v)", len(tt.errs), len(specErrs), specErrs)
			}
			for i, e := range specErrs {
				if e.Cause != tt.errs[i] {
					t.Fatalf("unexpected error #%v; want: %v, got: %v", i, tt.errs[i], e.Cause)
				}
				if e.Row == 0 {
					t.Fatalf("error #%v has no row: %v", i, e)
				}
			}
		})
	}
}

func TestNewNFA(t *testing.T) {
	tests := []struct {
		caption string
		def     *Definition
		errs    []*SemanticError
	}{
		{
			caption: "a valid definition",
			def: &Definition{
				Alphabet: []string{"a", "E"},
				States:   []NFAState{0, 1},
				Initial:  0,
				Transitions: map[string]map[NFAState][]NFAState{
					"a": {0: {1}},
					"E": {1: {0}},
				},
				Accepting: []NFAState{1},
			},
		},
		{
			caption: "no states",
			def: &Definition{
				Alphabet: []string{"a"},
			},
			errs: []*SemanticError{semErrNoState, semErrUndeclaredState},
		},
		{
			caption: "a negative state",
			def: &Definition{
				Alphabet: []string{"a"},
				States:   []NFAState{0, -1},
			},
			errs: []*SemanticError{semErrNegativeState},
		},
		{
			caption: "a transition on an unknown symbol",
			def: &Definition{
				Alphabet: []string{"a"},
				States:   []NFAState{0},
				Transitions: map[string]map[NFAState][]NFAState{
					"b": {0: {0}},
				},
			},
			errs: []*SemanticError{semErrUnknownSymbol},
		},
		{
			caption: "a transition from an undeclared state",
			def: &Definition{
				Alphabet: []string{"a"},
				States:   []NFAState{0},
				Transitions: map[string]map[NFAState][]NFAState{
					"a": {1: {0}},
				},
			},
			errs: []*SemanticError{semErrUndeclaredState},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			nfa, err := NewNFA(tt.def)
			if len(tt.errs) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if nfa.Initial() != tt.def.Initial {
					t.Fatalf("unexpected initial state; want: %v, got: %v", tt.def.Initial, nfa.Initial())
				}
				return
			}
			var specErrs verr.SpecErrors
			if !errors.As(err, &specErrs) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if len(specErrs) != len(tt.errs) {
				t.Fatalf("unexpected error count; want: %v, got: %v (%v)", len(tt.errs), len(specErrs), specErrs)
			}
			for i, e := range specErrs {
				if e.Cause != tt.errs[i] {
					t.Fatalf("unexpected error #%v; want: %v, got: %v", i, tt.errs[i], e.Cause)
				}
			}
		})
	}
}

func TestNFA_MissingEntriesAreEmpty(t *testing.T) {
	nfa, err := NewNFA(&Definition{
		Alphabet: []string{"a", "b"},
		States:   []NFAState{0, 1},
		Initial:  0,
		Transitions: map[string]map[NFAState][]NFAState{
			"a": {0: {1}},
		},
		Accepting: []NFAState{1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !nfa.Transitions("b", 0).IsEmpty() {
		t.Fatalf("a missing entry must be empty: %v", nfa.Transitions("b", 0))
	}
	if nfa.Epsilon() != DefaultEpsilon {
		t.Fatalf("unexpected epsilon symbol; want: %v, got: %v", DefaultEpsilon, nfa.Epsilon())
	}
	dfa := Construct(nfa)
	if dfa.StateCount() != 2 {
		t.Fatalf("unexpected state count; want: 2, got: %v", dfa.StateCount())
	}
	if _, ok := dfa.Next(1, "b"); ok {
		t.Fatal("a transition on b must not exist")
	}
}
