package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/nfa2dfa/error"
)

func TestParse(t *testing.T) {
	set := func(nums ...int) *SetNode {
		s := &SetNode{}
		for _, n := range nums {
			s.States = append(s.States, &StateNode{
				Num: n,
			})
		}
		return s
	}
	row := func(state int, sets ...*SetNode) *RowNode {
		return &RowNode{
			State: &StateNode{
				Num: state,
			},
			Sets: sets,
		}
	}
	header := func(syms ...string) *HeaderNode {
		h := &HeaderNode{}
		for _, s := range syms {
			h.Symbols = append(h.Symbols, &SymbolNode{
				Name: s,
			})
		}
		return h
	}

	tests := []struct {
		caption string
		src     string
		ast     *NFANode
		synErr  *SyntaxError
	}{
		{
			caption: "an NFA in the classic layout is valid",
			src: `Initial State: {0}
Final States: {2}
Total States: 3
State	a	b	E
0	{}	{}	{1}
1	{1}	{2}	{}
2	{}	{}	{}
`,
			ast: &NFANode{
				Initial: set(0),
				Final:   set(2),
				Total: &CountNode{
					Count: 3,
				},
				Header: header("a", "b", "E"),
				Rows: []*RowNode{
					row(0, set(), set(), set(1)),
					row(1, set(1), set(2), set()),
					row(2, set(), set(), set()),
				},
			},
		},
		{
			caption: "the 'Total States:' line is optional and the last newline can be omitted",
			src: `Initial State: {1}
Final States: {1,3}
State a E
1 {2,3} {}
2 {} {3}
3 {} {}`,
			ast: &NFANode{
				Initial: set(1),
				Final:   set(1, 3),
				Header:  header("a", "E"),
				Rows: []*RowNode{
					row(1, set(2, 3), set()),
					row(2, set(), set(3)),
					row(3, set(), set()),
				},
			},
		},
		{
			caption: "keywords ignore case, and comments and blank lines are skipped",
			src: `
# an NFA recognizing 0*1
initial state: {0}
FINAL STATES: {}

state 0 1   # digits can be symbols
0 {0} {1}

1 {} {}
`,
			ast: &NFANode{
				Initial: set(0),
				Final:   set(),
				Header:  header("0", "1"),
				Rows: []*RowNode{
					row(0, set(0), set(1)),
					row(1, set(), set()),
				},
			},
		},
		{
			caption: "spaces inside a set are allowed",
			src: `Initial State: { 0 }
Final States: { 0 , 1 }
State a
0 { 0 , 1 }
1 {}
`,
			ast: &NFANode{
				Initial: set(0),
				Final:   set(0, 1),
				Header:  header("a"),
				Rows: []*RowNode{
					row(0, set(0, 1)),
					row(1, set()),
				},
			},
		},
		{
			caption: "symbols can be punctuation",
			src: `Initial State: {0}
Final States: {1}
State + - E
0 {1} {} {}
1 {} {0} {}
`,
			ast: &NFANode{
				Initial: set(0),
				Final:   set(1),
				Header:  header("+", "-", "E"),
				Rows: []*RowNode{
					row(0, set(1), set(), set()),
					row(1, set(), set(0), set()),
				},
			},
		},
		{
			caption: "symbols can mix letters and punctuation",
			src: `Initial State: {0}
Final States: {0}
State a' b ( ) E
0 {0} {} {} {} {}
`,
			ast: &NFANode{
				Initial: set(0),
				Final:   set(0),
				Header:  header("a'", "b", "(", ")", "E"),
				Rows: []*RowNode{
					row(0, set(0), set(), set(), set(), set()),
				},
			},
		},
		{
			caption: "a symbol in a row is an error",
			src: `Initial State: {0}
Final States: {0}
State + E
0 {} {} +
`,
			synErr: synErrNoNewline,
		},
		{
			caption: "the initial state line is mandatory",
			src: `Final States: {0}
State a
0 {}
`,
			synErr: synErrNoInitialState,
		},
		{
			caption: "the final states line is mandatory",
			src: `Initial State: {0}
State a
0 {}
`,
			synErr: synErrNoFinalStates,
		},
		{
			caption: "a keyword needs a colon",
			src: `Initial State {0}
Final States: {0}
State a
0 {}
`,
			synErr: synErrNoColon,
		},
		{
			caption: "the initial state set must have one element",
			src: `Initial State: {0,1}
Final States: {0}
State a
0 {}
1 {}
`,
			synErr: synErrInitialStateCount,
		},
		{
			caption: "an empty initial state set is an error",
			src: `Initial State: {}
Final States: {0}
State a
0 {}
`,
			synErr: synErrInitialStateCount,
		},
		{
			caption: "an unclosed set is an error",
			src: `Initial State: {0
Final States: {0}
State a
0 {}
`,
			synErr: synErrUnclosedSet,
		},
		{
			caption: "a comma needs a following state",
			src: `Initial State: {0}
Final States: {0,}
State a
0 {}
`,
			synErr: synErrNoStateAfterComma,
		},
		{
			caption: "a state must be numeric",
			src: `Initial State: {q0}
Final States: {0}
State a
0 {}
`,
			synErr: synErrUnclosedSet,
		},
		{
			caption: "the header is mandatory",
			src: `Initial State: {0}
Final States: {0}
0 {}
`,
			synErr: synErrNoHeader,
		},
		{
			caption: "the header needs a symbol",
			src: `Initial State: {0}
Final States: {0}
State
0 {}
`,
			synErr: synErrNoSymbol,
		},
		{
			caption: "an NFA needs rows",
			src: `Initial State: {0}
Final States: {0}
State a E
`,
			synErr: synErrNoRow,
		},
		{
			caption: "a row with too few sets is an error",
			src: `Initial State: {0}
Final States: {0}
State a b E
0 {} {}
`,
			synErr: synErrRowArity,
		},
		{
			caption: "a row with too many sets is an error",
			src: `Initial State: {0}
Final States: {0}
State a
0 {} {}
`,
			synErr: synErrRowArity,
		},
		{
			caption: "a row must start with a state",
			src: `Initial State: {0}
Final States: {0}
State a
{} {}
`,
			synErr: synErrNoRowState,
		},
		{
			caption: "the total states line must have a number",
			src: `Initial State: {0}
Final States: {0}
Total States: {1}
State a
0 {}
`,
			synErr: synErrNoTotal,
		},
		{
			caption: "the total states line can't appear twice",
			src: `Initial State: {0}
Final States: {0}
Total States: 1
Total States: 1
State a
0 {}
`,
			synErr: synErrDuplicateTotalLine,
		},
		{
			caption: "an invalid character is an error",
			src:     "Initial State: {0}\nFinal States: {0}\nState a\n0 {} \u0007\n",
			synErr: synErrInvalidToken,
		},
		{
			caption: "a state number that doesn't fit an int is an error",
			src: `Initial State: {99999999999999999999999999}
Final States: {0}
State a
0 {}
`,
			synErr: synErrInvalidNumber,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				var specErr *verr.SpecError
				if !errors.As(err, &specErr) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				if specErr.Row == 0 {
					t.Fatalf("an error must have a row number")
				}
				if ast != nil {
					t.Fatalf("AST must be nil")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ast == nil {
					t.Fatalf("AST must be non-nil")
				}
				testNFANode(t, ast, tt.ast)
			}
		})
	}
}

func TestParse_Position(t *testing.T) {
	src := `Initial State: {0}
Final States: {2}
State a E
0 {1} {}
1 {} {2, 0}
2 {} {}
`
	ast, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if ast.Initial.States[0].Pos != newPosition(1, 17) {
		t.Fatalf("unexpected position of the initial state: %+v", ast.Initial.States[0].Pos)
	}
	if ast.Rows[1].Pos.Row != 5 {
		t.Fatalf("unexpected row of the second state row: %v", ast.Rows[1].Pos.Row)
	}
	if ast.Rows[1].Sets[1].States[1].Pos != newPosition(5, 10) {
		t.Fatalf("unexpected position of a destination state: %+v", ast.Rows[1].Sets[1].States[1].Pos)
	}
}

func testNFANode(t *testing.T, root, expected *NFANode) {
	t.Helper()
	testSetNode(t, root.Initial, expected.Initial)
	testSetNode(t, root.Final, expected.Final)
	if expected.Total == nil && root.Total != nil {
		t.Fatalf("unexpected total; want: nil, got: %v", root.Total.Count)
	}
	if expected.Total != nil {
		if root.Total == nil {
			t.Fatalf("a total is not set; want: %v, got: nil", expected.Total.Count)
		}
		if root.Total.Count != expected.Total.Count {
			t.Fatalf("unexpected total; want: %v, got: %v", expected.Total.Count, root.Total.Count)
		}
	}
	if len(root.Header.Symbols) != len(expected.Header.Symbols) {
		t.Fatalf("unexpected length of symbols; want: %v, got: %v", len(expected.Header.Symbols), len(root.Header.Symbols))
	}
	for i, sym := range root.Header.Symbols {
		if sym.Name != expected.Header.Symbols[i].Name {
			t.Fatalf("unexpected symbol; want: %v, got: %v", expected.Header.Symbols[i].Name, sym.Name)
		}
	}
	if len(root.Rows) != len(expected.Rows) {
		t.Fatalf("unexpected length of rows; want: %v, got: %v", len(expected.Rows), len(root.Rows))
	}
	for i, row := range root.Rows {
		testRowNode(t, row, expected.Rows[i])
	}
}

func testRowNode(t *testing.T, row, expected *RowNode) {
	t.Helper()
	if row.State.Num != expected.State.Num {
		t.Fatalf("unexpected state; want: %v, got: %v", expected.State.Num, row.State.Num)
	}
	if len(row.Sets) != len(expected.Sets) {
		t.Fatalf("unexpected length of sets; want: %v, got: %v", len(expected.Sets), len(row.Sets))
	}
	for i, set := range row.Sets {
		testSetNode(t, set, expected.Sets[i])
	}
}

func testSetNode(t *testing.T, set, expected *SetNode) {
	t.Helper()
	if len(set.States) != len(expected.States) {
		t.Fatalf("unexpected length of a set; want: %v, got: %v", len(expected.States), len(set.States))
	}
	for i, s := range set.States {
		if s.Num != expected.States[i].Num {
			t.Fatalf("unexpected state; want: %v, got: %v", expected.States[i].Num, s.Num)
		}
	}
}
