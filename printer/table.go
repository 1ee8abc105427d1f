package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/driver"
	"github.com/nihei9/nfa2dfa/spec"
	"github.com/olekukonko/tablewriter"
)

// Table is a printable DFA. Transitions[i][j] is the destination of state i+1 on Alphabet[j],
// or 0 when there is none.
type Table struct {
	Alphabet     []string `json:"alphabet"`
	InitialState int      `json:"initial_state"`
	FinalStates  []int    `json:"final_states"`
	Subsets      [][]int  `json:"subsets"`
	Transitions  [][]int  `json:"transitions"`
}

func NewTable(dfa *automaton.DFA) *Table {
	tab := &Table{
		Alphabet:     dfa.Alphabet(),
		InitialState: dfa.InitialState().Int(),
	}
	for _, id := range dfa.FinalStates() {
		tab.FinalStates = append(tab.FinalStates, id.Int())
	}
	for _, s := range dfa.States() {
		tab.Subsets = append(tab.Subsets, s.Subset.Ints())
		row := make([]int, len(tab.Alphabet))
		for i, sym := range tab.Alphabet {
			if next, ok := dfa.Next(s.ID, sym); ok {
				row[i] = next.Int()
			}
		}
		tab.Transitions = append(tab.Transitions, row)
	}
	return tab
}

// NewTableFromCompiled decompresses a compiled DFA.
func NewTableFromCompiled(cdfa *spec.CompiledDFA) (*Table, error) {
	ds, err := driver.NewDFASpec(cdfa)
	if err != nil {
		return nil, err
	}
	tab := &Table{
		Alphabet:     cdfa.Alphabet,
		InitialState: ds.InitialState().Int(),
	}
	for _, id := range cdfa.FinalStates {
		tab.FinalStates = append(tab.FinalStates, id.Int())
	}
	for id := 1; id <= cdfa.StateCount; id++ {
		tab.Subsets = append(tab.Subsets, ds.Subset(driver.StateID(id)))
		row := make([]int, len(cdfa.Alphabet))
		for i := range cdfa.Alphabet {
			if next, ok := ds.NextState(driver.StateID(id), driver.SymbolID(i)); ok {
				row[i] = next.Int()
			}
		}
		tab.Transitions = append(tab.Transitions, row)
	}
	return tab, nil
}

// WriteTable prints a DFA as tab-separated text:
//
//	Initial State: {1}
//	Final states: {3}
//	State	a	b
//	1	{2}	{3}
//	2	{2}	{3}
//	3	{}	{}
func WriteTable(w io.Writer, tab *Table) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Initial State: {%v}\n", tab.InitialState)
	fmt.Fprintf(&b, "Final states: {%v}\n", joinInts(tab.FinalStates))
	fmt.Fprintf(&b, "State\t")
	for _, sym := range tab.Alphabet {
		fmt.Fprintf(&b, "%v\t", sym)
	}
	for i, row := range tab.Transitions {
		fmt.Fprintf(&b, "\n%v\t", i+1)
		for _, next := range row {
			fmt.Fprintf(&b, "%v\t", formatDest(next))
		}
	}
	fmt.Fprintf(&b, "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGrid prints a DFA as a grid. The grid also shows the NFA states of each DFA state.
func WriteGrid(w io.Writer, tab *Table) error {
	finals := map[int]struct{}{}
	for _, id := range tab.FinalStates {
		finals[id] = struct{}{}
	}

	header := []string{"State"}
	header = append(header, tab.Alphabet...)
	header = append(header, "NFA States")

	t := tablewriter.NewWriter(w)
	t.Header(header)
	for i, row := range tab.Transitions {
		id := i + 1
		name := strconv.Itoa(id)
		if id == tab.InitialState {
			name = "->" + name
		}
		if _, ok := finals[id]; ok {
			name = name + "*"
		}
		cells := []string{name}
		for _, next := range row {
			cells = append(cells, formatDest(next))
		}
		var subset []int
		if i < len(tab.Subsets) {
			subset = tab.Subsets[i]
		}
		cells = append(cells, "{"+joinInts(subset)+"}")
		err := t.Append(cells)
		if err != nil {
			return err
		}
	}
	return t.Render()
}

func formatDest(next int) string {
	if next == 0 {
		return "{}"
	}
	return fmt.Sprintf("{%v}", next)
}

func joinInts(is []int) string {
	ss := make([]string, len(is))
	for i, v := range is {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}
