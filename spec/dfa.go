package spec

// StateID identifies a DFA state in a compiled table. Valid IDs start at 1.
type StateID int

const (
	StateIDNil     = StateID(0)
	StateIDInitial = StateID(1)
)

func (id StateID) Int() int {
	return int(id)
}

type CompiledDFA struct {
	Name         string           `json:"name"`
	Alphabet     []string         `json:"alphabet"`
	StateCount   int              `json:"state_count"`
	InitialState StateID          `json:"initial_state"`
	FinalStates  []StateID        `json:"final_states"`
	Subsets      [][]int          `json:"subsets"`
	Transition   *TransitionTable `json:"transition"`
}

// TransitionTable holds DFA transitions indexed by (state ID, symbol index). Row 0 is unused and
// StateIDNil means "no transition".
type TransitionTable struct {
	CompressionLevel       int                 `json:"compression_level"`
	RowCount               int                 `json:"row_count"`
	ColCount               int                 `json:"col_count"`
	Transition             *UniqueEntriesTable `json:"transition,omitempty"`
	UncompressedTransition []StateID           `json:"uncompressed_transition,omitempty"`
}

type RowDisplacementTable struct {
	OriginalRowCount int       `json:"original_row_count"`
	OriginalColCount int       `json:"original_col_count"`
	EmptyValue       StateID   `json:"empty_value"`
	Entries          []StateID `json:"entries"`
	Bounds           []int     `json:"bounds"`
	RowDisplacement  []int     `json:"row_displacement"`
}

type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []StateID             `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
}

type TraceKind string

const (
	TraceKindClosure = TraceKind("closure")
	TraceKindMove    = TraceKind("move")
	TraceKindMark    = TraceKind("mark")
)

// TraceRecord is one step of a subset construction. State is the DFA state the step belongs to:
// the state a closure was assigned to, the source state of a move, or the marked state.
type TraceRecord struct {
	Kind   TraceKind `json:"kind"`
	State  StateID   `json:"state"`
	From   []int     `json:"from,omitempty"`
	Symbol string    `json:"symbol,omitempty"`
	To     []int     `json:"to,omitempty"`
}

type Report struct {
	Name   string         `json:"name"`
	Trace  []*TraceRecord `json:"trace"`
	States []*StateReport `json:"states"`
}

type StateReport struct {
	ID     StateID `json:"id"`
	Subset []int   `json:"subset"`
	Final  bool    `json:"final"`
}
