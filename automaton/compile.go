package automaton

import (
	"fmt"

	"github.com/nihei9/nfa2dfa/compressor"
	"github.com/nihei9/nfa2dfa/spec"
)

const (
	CompressionLevelMin = 0
	CompressionLevelMax = 2
)

type compileConfig struct {
	compLv int
	name   string
}

type CompileOption func(config *compileConfig) error

func CompressionLevel(lv int) CompileOption {
	return func(config *compileConfig) error {
		if lv < CompressionLevelMin || lv > CompressionLevelMax {
			return fmt.Errorf("compression level must be %v..%v", CompressionLevelMin, CompressionLevelMax)
		}
		config.compLv = lv
		return nil
	}
}

func Name(name string) CompileOption {
	return func(config *compileConfig) error {
		config.name = name
		return nil
	}
}

// Compile converts a DFA into its serializable form. By default the transition table is
// compressed at CompressionLevelMax.
func Compile(dfa *DFA, opts ...CompileOption) (*spec.CompiledDFA, error) {
	config := &compileConfig{
		compLv: CompressionLevelMax,
	}
	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return nil, err
		}
	}

	rowCount := len(dfa.trans)
	colCount := len(dfa.alphabet)
	entries := make([]spec.StateID, rowCount*colCount)
	for id := 1; id < rowCount; id++ {
		for i, next := range dfa.trans[id] {
			entries[id*colCount+i] = spec.StateID(next)
		}
	}
	tranTab := &spec.TransitionTable{
		RowCount:               rowCount,
		ColCount:               colCount,
		UncompressedTransition: entries,
	}

	var err error
	switch config.compLv {
	case 2:
		tranTab, err = compressTransitionTableLv2(tranTab)
	case 1:
		tranTab, err = compressTransitionTableLv1(tranTab)
	}
	if err != nil {
		return nil, err
	}

	var finals []spec.StateID
	for _, id := range dfa.FinalStates() {
		finals = append(finals, spec.StateID(id))
	}
	subsets := make([][]int, rowCount)
	for _, s := range dfa.States() {
		subsets[s.ID] = s.Subset.Ints()
	}

	return &spec.CompiledDFA{
		Name:         config.name,
		Alphabet:     dfa.Alphabet(),
		StateCount:   dfa.StateCount(),
		InitialState: spec.StateID(dfa.InitialState()),
		FinalStates:  finals,
		Subsets:      subsets,
		Transition:   tranTab,
	}, nil
}

func compressTransitionTableLv2(tranTab *spec.TransitionTable) (*spec.TransitionTable, error) {
	ueTab := compressor.NewUniqueEntriesTable[spec.StateID]()
	{
		orig, err := compressor.NewTable(tranTab.UncompressedTransition, tranTab.ColCount)
		if err != nil {
			return nil, err
		}
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	rdTab := compressor.NewRowDisplacementTable(spec.StateIDNil)
	{
		orig, err := compressor.NewTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
		if err != nil {
			return nil, err
		}
		err = rdTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	tranTab.CompressionLevel = 2
	tranTab.Transition = &spec.UniqueEntriesTable{
		UniqueEntries: &spec.RowDisplacementTable{
			OriginalRowCount: rdTab.OriginalRowCount,
			OriginalColCount: rdTab.OriginalColCount,
			EmptyValue:       rdTab.EmptyValue,
			Entries:          rdTab.Entries,
			Bounds:           rdTab.Bounds,
			RowDisplacement:  rdTab.RowDisplacement,
		},
		RowNums:          ueTab.RowNums,
		OriginalRowCount: ueTab.OriginalRowCount,
		OriginalColCount: ueTab.OriginalColCount,
	}
	tranTab.UncompressedTransition = nil

	return tranTab, nil
}

func compressTransitionTableLv1(tranTab *spec.TransitionTable) (*spec.TransitionTable, error) {
	ueTab := compressor.NewUniqueEntriesTable[spec.StateID]()
	{
		orig, err := compressor.NewTable(tranTab.UncompressedTransition, tranTab.ColCount)
		if err != nil {
			return nil, err
		}
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
	}

	tranTab.CompressionLevel = 1
	tranTab.Transition = &spec.UniqueEntriesTable{
		UncompressedUniqueEntries: ueTab.UniqueEntries,
		RowNums:                   ueTab.RowNums,
		OriginalRowCount:          ueTab.OriginalRowCount,
		OriginalColCount:          ueTab.OriginalColCount,
	}
	tranTab.UncompressedTransition = nil

	return tranTab, nil
}

// GenReport summarizes a construction for JSON output. records can be nil.
func GenReport(dfa *DFA, name string, records []*spec.TraceRecord) *spec.Report {
	states := make([]*spec.StateReport, 0, dfa.StateCount())
	for _, s := range dfa.States() {
		states = append(states, &spec.StateReport{
			ID:     spec.StateID(s.ID),
			Subset: s.Subset.Ints(),
			Final:  s.Final,
		})
	}
	return &spec.Report{
		Name:   name,
		Trace:  records,
		States: states,
	}
}
