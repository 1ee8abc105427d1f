package automaton

import (
	"fmt"
	"testing"

	"github.com/nihei9/nfa2dfa/spec"
)

func TestCompile(t *testing.T) {
	nfa := buildNFA(t, srcSimple)
	dfa := Construct(nfa)

	cdfa, err := Compile(dfa, CompressionLevel(0), Name("simple"))
	if err != nil {
		t.Fatal(err)
	}
	if cdfa.Name != "simple" {
		t.Fatalf("unexpected name: %v", cdfa.Name)
	}
	if fmt.Sprint(cdfa.Alphabet) != "[a b]" {
		t.Fatalf("unexpected alphabet: %v", cdfa.Alphabet)
	}
	if cdfa.StateCount != 3 || cdfa.InitialState != spec.StateIDInitial {
		t.Fatalf("unexpected states; count: %v, initial: %v", cdfa.StateCount, cdfa.InitialState)
	}
	if fmt.Sprint(cdfa.FinalStates) != "[3]" {
		t.Fatalf("unexpected final states: %v", cdfa.FinalStates)
	}
	if fmt.Sprint(cdfa.Subsets) != "[[] [0 1] [1] [2]]" {
		t.Fatalf("unexpected subsets: %v", cdfa.Subsets)
	}
	tab := cdfa.Transition
	if tab.CompressionLevel != 0 || tab.RowCount != 4 || tab.ColCount != 2 {
		t.Fatalf("unexpected table: %+v", tab)
	}
	expected := []spec.StateID{
		0, 0,
		2, 3,
		2, 3,
		0, 0,
	}
	if fmt.Sprint(tab.UncompressedTransition) != fmt.Sprint(expected) {
		t.Fatalf("unexpected transitions; want: %v, got: %v", expected, tab.UncompressedTransition)
	}
}

func TestCompile_CompressionLevel(t *testing.T) {
	dfa := Construct(buildNFA(t, srcABB))
	for lv := CompressionLevelMin; lv <= CompressionLevelMax; lv++ {
		cdfa, err := Compile(dfa, CompressionLevel(lv))
		if err != nil {
			t.Fatal(err)
		}
		tab := cdfa.Transition
		if tab.CompressionLevel != lv {
			t.Fatalf("unexpected compression level; want: %v, got: %v", lv, tab.CompressionLevel)
		}
		switch lv {
		case 0:
			if tab.UncompressedTransition == nil || tab.Transition != nil {
				t.Fatalf("level 0 must keep the uncompressed table")
			}
		case 1:
			if tab.UncompressedTransition != nil || tab.Transition.UncompressedUniqueEntries == nil || tab.Transition.UniqueEntries != nil {
				t.Fatalf("level 1 must keep only unique rows")
			}
		case 2:
			if tab.UncompressedTransition != nil || tab.Transition.UniqueEntries == nil {
				t.Fatalf("level 2 must displace unique rows")
			}
		}
	}

	if _, err := Compile(dfa, CompressionLevel(3)); err == nil {
		t.Fatal("expected error didn't occur")
	}
}

func TestGenReport(t *testing.T) {
	rec := &TraceRecorder{}
	dfa := Construct(buildNFA(t, srcSimple), WithTracer(rec))
	r := GenReport(dfa, "simple", rec.Records)
	if len(r.States) != 3 || len(r.Trace) != len(rec.Records) {
		t.Fatalf("unexpected report: %+v", r)
	}
	if !r.States[2].Final || r.States[0].Final {
		t.Fatalf("unexpected final states: %+v %+v", r.States[0], r.States[2])
	}
}
