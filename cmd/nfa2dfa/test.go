package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <NFA file path> <test file path>|<test directory path>",
		Short:   "Test the DFA converted from an NFA",
		Example: `  nfa2dfa test nfa.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    recoverable(runTest),
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	nfa, err := readNFA(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read an NFA: %w", err)
	}
	cdfa, err := automaton.Compile(automaton.Construct(nfa, constructOptions()...), automaton.CompressionLevel(settings.Compression))
	if err != nil {
		return fmt.Errorf("Cannot compile a DFA: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				locateSpecErrors(c.Error, c.FilePath)
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		DFA:   cdfa,
		NFA:   nfa,
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
