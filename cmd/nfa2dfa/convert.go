package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/config"
	"github.com/nihei9/nfa2dfa/printer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "convert [<NFA file path>]",
		Short: "Convert an NFA into a DFA and print the construction steps and the DFA",
		Example: `  nfa2dfa convert nfa.txt
  cat nfa.txt | nfa2dfa convert --no-trace --format grid`,
		Args: cobra.MaximumNArgs(1),
		RunE: recoverable(runConvert),
	}
	cmd.Flags().Bool("no-trace", false, "don't print the construction steps")
	cmd.Flags().StringP("format", "f", config.FormatText, "output format [text,grid,json]")
	cmd.Flags().Bool("parallel", false, "compute the moves of a state concurrently")
	rootCmd.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	nfa, err := readNFA(path)
	if err != nil {
		return err
	}

	if settings.Format == config.FormatJSON {
		rec := &automaton.TraceRecorder{}
		dfa := automaton.Construct(nfa, constructOptions(rec)...)
		records := rec.Records
		if !settings.Trace {
			records = nil
		}
		b, err := json.Marshal(automaton.GenReport(dfa, nameOf(path), records))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		return nil
	}

	var dfa *automaton.DFA
	if settings.Trace {
		tw := printer.NewTraceWriter(os.Stdout)
		dfa = automaton.Construct(nfa, constructOptions(tw)...)
		err := tw.Close()
		if err != nil {
			return err
		}
	} else {
		dfa = automaton.Construct(nfa, constructOptions()...)
	}

	tab := printer.NewTable(dfa)
	if settings.Format == config.FormatGrid {
		return printer.WriteGrid(os.Stdout, tab)
	}
	return printer.WriteTable(os.Stdout, tab)
}

// nameOf derives the name of a DFA from the file it came from.
func nameOf(path string) string {
	if path == "" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
