package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nihei9/nfa2dfa/config"
	"github.com/nihei9/nfa2dfa/printer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <compiled DFA file path>",
		Short:   "Print a compiled DFA in a readable format",
		Example: `  nfa2dfa show nfa.json --format grid`,
		Args:    cobra.ExactArgs(1),
		RunE:    recoverable(runShow),
	}
	cmd.Flags().StringP("format", "f", config.FormatText, "output format [text,grid,json]")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cdfa, err := readCompiledDFA(args[0])
	if err != nil {
		return err
	}
	tab, err := printer.NewTableFromCompiled(cdfa)
	if err != nil {
		return err
	}
	switch settings.Format {
	case config.FormatGrid:
		return printer.WriteGrid(os.Stdout, tab)
	case config.FormatJSON:
		b, err := json.Marshal(tab)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		return nil
	}
	return printer.WriteTable(os.Stdout, tab)
}
