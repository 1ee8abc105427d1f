package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/nihei9/nfa2dfa/driver"
	"github.com/spf13/cobra"
)

var runFlags = struct {
	interactive *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "run <compiled DFA file path> [<symbol>...]",
		Short: "Run a string through a compiled DFA",
		Example: `  nfa2dfa run nfa.json a b b
  nfa2dfa run nfa.json -i`,
		Args: cobra.MinimumNArgs(1),
		RunE: recoverable(runRun),
	}
	runFlags.interactive = cmd.Flags().BoolP("interactive", "i", false, "read strings from a prompt until 'exit'")
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cdfa, err := readCompiledDFA(args[0])
	if err != nil {
		return err
	}
	r, err := driver.NewRecognizer(cdfa)
	if err != nil {
		return err
	}

	if !*runFlags.interactive {
		res, err := r.Run(args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, res)
		if !res.Accepted {
			return errors.New("Rejected")
		}
		return nil
	}

	for {
		prompt := promptui.Prompt{
			Label: "Symbols separated by spaces (or 'exit' to quit)",
		}
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == "exit" {
			return nil
		}
		res, err := r.Run(strings.Fields(input))
		if err != nil {
			fmt.Fprintln(os.Stdout, promptui.Styler(promptui.FGYellow)(err.Error()))
			continue
		}
		if res.Accepted {
			fmt.Fprintln(os.Stdout, promptui.Styler(promptui.FGGreen)(res.String()))
		} else {
			fmt.Fprintln(os.Stdout, promptui.Styler(promptui.FGRed)(res.String()))
		}
	}
}
