package main

import (
	"fmt"
	"os"
	"runtime/debug"

	u "github.com/araddon/gou"
	"github.com/nihei9/nfa2dfa/config"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config   *string
	logLevel *string
	epsilon  *string
}{}

// settings is the configuration file overridden by the flags the user set.
var settings = config.Default()

var rootCmd = &cobra.Command{
	Use:   "nfa2dfa",
	Short: "Convert an NFA into an equivalent DFA",
	Long: `nfa2dfa converts a nondeterministic finite automaton into a deterministic one
using subset construction. It also compiles DFAs into portable JSON tables and
runs strings or test cases through them.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "confl configuration file path")
	rootFlags.logLevel = rootCmd.PersistentFlags().String("log-level", settings.LogLevel, "log level [debug,info,warn,error]")
	rootFlags.epsilon = rootCmd.PersistentFlags().StringP("epsilon", "e", settings.Epsilon, "symbol that stands for epsilon in an NFA")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func loadSettings(cmd *cobra.Command, args []string) error {
	if *rootFlags.config != "" {
		c, err := config.Load(*rootFlags.config)
		if err != nil {
			return fmt.Errorf("Cannot read the configuration file: %w", err)
		}
		settings = c
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = *rootFlags.logLevel
	}
	if flags.Changed("epsilon") {
		settings.Epsilon = *rootFlags.epsilon
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		settings.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("parallel") != nil && flags.Changed("parallel") {
		settings.Parallel, _ = flags.GetBool("parallel")
	}
	if flags.Lookup("no-trace") != nil && flags.Changed("no-trace") {
		noTrace, _ := flags.GetBool("no-trace")
		settings.Trace = !noTrace
	}
	if flags.Lookup("compression") != nil && flags.Changed("compression") {
		settings.Compression, _ = flags.GetInt("compression")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	u.SetupLogging(settings.LogLevel)
	u.SetColorIfTerminal()
	u.Debugf("settings: %+v", settings)
	return nil
}

// recoverable turns a panic of a command into an error and prints the stack trace.
func recoverable(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (retErr error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("an unexpected error occurred: %v", v)
			}
			fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
			retErr = err
		}()
		return run(cmd, args)
	}
}
