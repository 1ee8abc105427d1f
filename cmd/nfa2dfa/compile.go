package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [<NFA file path>]",
		Short: "Compile an NFA into a portable DFA table",
		Example: `  nfa2dfa compile nfa.txt -o nfa.json
  nfa2dfa compile nfa.txt -o out/ --compression 0`,
		Args: cobra.MaximumNArgs(1),
		RunE: recoverable(runCompile),
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	cmd.Flags().Int("compression", automaton.CompressionLevelMax, "compression level of the transition table [0,1,2]")
	cmd.Flags().Bool("parallel", false, "compute the moves of a state concurrently")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	nfa, err := readNFA(path)
	if err != nil {
		return err
	}

	rec := &automaton.TraceRecorder{}
	dfa := automaton.Construct(nfa, constructOptions(rec)...)
	name := nameOf(path)
	cdfa, err := automaton.Compile(dfa, automaton.CompressionLevel(settings.Compression), automaton.Name(name))
	if err != nil {
		return err
	}
	report := automaton.GenReport(dfa, name, rec.Records)

	err = writeCompiledDFAAndReport(cdfa, report, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write an output files: %w", err)
	}
	return nil
}

// writeCompiledDFAAndReport writes a compiled DFA and a report of its construction.
//
//  1. When the path is a directory path, the files are <path>/<name>.json and
//     <path>/<name>-report.json.
//  2. When the path is a file path or a non-existent path, the compiled DFA is written to the
//     path and the report to <name>-report.json in the same directory.
//  3. When the path is empty, the compiled DFA is written to stdout and the report to
//     <current-directory>/<name>-report.json.
func writeCompiledDFAAndReport(cdfa *spec.CompiledDFA, report *spec.Report, path string) error {
	cdfaPath, reportPath, err := makeOutputFilePaths(cdfa.Name, path)
	if err != nil {
		return err
	}

	{
		var w io.Writer
		if cdfaPath != "" {
			f, err := os.OpenFile(cdfaPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		} else {
			w = os.Stdout
		}

		b, err := json.Marshal(cdfa)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\n", string(b))
	}

	{
		f, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()

		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(f, "%v\n", string(b))
	}

	return nil
}

func makeOutputFilePaths(name string, path string) (string, string, error) {
	reportFileName := name + "-report.json"

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		return "", filepath.Join(wd, reportFileName), nil
	}

	fi, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	if os.IsNotExist(err) || !fi.IsDir() {
		dir, _ := filepath.Split(path)
		return path, filepath.Join(dir, reportFileName), nil
	}

	return filepath.Join(path, name+".json"), filepath.Join(path, reportFileName), nil
}

func readCompiledDFA(path string) (*spec.CompiledDFA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the compiled DFA %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	cdfa := &spec.CompiledDFA{}
	err = json.Unmarshal(d, cdfa)
	if err != nil {
		return nil, err
	}
	return cdfa, nil
}
