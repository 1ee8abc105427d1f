package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/nfa2dfa/automaton"
	verr "github.com/nihei9/nfa2dfa/error"
	"github.com/nihei9/nfa2dfa/spec"
)

// readNFA reads an NFA from a file, or from stdin when path is empty.
func readNFA(path string) (nfa *automaton.NFA, retErr error) {
	defer func() {
		if retErr != nil {
			locateSpecErrors(retErr, path)
		}
	}()

	var src io.Reader
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		src = bytes.NewReader(b)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the NFA file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	ast, err := spec.Parse(src)
	if err != nil {
		return nil, err
	}
	b := &automaton.NFABuilder{
		AST:     ast,
		Epsilon: settings.Epsilon,
	}
	return b.Build()
}

func locateSpecErrors(err error, path string) {
	set := func(e *verr.SpecError) {
		if path == "" {
			e.SourceName = "stdin"
			return
		}
		e.FilePath = path
		e.SourceName = path
	}

	var specErrs verr.SpecErrors
	if errors.As(err, &specErrs) {
		for _, e := range specErrs {
			set(e)
		}
		return
	}
	var specErr *verr.SpecError
	if errors.As(err, &specErr) {
		set(specErr)
	}
}

func constructOptions(tracers ...automaton.Tracer) []automaton.ConstructOption {
	if settings.LogLevel == "debug" {
		tracers = append(tracers, automaton.NewLogTracer())
	}
	opts := []automaton.ConstructOption{
		automaton.WithTracer(automaton.MultiTracer(tracers...)),
	}
	if settings.Parallel {
		opts = append(opts, automaton.ParallelMoves())
	}
	return opts
}
