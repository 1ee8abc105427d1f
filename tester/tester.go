package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/nfa2dfa/automaton"
	"github.com/nihei9/nfa2dfa/driver"
	"github.com/nihei9/nfa2dfa/spec"
)

// Mismatch is a test case whose expected verdict differs from what an automaton says.
type Mismatch struct {
	Case *spec.TestCase

	// Run is the DFA run. It is nil when the DFA rejected the input for an unknown symbol.
	Run *driver.Result

	// NFAVerdict is set only when the tester has an NFA and the NFA disagrees with the DFA.
	NFAVerdict *bool

	Message string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Mismatches   []*Mismatch
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Mismatches) == 0 {
			return msg
		}
		var lines []string
		for _, m := range r.Mismatches {
			lines = append(lines, fmt.Sprintf("%v:%v: %v", m.Case.Pos.Row, m.Case.Pos.Col, m.Case))
			lines = append(lines, fmt.Sprintf("%v%v", indent1, m.Message))
			if m.Run != nil {
				lines = append(lines, fmt.Sprintf("%vpath: %v", indent1, m.Run))
			}
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(lines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCases []*spec.TestCase
	FilePath  string
	Error     error
}

// ListTestCases reads a test case file, or every file under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		cs, err := parseTestCases(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCases: cs,
				FilePath:  testPath,
				Error:     err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCases(testCasePath string) ([]*spec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spec.ParseTestCases(f)
}

type Tester struct {
	DFA *spec.CompiledDFA

	// NFA is optional. When it is set, every case is also checked by simulating the NFA.
	NFA   *automaton.NFA
	Cases []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	r, err := driver.NewRecognizer(t.DFA)
	if err != nil {
		var rs []*TestResult
		for _, c := range t.Cases {
			rs = append(rs, &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			})
		}
		return rs
	}

	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, t.runTest(r, c))
	}
	return rs
}

func (t *Tester) runTest(r *driver.Recognizer, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var mismatches []*Mismatch
	for _, tc := range c.TestCases {
		if m := t.check(r, tc); m != nil {
			mismatches = append(mismatches, m)
		}
	}
	if len(mismatches) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v of %v cases failed", len(mismatches), len(c.TestCases)),
			Mismatches:   mismatches,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func (t *Tester) check(r *driver.Recognizer, tc *spec.TestCase) *Mismatch {
	var dfaVerdict bool
	res, err := r.Run(tc.Input)
	if err == nil {
		dfaVerdict = res.Accepted
	}

	if t.NFA != nil {
		nfaVerdict := t.NFA.Accepts(tc.Input)
		if nfaVerdict != dfaVerdict {
			return &Mismatch{
				Case:       tc,
				Run:        res,
				NFAVerdict: &nfaVerdict,
				Message:    fmt.Sprintf("the DFA %v the input but the NFA %v it", verdictVerb(dfaVerdict), verdictVerb(nfaVerdict)),
			}
		}
	}

	if dfaVerdict == tc.Accept {
		return nil
	}
	msg := fmt.Sprintf("the DFA %v the input", verdictVerb(dfaVerdict))
	if err != nil {
		msg = fmt.Sprintf("%v: %v", msg, err)
	}
	return &Mismatch{
		Case:    tc,
		Run:     res,
		Message: msg,
	}
}

func verdictVerb(accept bool) string {
	if accept {
		return "accepts"
	}
	return "rejects"
}
