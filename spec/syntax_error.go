package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken  = newSyntaxError("invalid token")
	synErrInvalidNumber = newSyntaxError("a state number is out of range")

	// syntax errors
	synErrNoInitialState     = newSyntaxError("the 'Initial State:' line is missing")
	synErrNoFinalStates      = newSyntaxError("the 'Final States:' line is missing")
	synErrNoHeader           = newSyntaxError("the 'State' header line is missing")
	synErrNoSymbol           = newSyntaxError("the header needs at least one symbol")
	synErrNoRow              = newSyntaxError("an NFA needs at least one state row")
	synErrNoColon            = newSyntaxError("a colon must follow the keyword")
	synErrNoSet              = newSyntaxError("a set of states is expected")
	synErrUnclosedSet        = newSyntaxError("unclosed set of states")
	synErrNoStateAfterComma  = newSyntaxError("a state number must follow a comma")
	synErrInitialStateCount  = newSyntaxError("the initial state set must contain exactly one state")
	synErrNoTotal            = newSyntaxError("the number of states is missing")
	synErrNoRowState         = newSyntaxError("a row must start with a state number")
	synErrRowArity           = newSyntaxError("the number of sets in a row doesn't match the number of symbols")
	synErrNoNewline          = newSyntaxError("a line must end with a newline")
	synErrNoVerdict          = newSyntaxError("a test case must start with 'accept' or 'reject'")
	synErrInvalidTestSymbol  = newSyntaxError("a test input must consist of symbols")
	synErrUnexpectedKeyword  = newSyntaxError("unexpected keyword")
	synErrDuplicateTotalLine = newSyntaxError("the 'Total States:' line appears more than once")
)
