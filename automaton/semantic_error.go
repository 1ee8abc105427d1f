package automaton

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoState            = newSemanticError("an NFA needs at least one state")
	semErrNoInputSymbol      = newSemanticError("an NFA needs at least one symbol other than epsilon")
	semErrDuplicateSymbol    = newSemanticError("duplicate symbol")
	semErrDuplicateState     = newSemanticError("duplicate state")
	semErrUndeclaredState    = newSemanticError("undeclared state")
	semErrNegativeState      = newSemanticError("a state must be a non-negative number")
	semErrUnknownSymbol      = newSemanticError("undefined symbol")
	semErrStateCountMismatch = newSemanticError("the number of states doesn't match the 'Total States:' line")
)
