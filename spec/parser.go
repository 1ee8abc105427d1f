package spec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	verr "github.com/nihei9/nfa2dfa/error"
)

// NFANode is the syntax tree of an NFA description.
//
//	Initial State: {0}
//	Final States: {2}
//	Total States: 3
//	State   a     b     E
//	0       {}    {}    {1}
//	1       {1}   {2}   {}
//	2       {}    {}    {}
type NFANode struct {
	Initial *SetNode
	Final   *SetNode

	// Total is nil when the description omits the 'Total States:' line.
	Total  *CountNode
	Header *HeaderNode
	Rows   []*RowNode
}

type SetNode struct {
	States []*StateNode
	Pos    Position
}

type StateNode struct {
	Num int
	Pos Position
}

type CountNode struct {
	Count int
	Pos   Position
}

type HeaderNode struct {
	Symbols []*SymbolNode
	Pos     Position
}

type SymbolNode struct {
	Name string
	Pos  Position
}

type RowNode struct {
	State *StateNode
	Sets  []*SetNode
	Pos   Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   pos.Row,
		Col:   pos.Col,
	})
}

func raiseSyntaxErrorWithDetail(pos Position, synErr *SyntaxError, detail string) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func Parse(src io.Reader) (*NFANode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *NFANode, retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				panic(v)
			}
			retErr = err
		}
	}()
	return p.parseNFA(), nil
}

func (p *parser) parseNFA() *NFANode {
	p.consume(tokenKindNewline)

	initial := p.parseInitialLine()
	final := p.parseFinalLine()
	var total *CountNode
	if p.peekKeyword("total") {
		total = p.parseTotalLine()
	}
	header := p.parseHeader()

	var rows []*RowNode
	for {
		if p.consume(tokenKindEOF) {
			break
		}
		rows = append(rows, p.parseRow(len(header.Symbols)))
	}
	if len(rows) == 0 {
		raiseSyntaxError(p.lastTok.pos, synErrNoRow)
	}

	return &NFANode{
		Initial: initial,
		Final:   final,
		Total:   total,
		Header:  header,
		Rows:    rows,
	}
}

func (p *parser) parseInitialLine() *SetNode {
	pos := p.peek().pos
	if !p.consumeKeyword("initial") || !p.consumeKeyword("state", "states") {
		raiseSyntaxError(pos, synErrNoInitialState)
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.peek().pos, synErrNoColon)
	}
	set := p.parseSet()
	if len(set.States) != 1 {
		raiseSyntaxErrorWithDetail(set.Pos, synErrInitialStateCount, fmt.Sprintf("found %v states", len(set.States)))
	}
	p.endLine()
	return set
}

func (p *parser) parseFinalLine() *SetNode {
	pos := p.peek().pos
	if !p.consumeKeyword("final", "accepting") || !p.consumeKeyword("states", "state") {
		raiseSyntaxError(pos, synErrNoFinalStates)
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.peek().pos, synErrNoColon)
	}
	set := p.parseSet()
	p.endLine()
	return set
}

func (p *parser) parseTotalLine() *CountNode {
	pos := p.peek().pos
	if !p.consumeKeyword("total") || !p.consumeKeyword("states", "state") {
		raiseSyntaxError(pos, synErrUnexpectedKeyword)
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.peek().pos, synErrNoColon)
	}
	if !p.consume(tokenKindInteger) {
		raiseSyntaxError(p.peek().pos, synErrNoTotal)
	}
	count := &CountNode{
		Count: p.toNum(p.lastTok),
		Pos:   p.lastTok.pos,
	}
	p.endLine()
	return count
}

func (p *parser) parseHeader() *HeaderNode {
	if p.peekKeyword("total") {
		raiseSyntaxError(p.peek().pos, synErrDuplicateTotalLine)
	}
	pos := p.peek().pos
	if !p.consumeKeyword("state", "states") {
		raiseSyntaxError(pos, synErrNoHeader)
	}
	var syms []*SymbolNode
	for p.consumeSymbol() {
		syms = append(syms, &SymbolNode{
			Name: p.lastTok.text,
			Pos:  p.lastTok.pos,
		})
	}
	if len(syms) == 0 {
		raiseSyntaxError(p.peek().pos, synErrNoSymbol)
	}
	p.endLine()
	return &HeaderNode{
		Symbols: syms,
		Pos:     pos,
	}
}

func (p *parser) parseRow(arity int) *RowNode {
	if !p.consume(tokenKindInteger) {
		raiseSyntaxError(p.peek().pos, synErrNoRowState)
	}
	state := &StateNode{
		Num: p.toNum(p.lastTok),
		Pos: p.lastTok.pos,
	}
	var sets []*SetNode
	for p.peek().kind == tokenKindSetOpen {
		sets = append(sets, p.parseSet())
	}
	if len(sets) != arity {
		raiseSyntaxErrorWithDetail(state.Pos, synErrRowArity, fmt.Sprintf("state %v: want %v sets, got %v", state.Num, arity, len(sets)))
	}
	p.endLine()
	return &RowNode{
		State: state,
		Sets:  sets,
		Pos:   state.Pos,
	}
}

func (p *parser) parseSet() *SetNode {
	if !p.consume(tokenKindSetOpen) {
		raiseSyntaxError(p.peek().pos, synErrNoSet)
	}
	set := &SetNode{
		Pos: p.lastTok.pos,
	}
	if p.consume(tokenKindSetClose) {
		return set
	}
	if !p.consume(tokenKindInteger) {
		raiseSyntaxError(p.peek().pos, synErrUnclosedSet)
	}
	set.States = append(set.States, &StateNode{
		Num: p.toNum(p.lastTok),
		Pos: p.lastTok.pos,
	})
	for p.consume(tokenKindComma) {
		if !p.consume(tokenKindInteger) {
			raiseSyntaxError(p.peek().pos, synErrNoStateAfterComma)
		}
		set.States = append(set.States, &StateNode{
			Num: p.toNum(p.lastTok),
			Pos: p.lastTok.pos,
		})
	}
	if !p.consume(tokenKindSetClose) {
		raiseSyntaxError(p.peek().pos, synErrUnclosedSet)
	}
	return set
}

// endLine accepts a newline, or EOF without consuming it.
func (p *parser) endLine() {
	if p.consume(tokenKindNewline) {
		return
	}
	if p.peek().kind == tokenKindEOF {
		return
	}
	raiseSyntaxError(p.peek().pos, synErrNoNewline)
}

func (p *parser) toNum(tok *token) int {
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		raiseSyntaxErrorWithDetail(tok.pos, synErrInvalidNumber, tok.text)
	}
	return n
}

// consumeSymbol consumes an input symbol. A symbol is any identifier, integer or other run of
// printable characters.
func (p *parser) consumeSymbol() bool {
	return p.consume(tokenKindIdentifier) || p.consume(tokenKindInteger) || p.consume(tokenKindSymbol)
}

func (p *parser) peekKeyword(words ...string) bool {
	tok := p.peek()
	if tok.kind != tokenKindIdentifier {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(tok.text, w) {
			return true
		}
	}
	return false
}

// consumeKeyword consumes an identifier spelled like one of the words, ignoring case.
func (p *parser) consumeKeyword(words ...string) bool {
	if !p.peekKeyword(words...) {
		return false
	}
	return p.consume(tokenKindIdentifier)
}

func (p *parser) peek() *token {
	if p.peekedTok != nil {
		return p.peekedTok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	if tok.kind == tokenKindInvalid {
		raiseSyntaxErrorWithDetail(tok.pos, synErrInvalidToken, tok.text)
	}
	p.peekedTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}
