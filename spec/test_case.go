package spec

import (
	"io"
	"strings"
)

// TestCase is one line of a test case file:
//
//	accept: a a b
//	reject: b
//	accept:
//
// The last line expects the empty string to be accepted.
type TestCase struct {
	Accept bool
	Input  []string
	Pos    Position
}

func (c *TestCase) String() string {
	verdict := "reject"
	if c.Accept {
		verdict = "accept"
	}
	if len(c.Input) == 0 {
		return verdict + ": <empty>"
	}
	return verdict + ": " + strings.Join(c.Input, " ")
}

func ParseTestCases(src io.Reader) ([]*TestCase, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseTestCases()
}

func (p *parser) parseTestCases() (cases []*TestCase, retErr error) {
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

	for {
		p.consume(tokenKindNewline)
		if p.consume(tokenKindEOF) {
			break
		}
		cases = append(cases, p.parseTestCase())
	}
	return cases, nil
}

func (p *parser) parseTestCase() *TestCase {
	pos := p.peek().pos
	var accept bool
	switch {
	case p.consumeKeyword("accept"):
		accept = true
	case p.consumeKeyword("reject"):
		accept = false
	default:
		raiseSyntaxError(pos, synErrNoVerdict)
	}
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.peek().pos, synErrNoColon)
	}
	input := []string{}
	for p.consumeSymbol() {
		input = append(input, p.lastTok.text)
	}
	switch p.peek().kind {
	case tokenKindNewline, tokenKindEOF:
	default:
		raiseSyntaxError(p.peek().pos, synErrInvalidTestSymbol)
	}
	return &TestCase{
		Accept: accept,
		Input:  input,
		Pos:    pos,
	}
}
