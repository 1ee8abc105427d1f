package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	verr "github.com/nihei9/nfa2dfa/error"
)

type tokenKind string

const (
	tokenKindSetOpen    = tokenKind("{")
	tokenKindSetClose   = tokenKind("}")
	tokenKindComma      = tokenKind(",")
	tokenKindColon      = tokenKind(":")
	tokenKindInteger    = tokenKind("integer")
	tokenKindIdentifier = tokenKind("identifier")
	tokenKindSymbol     = tokenKind("symbol")
	tokenKindNewline    = tokenKind("newline")
	tokenKindEOF        = tokenKind("eof")
	tokenKindInvalid    = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newTextToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// lexSpec is shared by the NFA description and the test case formats.
func lexSpec() *mlspec.LexSpec {
	return &mlspec.LexSpec{
		Name: "nfa",
		Entries: []*mlspec.LexEntry{
			{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
			{Kind: "newline", Pattern: `\u{000A}|\u{000D}\u{000A}|\u{000D}`},
			{Kind: "line_comment", Pattern: `#[^\u{000A}\u{000D}]*`},
			{Kind: "set_open", Pattern: `\u{007B}`},
			{Kind: "set_close", Pattern: `\u{007D}`},
			{Kind: "comma", Pattern: `,`},
			{Kind: "colon", Pattern: `:`},
			{Kind: "integer", Pattern: `[0-9]+`},
			{Kind: "identifier", Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
			// Any other run of printable characters is an opaque symbol such as + or a'.
			{Kind: "symbol", Pattern: `[^\u{0000}-\u{0020}\u{007F}\u{007B}\u{007D},:#]+`},
		},
	}
}

var (
	compiledLexSpecOnce sync.Once
	compiledLexSpec     *mlspec.CompiledLexSpec
	compiledLexSpecErr  error
)

func loadLexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(lexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for i, cErr := range cErrs {
					if i > 0 {
						fmt.Fprintf(&b, "\n")
					}
					fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
					if cErr.Detail != "" {
						fmt.Fprintf(&b, ": %v", cErr.Detail)
					}
				}
				compiledLexSpecErr = fmt.Errorf("failed to compile the lexical specification: %v", b.String())
				return
			}
			compiledLexSpecErr = fmt.Errorf("failed to compile the lexical specification: %w", err)
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := loadLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines collapse into one newline token.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			newline = tok
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kindName string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), pos), nil
		}
		if tok.EOF {
			return newEOFToken(pos), nil
		}
		kindName = l.s.KindNames[tok.KindID].String()
		switch kindName {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	switch kindName {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "set_open":
		return newSymbolToken(tokenKindSetOpen, pos), nil
	case "set_close":
		return newSymbolToken(tokenKindSetClose, pos), nil
	case "comma":
		return newSymbolToken(tokenKindComma, pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "integer":
		return newTextToken(tokenKindInteger, string(tok.Lexeme), pos), nil
	case "identifier":
		return newTextToken(tokenKindIdentifier, string(tok.Lexeme), pos), nil
	case "symbol":
		return newTextToken(tokenKindSymbol, string(tok.Lexeme), pos), nil
	default:
		return nil, &verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: fmt.Sprintf("unknown lexical kind: %v", kindName),
			Row:    pos.Row,
			Col:    pos.Col,
		}
	}
}
