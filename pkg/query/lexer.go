package query

import (
	"fmt"
	"strings"
	"text/scanner"
)

// Token kinds beyond those of text/scanner.
const (
	tokLE   = -(iota + 100) // <=
	tokGE                   // >=
	tokEQ                   // ==
	tokDots                 // ..
)

// token is one lexical unit of a query.
type token struct {
	kind rune
	text string
	pos  scanner.Position
}

func (t token) String() string {
	switch t.kind {
	case scanner.EOF:
		return "end of input"
	case scanner.Ident:
		return fmt.Sprintf("%q", t.text)
	case scanner.Int:
		return "number " + t.text
	case scanner.String, scanner.RawString:
		return "string " + t.text
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// isKeyword reports whether t is the identifier kw, ignoring case.
func (t token) isKeyword(kw string) bool {
	return t.kind == scanner.Ident && strings.EqualFold(t.text, kw)
}

// lexer turns query text into tokens. Comparison operators and ".." are
// combined from single characters only when adjacent.
type lexer struct {
	s      scanner.Scanner
	errMsg string
	errPos scanner.Position
}

func newLexer(src string) *lexer {
	l := &lexer{}
	l.s.Init(strings.NewReader(src))
	l.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings |
		scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	l.s.Error = func(s *scanner.Scanner, msg string) {
		if l.errMsg == "" {
			l.errMsg, l.errPos = msg, s.Pos()
		}
	}
	return l
}

// next returns the next token.
func (l *lexer) next() token {
	kind := l.s.Scan()
	tok := token{kind: kind, text: l.s.TokenText(), pos: l.s.Position}
	switch {
	case kind == '<' && l.s.Peek() == '=':
		l.s.Next()
		tok.kind, tok.text = tokLE, "<="
	case kind == '>' && l.s.Peek() == '=':
		l.s.Next()
		tok.kind, tok.text = tokGE, ">="
	case kind == '=' && l.s.Peek() == '=':
		l.s.Next()
		tok.kind, tok.text = tokEQ, "=="
	case kind == '.' && l.s.Peek() == '.':
		l.s.Next()
		tok.kind, tok.text = tokDots, ".."
	}
	return tok
}

// where formats pos as line:column.
func where(pos scanner.Position) string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}
