// Package query parses the urn query language into computation requests.
//
// A statement names what to compute, the selection sizes, the collection,
// and optionally the replacement mode, the constraints and output options:
//
//	COUNT DRAWS 2..8 FROM A=7, B=9;
//	PROBABILITY DRAWS 5 FROM red=4, blue=6 WHERE red >= 2 AND blue < 3 OR red = 0;
//	COUNT DRAWS 3, 5, 7 FROM heads=1, tails=1 WITH REPLACEMENT WHERE heads > 1 USING PLOT;
//
// Keywords are case-insensitive. Inside WHERE, AND and "," both join
// comparisons into a conjunction and OR separates disjuncts. Comparisons
// take the forms "label op n", "n op label" and "lo op label op hi" with op
// one of <, <=, >, >=, = and ==. Labels are identifiers or quoted strings.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/gitrdm/urn/pkg/urn"
)

// ErrSyntax is returned for malformed queries. The message carries the
// line:column of the offending token.
var ErrSyntax = errors.NewKind("syntax error at %s: %s")

// maxNumber bounds numeric literals so that bound arithmetic cannot overflow.
const maxNumber = 1 << 40

// Output holds the presentation options a statement asked for. Unset
// options are left to the caller's configuration.
type Output struct {
	// Format is "table" or "plot", or empty when not given.
	Format string
	// Rational is non-nil when SHOW RATIONAL or SHOW FLOAT was given.
	Rational *bool
}

// Statement is one parsed query.
type Statement struct {
	Request *urn.Request
	Output  Output
}

// Parse parses exactly one statement. The terminating ";" is optional.
func Parse(src string) (*Statement, error) {
	p := newParser(src)
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == ';' {
		p.advance()
	}
	if p.tok.kind != scanner.EOF {
		return nil, p.errorf("unexpected %s after statement", p.tok)
	}
	return stmt, nil
}

// ParseAll parses a sequence of statements separated by ";".
func ParseAll(src string) ([]*Statement, error) {
	p := newParser(src)
	var out []*Statement
	for p.tok.kind != scanner.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
		if p.tok.kind == scanner.EOF {
			break
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type parser struct {
	lex *lexer
	tok token
}

func newParser(src string) *parser {
	p := &parser{lex: newLexer(src)}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	if p.lex.errMsg != "" {
		return ErrSyntax.New(where(p.lex.errPos), p.lex.errMsg)
	}
	return ErrSyntax.New(where(p.tok.pos), fmt.Sprintf(format, args...))
}

func (p *parser) expect(kind rune) error {
	if p.tok.kind != kind {
		return p.errorf("expected %q, found %s", string(kind), p.tok)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	if !p.tok.isKeyword(kw) {
		return p.errorf("expected %s, found %s", kw, p.tok)
	}
	p.advance()
	return nil
}

var keywords = map[string]bool{
	"COUNT": true, "PROBABILITY": true, "PROB": true, "DRAW": true, "DRAWS": true,
	"FROM": true, "WITH": true, "REPLACEMENT": true, "WHERE": true, "AND": true,
	"OR": true, "USING": true, "SHOW": true,
}

// statement parses one statement up to, not including, its ";".
func (p *parser) statement() (*Statement, error) {
	if p.tok.kind != scanner.Ident {
		return nil, p.errorf("expected COUNT or PROBABILITY, found %s", p.tok)
	}
	kind, err := urn.ParseKind(p.tok.text)
	if err != nil {
		return nil, p.errorf("unknown computation %q", p.tok.text)
	}
	p.advance()

	if p.tok.kind != scanner.Ident {
		return nil, p.errorf("expected DRAWS, found %s", p.tok)
	}
	object, err := urn.ParseObject(p.tok.text)
	if err != nil {
		return nil, p.errorf("unknown object %q", p.tok.text)
	}
	p.advance()

	req := &urn.Request{Kind: kind, Object: object}
	stmt := &Statement{Request: req}

	if p.tok.kind == scanner.Int {
		if req.Sizes, err = p.sizes(); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	if req.Collection, err = p.collection(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for p.tok.kind == scanner.Ident {
		clause := p.tok
		for _, kw := range []string{"WITH", "WHERE", "USING", "SHOW"} {
			if clause.isKeyword(kw) {
				if seen[kw] {
					return nil, p.errorf("repeated %s clause", kw)
				}
				seen[kw] = true
			}
		}
		switch {
		case clause.isKeyword("WITH"):
			p.advance()
			if err := p.expectKeyword("REPLACEMENT"); err != nil {
				return nil, err
			}
			req.WithReplacement = true
		case clause.isKeyword("WHERE"):
			p.advance()
			if req.Constraints, err = p.constraints(); err != nil {
				return nil, err
			}
		case clause.isKeyword("USING"):
			p.advance()
			switch {
			case p.tok.isKeyword("TABLE"):
				stmt.Output.Format = "table"
			case p.tok.isKeyword("PLOT"):
				stmt.Output.Format = "plot"
			default:
				return nil, p.errorf("unknown output format %s", p.tok)
			}
			p.advance()
		case clause.isKeyword("SHOW"):
			p.advance()
			var rational bool
			switch {
			case p.tok.isKeyword("RATIONAL"):
				rational = true
			case p.tok.isKeyword("FLOAT"):
				rational = false
			default:
				return nil, p.errorf("expected RATIONAL or FLOAT, found %s", p.tok)
			}
			stmt.Output.Rational = &rational
			p.advance()
		default:
			return nil, p.errorf("unexpected %s", clause)
		}
	}
	return stmt, nil
}

// sizes parses span {"," span}; span = INT [".." INT], both ends inclusive.
func (p *parser) sizes() (*urn.Sizes, error) {
	var spans [][2]int
	for {
		lo, err := p.number()
		if err != nil {
			return nil, err
		}
		hi := lo
		if p.tok.kind == tokDots {
			p.advance()
			if hi, err = p.number(); err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf("empty selection range %d..%d", lo, hi)
			}
		}
		spans = append(spans, [2]int{lo, hi})
		if p.tok.kind != ',' {
			break
		}
		p.advance()
	}
	if len(spans) == 1 {
		return urn.SizeRange(spans[0][0], spans[0][1]+1), nil
	}
	var values []int
	for _, s := range spans {
		for k := s[0]; k <= s[1]; k++ {
			values = append(values, k)
		}
	}
	return urn.SizeList(values...), nil
}

// collection parses item {"," item}; item = label "=" INT.
func (p *parser) collection() (*urn.Collection, error) {
	c, _ := urn.NewCollection()
	for {
		pos := p.tok.pos
		label, err := p.label()
		if err != nil {
			return nil, err
		}
		if err := p.expect('='); err != nil {
			return nil, err
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if err := c.Add(label, n); err != nil {
			return nil, ErrSyntax.New(where(pos), fmt.Sprintf("duplicate item %q", label))
		}
		if p.tok.kind != ',' {
			return c, nil
		}
		p.advance()
	}
}

// constraints parses disjunct {"OR" disjunct}.
func (p *parser) constraints() ([][]urn.Bound, error) {
	var out [][]urn.Bound
	for {
		d, err := p.disjunct()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		if !p.tok.isKeyword("OR") {
			return out, nil
		}
		p.advance()
	}
}

// disjunct parses comparison {("AND" | ",") comparison}.
func (p *parser) disjunct() ([]urn.Bound, error) {
	var out []urn.Bound
	for {
		b, err := p.comparison()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
		if !p.tok.isKeyword("AND") && p.tok.kind != ',' {
			return out, nil
		}
		p.advance()
	}
}

// comparison parses "label op n", "n op label" or "lo op label op hi".
func (p *parser) comparison() (urn.Bound, error) {
	if p.tok.kind != scanner.Int {
		label, err := p.label()
		if err != nil {
			return urn.Bound{}, err
		}
		op, err := p.operator()
		if err != nil {
			return urn.Bound{}, err
		}
		n, err := p.number()
		if err != nil {
			return urn.Bound{}, err
		}
		return boundOf(label, op, n), nil
	}

	lo, err := p.number()
	if err != nil {
		return urn.Bound{}, err
	}
	op, err := p.operator()
	if err != nil {
		return urn.Bound{}, err
	}
	label, err := p.label()
	if err != nil {
		return urn.Bound{}, err
	}
	b := boundOf(label, flip(op), lo)
	if !isOperator(p.tok.kind) {
		return b, nil
	}
	op, err = p.operator()
	if err != nil {
		return urn.Bound{}, err
	}
	hi, err := p.number()
	if err != nil {
		return urn.Bound{}, err
	}
	return b.Intersect(boundOf(label, op, hi))
}

func (p *parser) label() (string, error) {
	switch p.tok.kind {
	case scanner.Ident:
		if keywords[strings.ToUpper(p.tok.text)] {
			return "", p.errorf("expected item name, found keyword %s (quote it to use it as a name)", p.tok.text)
		}
		label := p.tok.text
		p.advance()
		return label, nil
	case scanner.String, scanner.RawString:
		label, err := strconv.Unquote(p.tok.text)
		if err != nil {
			return "", p.errorf("malformed string %s", p.tok.text)
		}
		p.advance()
		return label, nil
	default:
		return "", p.errorf("expected item name, found %s", p.tok)
	}
}

func (p *parser) number() (int, error) {
	if p.tok.kind != scanner.Int {
		return 0, p.errorf("expected number, found %s", p.tok)
	}
	n, err := strconv.ParseInt(p.tok.text, 0, 64)
	if err != nil || n > maxNumber {
		return 0, p.errorf("number %s out of range", p.tok.text)
	}
	p.advance()
	return int(n), nil
}

func (p *parser) operator() (rune, error) {
	if !isOperator(p.tok.kind) {
		return 0, p.errorf("expected comparison operator, found %s", p.tok)
	}
	op := p.tok.kind
	p.advance()
	return op, nil
}

func isOperator(kind rune) bool {
	switch kind {
	case '<', '>', '=', tokLE, tokGE, tokEQ:
		return true
	}
	return false
}

// flip mirrors op so that "n op label" reads as "label flip(op) n".
func flip(op rune) rune {
	switch op {
	case '<':
		return '>'
	case '>':
		return '<'
	case tokLE:
		return tokGE
	case tokGE:
		return tokLE
	default:
		return op
	}
}

// boundOf compiles "label op n" into a half-open bound.
func boundOf(label string, op rune, n int) urn.Bound {
	switch op {
	case '<':
		return urn.LessThan(label, n)
	case tokLE:
		return urn.AtMost(label, n)
	case '>':
		return urn.GreaterThan(label, n)
	case tokGE:
		return urn.AtLeast(label, n)
	default:
		return urn.Exactly(label, n)
	}
}
