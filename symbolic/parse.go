package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

var ErrParse = errors.New("symbolic: parse error")

// Parse reads an arithmetic expression over integers, decimals and identifiers
// using + - * / ^ and parentheses. Exponents must be integer constants.
func Parse(input string) (e Expr, err error) {
	p := &parser{src: input}
	p.next()
	if e, err = p.expr(); err != nil {
		return
	}
	if p.tok.kind != tokEOF {
		err = p.errorf("unexpected %q", p.tok.text)
	}
	return
}

func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src string
	pos int
	tok token
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d in %q: %s", ErrParse, p.tok.pos, p.src, fmt.Sprintf(format, args...))
}

func (p *parser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{tokEOF, "", start}
		return
	}
	c := p.src[p.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
			p.pos++
		}
		p.tok = token{tokNumber, p.src[start:p.pos], start}
	case c == '_' || unicode.IsLetter(rune(c)):
		for p.pos < len(p.src) && (p.src[p.pos] == '_' || unicode.IsLetter(rune(p.src[p.pos])) ||
			unicode.IsDigit(rune(p.src[p.pos]))) {
			p.pos++
		}
		p.tok = token{tokIdent, p.src[start:p.pos], start}
	case strings.IndexByte("+-*/^()", c) >= 0:
		p.pos++
		p.tok = token{tokOp, string(c), start}
	default:
		p.tok = token{tokOp, string(c), start}
		p.pos++
	}
}

func (p *parser) isOp(op string) bool { return p.tok.kind == tokOp && p.tok.text == op }

func (p *parser) expr() (e Expr, err error) {
	if e, err = p.term(); err != nil {
		return
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.tok.text
		p.next()
		var rhs Expr
		if rhs, err = p.term(); err != nil {
			return
		}
		if op == "+" {
			e = e.Add(rhs)
		} else {
			e = e.Sub(rhs)
		}
	}
	return
}

func (p *parser) term() (e Expr, err error) {
	if e, err = p.unary(); err != nil {
		return
	}
	for p.isOp("*") || p.isOp("/") {
		op := p.tok.text
		p.next()
		var rhs Expr
		if rhs, err = p.unary(); err != nil {
			return
		}
		if op == "*" {
			e = e.Mul(rhs)
			continue
		}
		if rhs.IsZero() {
			return e, p.errorf("division by zero")
		}
		e = e.Div(rhs)
	}
	return
}

func (p *parser) unary() (e Expr, err error) {
	if p.isOp("-") {
		p.next()
		if e, err = p.unary(); err != nil {
			return
		}
		return e.Neg(), nil
	}
	if p.isOp("+") {
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (e Expr, err error) {
	if e, err = p.primary(); err != nil {
		return
	}
	if !p.isOp("^") {
		return
	}
	p.next()
	var exp Expr
	if exp, err = p.unary(); err != nil {
		return
	}
	r, ok := exp.Rat()
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return e, p.errorf("exponent %s is not an integer constant", exp)
	}
	n := int(r.Num().Int64())
	if n < 0 && e.IsZero() {
		return e, p.errorf("division by zero")
	}
	return e.Pow(n), nil
}

func (p *parser) primary() (e Expr, err error) {
	switch p.tok.kind {
	case tokNumber:
		r, ok := new(big.Rat).SetString(p.tok.text)
		if !ok {
			return e, p.errorf("bad number %q", p.tok.text)
		}
		p.next()
		return FromRat(r), nil
	case tokIdent:
		s := Symbol(p.tok.text)
		p.next()
		return Sym(s), nil
	case tokOp:
		if p.tok.text == "(" {
			p.next()
			if e, err = p.expr(); err != nil {
				return
			}
			if !p.isOp(")") {
				return e, p.errorf("missing closing parenthesis")
			}
			p.next()
			return
		}
	}
	if p.tok.kind == tokEOF {
		return e, p.errorf("unexpected end of input")
	}
	return e, p.errorf("unexpected %q", p.tok.text)
}
