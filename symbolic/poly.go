package symbolic

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Symbol is a named scalar quantity.
type Symbol string

func (s Symbol) Expr() Expr { return Sym(s) }

type factor struct {
	sym Symbol
	exp int
}

// monomial factors are kept sorted by symbol name, all exponents positive
type monomial []factor

func (m monomial) key() string {
	var sb strings.Builder
	for i, f := range m {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(string(f.sym))
		if f.exp != 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(f.exp))
		}
	}
	return sb.String()
}

func (m monomial) degree() (deg int) {
	for _, f := range m {
		deg += f.exp
	}
	return
}

func (m monomial) exponent(s Symbol) int {
	for _, f := range m {
		if f.sym == s {
			return f.exp
		}
	}
	return 0
}

func (m monomial) mul(o monomial) (R monomial) {
	var (
		i, j int
	)
	R = make(monomial, 0, len(m)+len(o))
	for i < len(m) && j < len(o) {
		switch {
		case m[i].sym == o[j].sym:
			R = append(R, factor{m[i].sym, m[i].exp + o[j].exp})
			i++
			j++
		case m[i].sym < o[j].sym:
			R = append(R, m[i])
			i++
		default:
			R = append(R, o[j])
			j++
		}
	}
	R = append(R, m[i:]...)
	R = append(R, o[j:]...)
	return
}

// div assumes o divides m
func (m monomial) div(o monomial) (R monomial) {
	R = make(monomial, 0, len(m))
	for _, f := range m {
		if e := f.exp - o.exponent(f.sym); e > 0 {
			R = append(R, factor{f.sym, e})
		}
	}
	return
}

func (m monomial) gcd(o monomial) (R monomial) {
	for _, f := range m {
		e := o.exponent(f.sym)
		if e == 0 {
			continue
		}
		if f.exp < e {
			e = f.exp
		}
		R = append(R, factor{f.sym, e})
	}
	return
}

type pterm struct {
	mono  monomial
	coeff *big.Rat
}

// poly is a sparse polynomial keyed by the canonical monomial string.
// Values are never mutated after construction.
type poly map[string]pterm

func constPoly(r *big.Rat) poly {
	if r.Sign() == 0 {
		return poly{}
	}
	return poly{"": {nil, new(big.Rat).Set(r)}}
}

func symPoly(s Symbol) poly {
	m := monomial{{s, 1}}
	return poly{m.key(): {m, big.NewRat(1, 1)}}
}

func (p poly) addTerm(m monomial, c *big.Rat) {
	k := m.key()
	if t, ok := p[k]; ok {
		sum := new(big.Rat).Add(t.coeff, c)
		if sum.Sign() == 0 {
			delete(p, k)
		} else {
			p[k] = pterm{t.mono, sum}
		}
		return
	}
	if c.Sign() != 0 {
		p[k] = pterm{m, new(big.Rat).Set(c)}
	}
}

func (p poly) add(q poly) (R poly) {
	R = make(poly, len(p)+len(q))
	for k, t := range p {
		R[k] = t
	}
	for _, t := range q {
		R.addTerm(t.mono, t.coeff)
	}
	return
}

func (p poly) scale(r *big.Rat) (R poly) {
	R = make(poly, len(p))
	if r.Sign() == 0 {
		return
	}
	for k, t := range p {
		R[k] = pterm{t.mono, new(big.Rat).Mul(t.coeff, r)}
	}
	return
}

func (p poly) neg() poly { return p.scale(big.NewRat(-1, 1)) }

func (p poly) mul(q poly) (R poly) {
	R = make(poly, len(p)*len(q))
	for _, a := range p {
		for _, b := range q {
			R.addTerm(a.mono.mul(b.mono), new(big.Rat).Mul(a.coeff, b.coeff))
		}
	}
	return
}

func (p poly) divMono(m monomial) (R poly) {
	R = make(poly, len(p))
	for _, t := range p {
		nm := t.mono.div(m)
		R[nm.key()] = pterm{nm, t.coeff}
	}
	return
}

func (p poly) isZero() bool { return len(p) == 0 }

func (p poly) constant() (r *big.Rat, ok bool) {
	switch len(p) {
	case 0:
		return new(big.Rat), true
	case 1:
		if t, found := p[""]; found {
			return t.coeff, true
		}
	}
	return nil, false
}

func (p poly) equal(q poly) bool {
	if len(p) != len(q) {
		return false
	}
	for k, t := range p {
		u, ok := q[k]
		if !ok || t.coeff.Cmp(u.coeff) != 0 {
			return false
		}
	}
	return true
}

// sorted orders terms by descending degree, then by monomial key
func (p poly) sorted() (terms []pterm) {
	terms = make([]pterm, 0, len(p))
	for _, t := range p {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		di, dj := terms[i].mono.degree(), terms[j].mono.degree()
		if di != dj {
			return di > dj
		}
		return terms[i].mono.key() < terms[j].mono.key()
	})
	return
}

func (p poly) monoGCD() (g monomial) {
	first := true
	for _, t := range p {
		if first {
			g, first = t.mono, false
			continue
		}
		g = g.gcd(t.mono)
		if len(g) == 0 {
			return
		}
	}
	return
}

func (p poly) symbols(set map[Symbol]struct{}) {
	for _, t := range p {
		for _, f := range t.mono {
			set[f.sym] = struct{}{}
		}
	}
}

func (p poly) String() string {
	if len(p) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sorted() {
		c := t.coeff
		if c.Sign() < 0 {
			if i == 0 {
				sb.WriteString("-")
			} else {
				sb.WriteString(" - ")
			}
			c = new(big.Rat).Neg(c)
		} else if i > 0 {
			sb.WriteString(" + ")
		}
		isOne := c.Cmp(big.NewRat(1, 1)) == 0
		switch {
		case len(t.mono) == 0:
			sb.WriteString(c.RatString())
		case isOne:
			sb.WriteString(t.mono.key())
		default:
			sb.WriteString(c.RatString())
			sb.WriteByte('*')
			sb.WriteString(t.mono.key())
		}
	}
	return sb.String()
}
