package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUndefinedValue = errors.New("symbolic: no value for symbol")
	ErrDivisionByZero = errors.New("symbolic: division by zero")
)

// Expr is an exact rational function: a ratio of two sparse polynomials with
// rational coefficients. The zero value is the constant 0. A nil denominator is 1.
type Expr struct {
	num, den poly
}

type Term struct {
	Coeff  *big.Rat
	Powers map[Symbol]int
}

func Sym(s Symbol) Expr { return Expr{num: symPoly(s)} }

func Int(n int64) Expr { return Expr{num: constPoly(big.NewRat(n, 1))} }

func Rational(a, b int64) Expr { return Expr{num: constPoly(big.NewRat(a, b))} }

func FromRat(r *big.Rat) Expr { return Expr{num: constPoly(r)} }

// Float converts through the shortest decimal representation, so 1.1 becomes 11/10.
func Float(f float64) Expr {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
	}
	return FromRat(r)
}

func Zero() Expr { return Expr{} }

func One() Expr { return Int(1) }

func Sum(xs ...Expr) (R Expr) {
	for _, x := range xs {
		R = R.Add(x)
	}
	return
}

func Product(xs ...Expr) (R Expr) {
	R = One()
	for _, x := range xs {
		R = R.Mul(x)
	}
	return
}

func (e Expr) denom() poly {
	if e.den == nil {
		return constPoly(big.NewRat(1, 1))
	}
	return e.den
}

func newExpr(num, den poly) Expr {
	if num.isZero() {
		return Expr{}
	}
	if den == nil {
		return Expr{num: num}
	}
	if den.isZero() {
		panic(ErrDivisionByZero)
	}
	if c, ok := den.constant(); ok {
		return Expr{num: num.scale(new(big.Rat).Inv(c))}
	}
	if g := num.monoGCD().gcd(den.monoGCD()); len(g) != 0 {
		num, den = num.divMono(g), den.divMono(g)
		if c, ok := den.constant(); ok {
			return Expr{num: num.scale(new(big.Rat).Inv(c))}
		}
	}
	lead := den.sorted()[0]
	inv := new(big.Rat).Inv(lead.coeff)
	num, den = num.scale(inv), den.scale(inv)
	// proportional numerator collapses to a constant
	if t, ok := num[lead.mono.key()]; ok && len(num) == len(den) {
		if num.add(den.scale(new(big.Rat).Neg(t.coeff))).isZero() {
			return FromRat(t.coeff)
		}
	}
	return Expr{num: num, den: den}
}

func (e Expr) Add(o Expr) Expr {
	switch {
	case e.den == nil && o.den == nil:
		return Expr{num: e.num.add(o.num)}
	case e.den != nil && o.den != nil && e.den.equal(o.den):
		return newExpr(e.num.add(o.num), e.den)
	}
	var (
		ed, od = e.denom(), o.denom()
	)
	return newExpr(e.num.mul(od).add(o.num.mul(ed)), ed.mul(od))
}

func (e Expr) Neg() Expr {
	return Expr{num: e.num.neg(), den: e.den}
}

func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }

func (e Expr) Mul(o Expr) Expr {
	if e.den == nil && o.den == nil {
		return Expr{num: e.num.mul(o.num)}
	}
	return newExpr(e.num.mul(o.num), e.denom().mul(o.denom()))
}

// Div panics with ErrDivisionByZero when o is identically zero.
func (e Expr) Div(o Expr) Expr {
	if o.IsZero() {
		panic(ErrDivisionByZero)
	}
	return newExpr(e.num.mul(o.denom()), e.denom().mul(o.num))
}

func (e Expr) Inv() Expr { return One().Div(e) }

func (e Expr) Pow(n int) (R Expr) {
	if n < 0 {
		return e.Inv().Pow(-n)
	}
	R = One()
	base := e
	for n > 0 {
		if n&1 == 1 {
			R = R.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return
}

func (e Expr) IsZero() bool { return e.num.isZero() }

func (e Expr) IsPolynomial() bool { return e.den == nil }

func (e Expr) IsConstant() bool {
	_, ok := e.Rat()
	return ok
}

// Rat returns the value of a constant expression.
func (e Expr) Rat() (r *big.Rat, ok bool) {
	if e.den != nil {
		return nil, false
	}
	if r, ok = e.num.constant(); ok {
		r = new(big.Rat).Set(r)
	}
	return
}

func (e Expr) Float64() (f float64, ok bool) {
	var r *big.Rat
	if r, ok = e.Rat(); ok {
		f, _ = r.Float64()
	}
	return
}

// AsSymbol reports whether e is exactly a bare symbol.
func (e Expr) AsSymbol() (s Symbol, ok bool) {
	if e.den != nil || len(e.num) != 1 {
		return
	}
	for _, t := range e.num {
		if len(t.mono) == 1 && t.mono[0].exp == 1 && t.coeff.Cmp(big.NewRat(1, 1)) == 0 {
			return t.mono[0].sym, true
		}
	}
	return
}

func (e Expr) Equal(o Expr) bool {
	return e.num.mul(o.denom()).add(o.num.mul(e.denom()).neg()).isZero()
}

func (e Expr) FreeSymbols() (syms []Symbol) {
	set := make(map[Symbol]struct{})
	e.num.symbols(set)
	e.den.symbols(set)
	return sortedSymbols(set)
}

func (e Expr) Has(syms ...Symbol) bool {
	for _, s := range e.FreeSymbols() {
		for _, q := range syms {
			if s == q {
				return true
			}
		}
	}
	return false
}

// Terms splits the expression into its additive terms over the common denominator.
func (e Expr) Terms() (terms []Expr) {
	for _, t := range e.num.sorted() {
		p := poly{t.mono.key(): t}
		terms = append(terms, newExpr(p, e.den))
	}
	return
}

// Monomials lists the numerator terms; meaningful for polynomials.
func (e Expr) Monomials() (terms []Term) {
	for _, t := range e.num.sorted() {
		powers := make(map[Symbol]int, len(t.mono))
		for _, f := range t.mono {
			powers[f.sym] = f.exp
		}
		terms = append(terms, Term{new(big.Rat).Set(t.coeff), powers})
	}
	return
}

// Degree is the highest total degree in the given symbols over the numerator terms.
func (e Expr) Degree(syms ...Symbol) (deg int) {
	for _, t := range e.num {
		var d int
		for _, s := range syms {
			d += t.mono.exponent(s)
		}
		if d > deg {
			deg = d
		}
	}
	return
}

func (e Expr) Subs(values map[Symbol]Expr) Expr {
	if len(values) == 0 {
		return e
	}
	num := subsPoly(e.num, values)
	if e.den == nil {
		return num
	}
	return num.Div(subsPoly(e.den, values))
}

func subsPoly(p poly, values map[Symbol]Expr) (R Expr) {
	powers := make(map[factor]Expr)
	for _, t := range p.sorted() {
		termExpr := FromRat(t.coeff)
		for _, f := range t.mono {
			v, ok := values[f.sym]
			if !ok {
				v = Sym(f.sym)
			}
			pw, ok := powers[f]
			if !ok {
				pw = v.Pow(f.exp)
				powers[f] = pw
			}
			termExpr = termExpr.Mul(pw)
		}
		R = R.Add(termExpr)
	}
	return
}

func (e Expr) EvalRat(values map[Symbol]*big.Rat) (r *big.Rat, err error) {
	var num, den *big.Rat
	if num, err = evalPolyRat(e.num, values); err != nil {
		return
	}
	if e.den == nil {
		return num, nil
	}
	if den, err = evalPolyRat(e.den, values); err != nil {
		return
	}
	if den.Sign() == 0 {
		err = ErrDivisionByZero
		return
	}
	return num.Quo(num, den), nil
}

func evalPolyRat(p poly, values map[Symbol]*big.Rat) (sum *big.Rat, err error) {
	sum = new(big.Rat)
	for _, t := range p {
		v := new(big.Rat).Set(t.coeff)
		for _, f := range t.mono {
			x, ok := values[f.sym]
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUndefinedValue, f.sym)
			}
			for k := 0; k < f.exp; k++ {
				v.Mul(v, x)
			}
		}
		sum.Add(sum, v)
	}
	return
}

func (e Expr) Eval(values map[Symbol]float64) (val float64, err error) {
	var num, den float64
	if num, err = evalPolyFloat(e.num, values); err != nil {
		return
	}
	if e.den == nil {
		return num, nil
	}
	if den, err = evalPolyFloat(e.den, values); err != nil {
		return
	}
	return num / den, nil
}

func evalPolyFloat(p poly, values map[Symbol]float64) (sum float64, err error) {
	for _, t := range p {
		v, _ := t.coeff.Float64()
		for _, f := range t.mono {
			x, ok := values[f.sym]
			if !ok {
				return 0, fmt.Errorf("%w %q", ErrUndefinedValue, f.sym)
			}
			for k := 0; k < f.exp; k++ {
				v *= x
			}
		}
		sum += v
	}
	return
}

func (e Expr) String() string {
	if e.den == nil {
		return e.num.String()
	}
	n, d := e.num.String(), e.den.String()
	if len(e.num) > 1 {
		n = "(" + n + ")"
	}
	if len(e.den) > 1 || strings.ContainsAny(d, "*/") {
		d = "(" + d + ")"
	}
	return n + "/" + d
}

func sortedSymbols(set map[Symbol]struct{}) (syms []Symbol) {
	syms = make([]Symbol, 0, len(set))
	for s := range set {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return
}
