package equilibrium

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

var (
	ErrNoWeights        = errors.New("equilibrium: no lattice weights for stencil")
	ErrUnsupportedOrder = errors.New("equilibrium: unsupported truncation order")
)

// MaxDiscreteOrder is the highest velocity order of the discrete Maxwellian expansion.
const MaxDiscreteOrder = 3

// CsSq is the lattice speed of sound squared the weights are tabulated for.
var CsSq = symbolic.Rational(1, 3)

// weights by squared velocity length
var weightTable = map[stencils.Family]map[int][2]int64{
	stencils.D2Q9:  {0: {4, 9}, 1: {1, 9}, 2: {1, 36}},
	stencils.D3Q15: {0: {2, 9}, 1: {1, 9}, 3: {1, 72}},
	stencils.D3Q19: {0: {1, 3}, 1: {1, 18}, 2: {1, 36}},
	stencils.D3Q27: {0: {8, 27}, 1: {2, 27}, 2: {1, 54}, 3: {1, 216}},
}

// Weights returns the lattice weights in stencil order.
func Weights(s stencils.Stencil) (w []*big.Rat, err error) {
	fam := stencils.Identify(s)
	table, ok := weightTable[fam]
	if !ok {
		err = fmt.Errorf("%w: D%dQ%d", ErrNoWeights, s.Dim(), len(s))
		return
	}
	w = make([]*big.Rat, len(s))
	for q, d := range s {
		frac := table[d.SquaredLength()]
		w[q] = big.NewRat(frac[0], frac[1])
	}
	return
}

// DiscreteMaxwellian is the polynomial expansion of the equilibrium PDFs up
// to the given velocity order. The incompressible form keeps density only in
// the zeroth order term.
func DiscreteMaxwellian(s stencils.Stencil, rho symbolic.Expr, u []symbolic.Expr, order int,
	csSq symbolic.Expr, compressible bool) (feq []symbolic.Expr, err error) {
	var (
		w                     []*big.Rat
		rhoInside, rhoOutside = symbolic.One(), rho
		half, sixth           = symbolic.Rational(1, 2), symbolic.Rational(1, 6)
		uu                    symbolic.Expr
	)
	if order < 0 || order > MaxDiscreteOrder {
		err = fmt.Errorf("%w: %d, the discrete Maxwellian supports up to %d", ErrUnsupportedOrder, order, MaxDiscreteOrder)
		return
	}
	if len(u) != s.Dim() {
		err = fmt.Errorf("equilibrium: %d velocity components for dimension %d", len(u), s.Dim())
		return
	}
	if w, err = Weights(s); err != nil {
		return
	}
	if !compressible {
		rhoInside, rhoOutside = rho, symbolic.One()
	}
	for _, ui := range u {
		uu = uu.Add(ui.Mul(ui))
	}
	feq = make([]symbolic.Expr, len(s))
	for q, d := range s {
		var eu symbolic.Expr
		for i, c := range d {
			eu = eu.Add(symbolic.Int(int64(c)).Mul(u[i]))
		}
		fq := rhoInside
		if order >= 1 {
			fq = fq.Add(eu.Div(csSq))
		}
		if order >= 2 {
			fq = fq.Add(half.Div(csSq.Pow(2)).Mul(eu.Pow(2))).Sub(half.Div(csSq).Mul(uu))
		}
		if order >= 3 {
			fq = fq.Add(sixth.Div(csSq.Pow(3)).Mul(eu.Pow(3))).Sub(half.Div(csSq.Pow(2)).Mul(uu).Mul(eu))
		}
		feq[q] = symbolic.FromRat(w[q]).Mul(fq).Mul(rhoOutside)
	}
	return
}

// DiscreteMoments returns the moments of the discrete Maxwellian.
func DiscreteMoments(ms []symbolic.Expr, s stencils.Stencil, rho symbolic.Expr, u []symbolic.Expr,
	order int, csSq symbolic.Expr, compressible bool) (eq []symbolic.Expr, err error) {
	var feq []symbolic.Expr
	if feq, err = DiscreteMaxwellian(s, rho, u, order, csSq, compressible); err != nil {
		return
	}
	eq = make([]symbolic.Expr, len(ms))
	for i, m := range ms {
		if eq[i], err = moments.Discrete(m, s, feq); err != nil {
			return nil, err
		}
	}
	return
}

// ContinuousMoments integrates each moment against the continuous Maxwellian
// and truncates the result at the given total velocity order. The result is
// always compressible.
func ContinuousMoments(ms []symbolic.Expr, dim int, rho symbolic.Expr, u []symbolic.Expr,
	order int, csSq symbolic.Expr) (eq []symbolic.Expr, err error) {
	if len(u) != dim {
		err = fmt.Errorf("equilibrium: %d velocity components for dimension %d", len(u), dim)
		return
	}
	if order < 0 {
		err = fmt.Errorf("%w: %d", ErrUnsupportedOrder, order)
		return
	}
	eq = make([]symbolic.Expr, len(ms))
	for i, m := range ms {
		if !m.IsPolynomial() {
			return nil, fmt.Errorf("%w: %s is not a polynomial", moments.ErrBadMoment, m)
		}
		var sum symbolic.Expr
		for _, term := range m.Monomials() {
			prod := symbolic.FromRat(term.Coeff)
			for sym, e := range term.Powers {
				axis := -1
				for k := 0; k < dim; k++ {
					if moments.Symbols[k] == sym {
						axis = k
					}
				}
				if axis < 0 {
					return nil, fmt.Errorf("%w: %s in %d dimensions", moments.ErrBadMoment, m, dim)
				}
				prod = prod.Mul(gaussianMoment(e, u[axis], csSq))
			}
			sum = sum.Add(prod)
		}
		eq[i] = rho.Mul(truncate(sum, u, order))
	}
	return
}

// gaussianMoment is E[v^n] for v normally distributed with mean u and variance csSq.
func gaussianMoment(n int, u, csSq symbolic.Expr) (R symbolic.Expr) {
	for k := 0; k <= n; k += 2 {
		// (k-1)!! central moment times binomial(n, k)
		coeff := new(big.Int).Binomial(int64(n), int64(k))
		for j := k - 1; j > 1; j -= 2 {
			coeff.Mul(coeff, big.NewInt(int64(j)))
		}
		R = R.Add(symbolic.FromRat(new(big.Rat).SetInt(coeff)).Mul(u.Pow(n - k)).Mul(csSq.Pow(k / 2)))
	}
	return
}

func truncate(e symbolic.Expr, u []symbolic.Expr, order int) (R symbolic.Expr) {
	syms := make([]symbolic.Symbol, 0, len(u))
	for _, ui := range u {
		syms = append(syms, ui.FreeSymbols()...)
	}
	for _, term := range e.Terms() {
		if term.Degree(syms...) <= order {
			R = R.Add(term)
		}
	}
	return
}

// CompressibleToIncompressible divides by density every additive term that
// contains both the density and a velocity symbol.
func CompressibleToIncompressible(term symbolic.Expr, rho symbolic.Symbol, u []symbolic.Symbol) (R symbolic.Expr) {
	for _, t := range term.Terms() {
		if t.Has(rho) && t.Has(u...) {
			t = t.Div(rho.Expr())
		}
		R = R.Add(t)
	}
	return
}
