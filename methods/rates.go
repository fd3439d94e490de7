package methods

import (
	"fmt"

	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/symbolic"
)

// DefaultMagicNumber is the TRT parameter that places bounce back walls
// exactly half way between nodes.
var DefaultMagicNumber = symbolic.Rational(3, 16)

// RelaxationRateFromMagicNumber returns the odd TRT rate for the given even
// rate: (4 - 2w) / (4 L w + 2 - w).
func RelaxationRateFromMagicNumber(rate, magic symbolic.Expr) (odd symbolic.Expr, err error) {
	two, four := symbolic.Int(2), symbolic.Int(4)
	num := four.Sub(two.Mul(rate))
	den := four.Mul(magic).Mul(rate).Add(two).Sub(rate)
	if den.IsZero() {
		err = fmt.Errorf("%w: magic number %s has no odd rate for %s", ErrConfiguration, magic, rate)
		return
	}
	return num.Div(den), nil
}

// MagicNumber is (1/we - 1/2)(1/wo - 1/2). Both rates must be non zero.
func MagicNumber(even, odd symbolic.Expr) symbolic.Expr {
	half := symbolic.Rational(1, 2)
	return even.Inv().Sub(half).Mul(odd.Inv().Sub(half))
}

// RelaxationRateFromLatticeViscosity returns 2/(6 nu + 1).
func RelaxationRateFromLatticeViscosity(nu symbolic.Expr) symbolic.Expr {
	return symbolic.Int(2).Div(symbolic.Int(6).Mul(nu).Add(symbolic.One()))
}

// LatticeViscosityFromRelaxationRate returns (2/omega - 1)/6.
func LatticeViscosityFromRelaxationRate(omega symbolic.Expr) symbolic.Expr {
	return symbolic.Int(2).Div(omega).Sub(symbolic.One()).Div(symbolic.Int(6))
}

// Rates converts floating point rates to exact expressions.
func Rates(vals ...float64) (rates []symbolic.Expr) {
	rates = make([]symbolic.Expr, len(vals))
	for i, v := range vals {
		rates[i] = symbolic.Float(v)
	}
	return
}

// RateGetter chooses the relaxation rate of a group of orthogonal moments.
type RateGetter interface {
	RelaxationRate(group []symbolic.Expr) symbolic.Expr
}

type RateGetterFunc func(group []symbolic.Expr) symbolic.Expr

func (f RateGetterFunc) RelaxationRate(group []symbolic.Expr) symbolic.Expr { return f(group) }

// DefaultRateGetter relaxes groups holding a shear moment with the shear
// rate and conserved groups with zero. Every other group gets the next free
// symbol omega_1, omega_2, ...
type DefaultRateGetter struct {
	Shear symbolic.Expr
	next  int
}

func NewDefaultRateGetter(shear symbolic.Expr) *DefaultRateGetter {
	return &DefaultRateGetter{Shear: shear}
}

func (g *DefaultRateGetter) RelaxationRate(group []symbolic.Expr) symbolic.Expr {
	conservedOnly := true
	for _, m := range group {
		if moments.IsShear(m) {
			return g.Shear
		}
		if !moments.IsConserved(m) {
			conservedOnly = false
		}
	}
	if conservedOnly {
		return symbolic.Zero()
	}
	g.next++
	return symbolic.Sym(symbolic.Symbol(fmt.Sprintf("omega_%d", g.next)))
}
