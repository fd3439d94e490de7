package methods

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

// Moment groups sharing a relaxation rate, in matrix row order. c2 stands for x^2 + y^2 + z^2.
var orthogonalBases = map[stencils.Family][][]string{
	stencils.D3Q15: {
		{"1", "x", "y", "z"},
		{"c2 - 2"},
		{"(15*c2^2 - 55*c2 + 32)/2"},
		{"(5*c2 - 13)*x/2", "(5*c2 - 13)*y/2", "(5*c2 - 13)*z/2"},
		{"3*x^2 - c2", "y^2 - z^2", "x*y", "y*z", "x*z"},
		{"x*y*z"},
	},
	stencils.D3Q19: {
		{"1", "x", "y", "z"},
		{"19*c2 - 30"},
		{"(21*c2^2 - 53*c2 + 24)/2"},
		{"(5*c2 - 9)*x", "(5*c2 - 9)*y", "(5*c2 - 9)*z"},
		{"3*x^2 - c2", "y^2 - z^2", "x*y", "y*z", "x*z"},
		{"(3*c2 - 5)*(3*x^2 - c2)", "(3*c2 - 5)*(y^2 - z^2)"},
		{"(y^2 - z^2)*x", "(z^2 - x^2)*y", "(x^2 - y^2)*z"},
	},
	stencils.D3Q27: {
		{"1"},
		{"x", "y", "z"},
		{"x*y", "x*z", "y*z", "x^2 - y^2", "c2 - 3*z^2"},
		{"c2 - 2"},
		{"3*(x*y^2 + x*z^2) - 4*x", "3*(x^2*y + y*z^2) - 4*y", "3*(x^2*z + y^2*z) - 4*z"},
		{"x*y^2 - x*z^2", "x^2*y - y*z^2", "x^2*z - y^2*z"},
		{"x*y*z"},
		{"3*(x^2*y^2 + x^2*z^2 + y^2*z^2) - 4*c2 + 4"},
		{"3*(x^2*y^2 + x^2*z^2 - 2*y^2*z^2) - 2*(2*x^2 - y^2 - z^2)", "3*(x^2*y^2 - x^2*z^2) - 2*(y^2 - z^2)"},
		{"3*x^2*y*z - 2*y*z", "3*x*y^2*z - 2*x*z", "3*x*y*z^2 - 2*x*y"},
		{
			"9*x*y^2*z^2 - 6*(x*y^2 + x*z^2) + 4*x",
			"9*x^2*y*z^2 - 6*(x^2*y + y*z^2) + 4*y",
			"9*x^2*y^2*z - 6*(x^2*z + y^2*z) + 4*z",
		},
		{"27*x^2*y^2*z^2 - 18*(x^2*y^2 + x^2*z^2 + y^2*z^2) + 12*c2 - 8"},
	},
}

// OrthogonalMomentGroups returns a moment basis orthogonal under the
// unweighted discrete inner product, grouped by shared relaxation rate.
// D2Q9 is orthogonalized from its default set, grouped by order.
func OrthogonalMomentGroups(s stencils.Stencil) (groups [][]symbolic.Expr, err error) {
	fam := stencils.Identify(s)
	if fam == stencils.D2Q9 {
		var ms []symbolic.Expr
		if ms, err = moments.DefaultSet(s); err != nil {
			return
		}
		if ms, err = moments.GramSchmidt(ms, s, nil); err != nil {
			return
		}
		for i := range ms {
			ms[i] = integerCoefficients(ms[i])
		}
		return moments.GroupByOrder(ms), nil
	}
	table, ok := orthogonalBases[fam]
	if !ok {
		err = fmt.Errorf("%w: D%dQ%d", ErrNoOrthogonalBasis, s.Dim(), len(s))
		return
	}
	x, y, z := moments.Symbols[0].Expr(), moments.Symbols[1].Expr(), moments.Symbols[2].Expr()
	c2 := map[symbolic.Symbol]symbolic.Expr{"c2": x.Mul(x).Add(y.Mul(y)).Add(z.Mul(z))}
	groups = make([][]symbolic.Expr, len(table))
	for i, strs := range table {
		for _, str := range strs {
			var m symbolic.Expr
			if m, err = symbolic.Parse(str); err != nil {
				return nil, err
			}
			groups[i] = append(groups[i], m.Subs(c2))
		}
	}
	slog.Debug("orthogonal moment basis", "stencil", fam.String(), "groups", len(groups))
	return
}

// integerCoefficients scales a polynomial by the least common multiple of its
// coefficient denominators.
func integerCoefficients(m symbolic.Expr) symbolic.Expr {
	lcm := big.NewInt(1)
	for _, t := range m.Monomials() {
		den := t.Coeff.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, g))
	}
	return m.Mul(symbolic.FromRat(new(big.Rat).SetInt(lcm)))
}
