package equilibrium

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

var (
	rho = symbolic.Sym("rho")
	u   = []symbolic.Expr{symbolic.Sym("u_0"), symbolic.Sym("u_1"), symbolic.Sym("u_2")}
)

func TestWeightsSumToOne(t *testing.T) {
	for _, label := range stencils.Labels() {
		for _, ord := range stencils.Orderings(label) {
			s := stencils.MustGet(label, ord)
			w, err := Weights(s)
			require.NoError(t, err)
			sum := new(big.Rat)
			for _, wq := range w {
				sum.Add(sum, wq)
			}
			assert.Equal(t, "1", sum.RatString(), label)
		}
	}
	_, err := Weights(stencils.Stencil{{0}, {1}, {-1}})
	assert.ErrorIs(t, err, ErrNoWeights)
}

func TestDiscreteMaxwellian(t *testing.T) {
	for _, label := range stencils.Labels() {
		s := stencils.MustGet(label)
		dim := s.Dim()
		w, _ := Weights(s)
		for _, compressible := range []bool{true, false} {
			feq, err := DiscreteMaxwellian(s, rho, u[:dim], 2, CsSq, compressible)
			require.NoError(t, err)
			defaults := map[symbolic.Symbol]symbolic.Expr{"rho": symbolic.One(), "u_0": symbolic.Zero(),
				"u_1": symbolic.Zero(), "u_2": symbolic.Zero()}
			for q := range s {
				assert.True(t, feq[q].Subs(defaults).Equal(symbolic.FromRat(w[q])), "%s %d", label, q)
			}
			density, err := moments.Discrete(symbolic.One(), s, feq)
			require.NoError(t, err)
			assert.True(t, density.Equal(rho), "%s: %s", label, density)
			momentum, err := moments.Discrete(symbolic.Sym("x"), s, feq)
			require.NoError(t, err)
			if compressible {
				assert.True(t, momentum.Equal(rho.Mul(u[0])), "%s: %s", label, momentum)
			} else {
				assert.True(t, momentum.Equal(u[0]), "%s: %s", label, momentum)
			}
		}
	}
	_, err := DiscreteMaxwellian(stencils.MustGet("D2Q9"), rho, u[:2], 4, CsSq, true)
	assert.ErrorIs(t, err, ErrUnsupportedOrder)
	_, err = DiscreteMaxwellian(stencils.MustGet("D2Q9"), rho, u, 2, CsSq, true)
	assert.Error(t, err)
}

func TestDiscreteMoments(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	ms := []symbolic.Expr{symbolic.MustParse("x^2"), symbolic.MustParse("x*y"), symbolic.MustParse("x^2*y")}
	eq, err := DiscreteMoments(ms, s, rho, u[:2], 2, CsSq, true)
	require.NoError(t, err)
	assert.True(t, eq[0].Equal(symbolic.MustParse("rho*u_0^2 + rho/3")), eq[0].String())
	assert.True(t, eq[1].Equal(symbolic.MustParse("rho*u_0*u_1")), eq[1].String())
	assert.True(t, eq[2].Equal(symbolic.MustParse("rho*u_1/3")), eq[2].String())
}

func TestContinuousMoments(t *testing.T) {
	ms := []symbolic.Expr{
		symbolic.One(),
		symbolic.MustParse("x"),
		symbolic.MustParse("x^2"),
		symbolic.MustParse("x^2*y^2"),
		symbolic.MustParse("x^2 + y^2 - 2/3"),
	}
	eq, err := ContinuousMoments(ms, 2, rho, u[:2], 2, CsSq)
	require.NoError(t, err)
	want := []string{
		"rho",
		"rho*u_0",
		"rho*u_0^2 + rho/3",
		"rho*u_0^2/3 + rho*u_1^2/3 + rho/9",
		"rho*u_0^2 + rho*u_1^2",
	}
	for i, w := range want {
		assert.True(t, eq[i].Equal(symbolic.MustParse(w)), "%s: %s", w, eq[i])
	}
	assert.True(t, gaussianMoment(4, u[0], CsSq).Equal(symbolic.MustParse("u_0^4 + 2*u_0^2 + 1/3")))
	_, err = ContinuousMoments([]symbolic.Expr{symbolic.MustParse("z")}, 2, rho, u[:2], 2, CsSq)
	assert.ErrorIs(t, err, moments.ErrBadMoment)
}

func TestCompressibleToIncompressible(t *testing.T) {
	term := symbolic.MustParse("rho + rho*u_0")
	got := CompressibleToIncompressible(term, "rho", []symbolic.Symbol{"u_0", "u_1"})
	assert.True(t, got.Equal(symbolic.MustParse("rho + u_0")), got.String())
	got = CompressibleToIncompressible(symbolic.MustParse("rho*u_0*u_1 + rho/3 - u_1"), "rho", []symbolic.Symbol{"u_0", "u_1"})
	assert.True(t, got.Equal(symbolic.MustParse("u_0*u_1 + rho/3 - u_1")), got.String())
}
