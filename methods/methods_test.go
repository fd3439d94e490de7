package methods

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golbm/conserved"
	"github.com/notargets/golbm/equilibrium"
	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

var allStencils = []string{"D2Q9", "D3Q15", "D3Q19", "D3Q27"}

func testPDFs(t *testing.T, s stencils.Stencil) (f []float64) {
	w, err := equilibrium.Weights(s)
	require.NoError(t, err)
	f = make([]float64, len(s))
	for q := range s {
		wf, _ := w[q].Float64()
		f[q] = wf * (1 + 0.05*math.Sin(float64(q+1)))
	}
	return
}

func pdfInputs(m *MomentBasedMethod, f []float64, params map[symbolic.Symbol]float64) (in map[symbolic.Symbol]float64) {
	in = make(map[symbolic.Symbol]float64)
	for s, v := range params {
		in[s] = v
	}
	for q, s := range m.PreCollisionPDFSymbols() {
		in[s] = f[q]
	}
	return
}

func evalRule(t *testing.T, cr *CollisionRule, f []float64, params map[symbolic.Symbol]float64) (post []float64) {
	vals, err := cr.Evaluate(pdfInputs(cr.Method, f, params))
	require.NoError(t, err)
	for _, d := range cr.Method.PostCollisionPDFSymbols() {
		post = append(post, vals[d])
	}
	return
}

func densityMomentum(s stencils.Stencil, f []float64) (rho float64, mom []float64) {
	mom = make([]float64, s.Dim())
	for q, d := range s {
		rho += f[q]
		for i, c := range d {
			mom[i] += float64(c) * f[q]
		}
	}
	return
}

func TestWeights(t *testing.T) {
	for _, label := range allStencils {
		for _, compressible := range []bool{true, false} {
			s := stencils.MustGet(label)
			opts := DefaultOptions()
			opts.Compressible = compressible
			m, err := CreateSRT(s, symbolic.Sym("omega"), opts)
			require.NoError(t, err, label)
			w, err := m.Weights()
			require.NoError(t, err)
			want, err := equilibrium.Weights(s)
			require.NoError(t, err)
			sum := symbolic.Zero()
			for q := range w {
				assert.True(t, w[q].Equal(symbolic.FromRat(want[q])), "%s %d: %s", label, q, w[q])
				sum = sum.Add(w[q])
			}
			assert.True(t, sum.Equal(symbolic.One()))
		}
	}
}

func TestConservation(t *testing.T) {
	params := map[symbolic.Symbol]float64{"omega": 1.7, "omega_1": 1.3, "omega_2": 1.1, "omega_3": 0.9,
		"omega_4": 1.2, "omega_5": 1.4, "omega_6": 1.6, "omega_7": 1.05, "omega_8": 1.15, "omega_9": 1.25}
	for _, label := range allStencils {
		s := stencils.MustGet(label)
		f := testPDFs(t, s)
		rho, mom := densityMomentum(s, f)
		for _, compressible := range []bool{true, false} {
			opts := DefaultOptions()
			opts.Compressible = compressible
			srt, err := CreateSRT(s, symbolic.Sym("omega"), opts)
			require.NoError(t, err)
			trt, err := CreateTRTWithMagicNumber(s, symbolic.Sym("omega"), symbolic.Zero(), opts)
			require.NoError(t, err)
			mrt, err := CreateOrthogonalMRT(s, nil, opts)
			require.NoError(t, err)
			for _, m := range []*MomentBasedMethod{srt, trt, mrt} {
				cr, err := m.CollisionRule()
				require.NoError(t, err)
				post := evalRule(t, cr, f, params)
				rhoPost, momPost := densityMomentum(s, post)
				assert.InDelta(t, rho, rhoPost, 1e-12, label)
				assert.InDeltaSlice(t, mom, momPost, 1e-12, label)
			}
		}
	}
}

func TestRestStateIsFixedPoint(t *testing.T) {
	for _, label := range allStencils {
		s := stencils.MustGet(label)
		m, err := CreateMRTRaw(s, rampRates(len(s), 1.0), DefaultOptions())
		require.NoError(t, err)
		w, err := m.Weights()
		require.NoError(t, err)
		f := make([]float64, len(w))
		for q := range w {
			f[q], _ = w[q].Float64()
		}
		cr, err := m.CollisionRule()
		require.NoError(t, err)
		assert.InDeltaSlice(t, f, evalRule(t, cr, f, nil), 1e-14, label)
		assert.InDeltaSlice(t, f, evalRule(t, m.Equilibrium(), f, nil), 1e-14, label)
	}
}

func rampRates(n int, start float64) (rates []symbolic.Expr) {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)/10
	}
	return Rates(vals...)
}

func TestSymbolicMatchesNumeric(t *testing.T) {
	params := map[symbolic.Symbol]float64{"omega": 1.6, "F_0": 1e-3, "F_1": -2e-3, "F_2": 5e-4}
	for _, label := range allStencils {
		s := stencils.MustGet(label)
		f := testPDFs(t, s)
		for _, compressible := range []bool{true, false} {
			opts := DefaultOptions()
			opts.Compressible = compressible
			opts.ForceModel = NewGuoForce(ForceSymbols(s.Dim()))
			srt, err := CreateSRT(s, symbolic.Sym("omega"), opts)
			require.NoError(t, err)
			opts.ForceModel = NewLuoForce(ForceSymbols(s.Dim()))
			raw, err := CreateMRTRaw(s, rampRates(len(s), 0.9), opts)
			require.NoError(t, err)
			for _, m := range []*MomentBasedMethod{srt, raw} {
				cr, err := m.CollisionRule()
				require.NoError(t, err)
				op, err := m.NumericOperator()
				require.NoError(t, err)
				post, err := op.Collide(f, params)
				require.NoError(t, err)
				assert.InDeltaSlice(t, evalRule(t, cr, f, params), post, 1e-12, label)
			}
		}
	}
}

func TestShearRelaxationRate(t *testing.T) {
	d2q9, d3q19 := stencils.MustGet("D2Q9"), stencils.MustGet("D3Q19")
	m, err := CreateMRTRaw(d2q9, rampRates(9, 1.0), DefaultOptions())
	require.NoError(t, err)
	rate, err := m.ShearRelaxationRate()
	require.NoError(t, err)
	assert.True(t, rate.Equal(symbolic.Float(1.5)), rate.String())

	m, err = CreateMRTRaw(d3q19, rampRates(19, 1.0), DefaultOptions())
	require.NoError(t, err)
	_, err = m.ShearRelaxationRate()
	assert.ErrorIs(t, err, ErrAmbiguousShearRate)
	assert.ErrorIs(t, err, ErrDerivation)
	assert.Contains(t, err.Error(), "different relaxation")
	var sre *ShearRateError
	require.True(t, errors.As(err, &sre))
	assert.Len(t, sre.Rates, 3)

	for _, label := range allStencils {
		m, err = CreateOrthogonalMRT(stencils.MustGet(label), nil, DefaultOptions())
		require.NoError(t, err)
		rate, err = m.ShearRelaxationRate()
		require.NoError(t, err)
		assert.True(t, rate.Equal(symbolic.Sym("omega")), label)
	}

	ms, err := moments.DefaultSet(d2q9)
	require.NoError(t, err)
	pairs := make([]MomentRate, len(ms))
	for i, mom := range ms {
		if moments.IsShear(mom) {
			mom = mom.Add(symbolic.MustParse("x^2"))
		}
		pairs[i] = MomentRate{Moment: mom, Rate: symbolic.Sym("omega")}
	}
	m, err = CreateWithDiscreteMaxwellianEqMoments(d2q9, pairs, DefaultOptions())
	require.NoError(t, err)
	_, err = m.ShearRelaxationRate()
	assert.ErrorIs(t, err, ErrNoShearMoments)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestConstructionErrors(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	_, err := CreateMRTRaw(s, rampRates(8, 1.0), DefaultOptions())
	assert.ErrorIs(t, err, ErrMomentCount)

	ms, err := moments.DefaultSet(s)
	require.NoError(t, err)
	pairs := make([]MomentRate, len(ms))
	for i, mom := range ms {
		pairs[i] = MomentRate{Moment: mom, Rate: symbolic.One()}
	}
	dup := append([]MomentRate{}, pairs...)
	dup[8] = dup[0]
	_, err = CreateWithDiscreteMaxwellianEqMoments(s, dup, DefaultOptions())
	assert.ErrorIs(t, err, ErrDuplicateMoment)
	assert.ErrorIs(t, err, ErrConfiguration)

	dependent := append([]MomentRate{}, pairs...)
	dependent[8] = MomentRate{Moment: symbolic.MustParse("x^3"), Rate: symbolic.One()}
	_, err = CreateWithDiscreteMaxwellianEqMoments(s, dependent, DefaultOptions())
	assert.ErrorIs(t, err, ErrMomentMatrix)
	assert.ErrorIs(t, err, moments.ErrNotInvertible)

	cq, err := conserved.NewDensityVelocity(s, true, nil)
	require.NoError(t, err)
	entries := make([]RelaxationEntry, len(ms))
	for i, mom := range ms {
		entries[i] = RelaxationEntry{Moment: mom,
			RelaxationInfo: RelaxationInfo{EquilibriumValue: symbolic.MustParse("rho*T"), RelaxationRate: symbolic.One()}}
	}
	_, err = NewMomentBasedMethod(s, entries, cq, nil)
	assert.ErrorIs(t, err, ErrUndefinedSymbols)
	var use *UndefinedSymbolsError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, []symbolic.Symbol{"T"}, use.Symbols)

	_, err = CreateOrthogonalMRT(stencils.Stencil{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoOrthogonalBasis)
}

func TestFirstMomentRelaxationRate(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	m, err := CreateSRT(s, symbolic.Sym("omega"), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, m.SetFirstMomentRelaxationRate(symbolic.Sym("omega_f")))
	for _, e := range m.RelaxationTable() {
		want := symbolic.Sym("omega")
		if moments.Order(e.Moment) == 1 {
			want = symbolic.Sym("omega_f")
		}
		assert.True(t, e.RelaxationRate.Equal(want), e.Moment.String())
	}

	ms, err := moments.DefaultSet(s)
	require.NoError(t, err)
	pairs := make([]MomentRate, len(ms))
	for i, mom := range ms {
		switch mom.String() {
		case "x":
			mom = symbolic.MustParse("x + y")
		case "y":
			mom = symbolic.MustParse("x - y")
		}
		pairs[i] = MomentRate{Moment: mom, Rate: symbolic.Sym("omega")}
	}
	m, err = CreateWithDiscreteMaxwellianEqMoments(s, pairs, DefaultOptions())
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetFirstMomentRelaxationRate(symbolic.One()), ErrFirstMomentsNotRelaxed)
}

func TestRelaxationRateSubstitution(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	srt, err := CreateSRT(s, symbolic.Float(1.8), DefaultOptions())
	require.NoError(t, err)
	cr, err := srt.CollisionRule()
	require.NoError(t, err)
	require.NotEmpty(t, cr.Subexpressions)
	assert.Equal(t, "rr_0 := 9/5", cr.Subexpressions[0].String())
	assert.Equal(t, []symbolic.Symbol{"rr_0"}, cr.Hints.RelaxationRates)
	assert.Equal(t, []symbolic.Symbol{conserved.Density}, cr.Hints.ConservedQuantities[conserved.RoleDensity])

	trt, err := CreateTRT(s, symbolic.Sym("omega_e"), symbolic.Sym("omega_o"), DefaultOptions())
	require.NoError(t, err)
	D, subs := trt.SymbolicRelaxationMatrix()
	assert.Empty(t, subs)
	assert.True(t, D[0].Equal(symbolic.Sym("omega_e")))
	assert.True(t, D[1].Equal(symbolic.Sym("omega_o")))

	trt, err = CreateTRTWithMagicNumber(s, symbolic.Float(1.8), symbolic.Zero(), DefaultOptions())
	require.NoError(t, err)
	subs = trt.RelaxationRateSubstitutions()
	require.Len(t, subs, 2)
	assert.True(t, subs[0].RHS.Equal(symbolic.Float(1.8)))
	odd, err := RelaxationRateFromMagicNumber(symbolic.Float(1.8), DefaultMagicNumber)
	require.NoError(t, err)
	assert.True(t, subs[1].RHS.Equal(odd))

	raw, err := CreateMRTRaw(s, rampRates(9, 1.0), DefaultOptions())
	require.NoError(t, err)
	cr, err = raw.CollisionRule()
	require.NoError(t, err)
	assert.Empty(t, cr.Hints.RelaxationRates)
	assert.Len(t, cr.Subexpressions, len(srt.ConservedQuantityComputation().
		EquilibriumInputEquationsFromPDFs(srt.PreCollisionPDFSymbols()).BoundSymbols()))
}

func TestRateConversions(t *testing.T) {
	omega := symbolic.Sym("omega")
	odd, err := RelaxationRateFromMagicNumber(omega, DefaultMagicNumber)
	require.NoError(t, err)
	assert.True(t, MagicNumber(omega, odd).Equal(symbolic.Rational(3, 16)), MagicNumber(omega, odd).String())
	odd, err = RelaxationRateFromMagicNumber(symbolic.One(), DefaultMagicNumber)
	require.NoError(t, err)
	assert.True(t, odd.Equal(symbolic.Rational(8, 7)))

	// 4*(3/16)*8 + 2 - 8 vanishes
	_, err = RelaxationRateFromMagicNumber(symbolic.Int(8), DefaultMagicNumber)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = CreateTRTWithMagicNumber(stencils.MustGet("D2Q9"), symbolic.Int(8), symbolic.Zero(), DefaultOptions())
	assert.ErrorIs(t, err, ErrConfiguration)

	nu := symbolic.Sym("nu")
	assert.True(t, LatticeViscosityFromRelaxationRate(RelaxationRateFromLatticeViscosity(nu)).Equal(nu))
	assert.True(t, RelaxationRateFromLatticeViscosity(symbolic.Rational(1, 6)).Equal(symbolic.One()))
}

func TestOrthogonalBases(t *testing.T) {
	for _, label := range allStencils {
		s := stencils.MustGet(label)
		groups, err := OrthogonalMomentGroups(s)
		require.NoError(t, err)
		var ms []symbolic.Expr
		for _, g := range groups {
			ms = append(ms, g...)
		}
		require.Len(t, ms, len(s), label)
		for i := range ms {
			for j := 0; j < i; j++ {
				ip, err := moments.InnerProduct(ms[i], ms[j], s, nil)
				require.NoError(t, err)
				assert.Zero(t, ip.Sign(), "%s: <%s, %s>", label, ms[i], ms[j])
			}
			for _, term := range ms[i].Monomials() {
				assert.True(t, term.Coeff.IsInt(), "%s: %s", label, ms[i])
			}
		}
	}
	assert.True(t, integerCoefficients(symbolic.MustParse("x^2 - 2/3")).Equal(symbolic.MustParse("3*x^2 - 2")))
	assert.True(t, integerCoefficients(symbolic.MustParse("x*y/2 + y/3")).Equal(symbolic.MustParse("3*x*y + 2*y")))
}

func TestDefaultRateGetter(t *testing.T) {
	m, err := CreateOrthogonalMRT(stencils.MustGet("D3Q19"), nil, DefaultOptions())
	require.NoError(t, err)
	var got []string
	seen := make(map[string]bool)
	for _, r := range m.RelaxationRates() {
		if !seen[r.String()] {
			seen[r.String()] = true
			got = append(got, r.String())
		}
	}
	assert.Equal(t, []string{"0", "omega_1", "omega_2", "omega_3", "omega", "omega_4", "omega_5"}, got)

	custom := RateGetterFunc(func(group []symbolic.Expr) symbolic.Expr {
		return symbolic.Int(int64(len(group)))
	})
	m, err = CreateOrthogonalMRT(stencils.MustGet("D2Q9"), custom, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, m.RelaxationRates()[0].Equal(symbolic.One()))
	assert.True(t, m.RelaxationRates()[1].Equal(symbolic.Int(2)))
}

func TestContinuousMatchesDiscreteD2Q9(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	for _, compressible := range []bool{true, false} {
		opts := DefaultOptions()
		opts.Compressible = compressible
		ms, err := moments.DefaultSet(s)
		require.NoError(t, err)
		pairs := make([]MomentRate, len(ms))
		for i, mom := range ms {
			pairs[i] = MomentRate{Moment: mom, Rate: symbolic.Sym("omega")}
		}
		discrete, err := CreateWithDiscreteMaxwellianEqMoments(s, pairs, opts)
		require.NoError(t, err)
		continuous, err := CreateWithContinuousMaxwellianEqMoments(s, pairs, opts)
		require.NoError(t, err)
		de, ce := discrete.MomentEquilibriumValues(), continuous.MomentEquilibriumValues()
		for i := range de {
			assert.True(t, de[i].Equal(ce[i]), "%s: %s != %s", ms[i], de[i], ce[i])
		}
	}
}

func TestForceModels(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	params := map[symbolic.Symbol]float64{"omega": 1.5, "F_0": 0.01, "F_1": -0.02}
	f := testPDFs(t, s)
	rho, mom := densityMomentum(s, f)
	for _, name := range []string{"simple", "luo", "guo"} {
		fm, err := NewForceModel(name, ForceSymbols(2))
		require.NoError(t, err)
		opts := DefaultOptions()
		opts.ForceModel = fm
		m, err := CreateSRT(s, symbolic.Sym("omega"), opts)
		require.NoError(t, err)
		cr, err := m.CollisionRule()
		require.NoError(t, err)
		rhoPost, momPost := densityMomentum(s, evalRule(t, cr, f, params))
		assert.InDelta(t, rho, rhoPost, 1e-12, name)
		// guo relaxes the shifted velocity, which restores the full force
		assert.InDelta(t, mom[0]+params["F_0"], momPost[0], 1e-12, name)
		assert.InDelta(t, mom[1]+params["F_1"], momPost[1], 1e-12, name)
	}
	_, err := NewForceModel("bogus", nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	// a custom conserved computation cannot carry the guo velocity shift
	dv, err := conserved.NewDensityVelocity(s, false, nil)
	require.NoError(t, err)
	guo, err := NewForceModel("guo", ForceSymbols(2))
	require.NoError(t, err)
	custom := DefaultOptions()
	custom.ForceModel = guo
	custom.Conserved = dv
	_, err = CreateSRT(s, symbolic.Sym("omega"), custom)
	assert.ErrorIs(t, err, ErrConfiguration)
	custom.ForceModel = NewLuoForce(ForceSymbols(2))
	m, err := CreateSRT(s, symbolic.Sym("omega"), custom)
	require.NoError(t, err)
	cr, err := m.CollisionRule()
	require.NoError(t, err)
	_, momPost := densityMomentum(s, evalRule(t, cr, f, params))
	assert.InDelta(t, mom[0]+params["F_0"], momPost[0], 1e-12)

	opts := DefaultOptions()
	opts.ForceModel = NewSimpleForce(ForceSymbols(3))
	m, err = CreateSRT(s, symbolic.Sym("omega"), opts)
	require.NoError(t, err)
	_, err = m.CollisionRule()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestStringTable(t *testing.T) {
	m, err := CreateSRT(stencils.MustGet("D2Q9"), symbolic.Sym("omega"), DefaultOptions())
	require.NoError(t, err)
	str := m.String()
	assert.Contains(t, str, "Moment")
	assert.Contains(t, str, "Relaxation Rate")
	assert.Contains(t, str, "omega")
	fmt.Print(str)
}
