package conserved

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

func pdfSymbols(n int) (syms []symbolic.Symbol) {
	for q := 0; q < n; q++ {
		syms = append(syms, symbolic.Symbol(fmt.Sprintf("f_%d", q)))
	}
	return
}

func TestDensityVelocityEvaluation(t *testing.T) {
	for _, label := range []string{"D2Q9", "D3Q15", "D3Q19", "D3Q27"} {
		s := stencils.MustGet(label)
		pdfs := pdfSymbols(len(s))
		inputs := make(map[symbolic.Symbol]float64)
		var (
			rho float64
			mom = make([]float64, s.Dim())
		)
		for q, f := range pdfs {
			val := 0.1 + 0.01*float64(q)
			inputs[f] = val
			rho += val
			for i := range mom {
				mom[i] += float64(s[q][i]) * val
			}
		}
		for _, compressible := range []bool{true, false} {
			dv, err := NewDensityVelocity(s, compressible, nil)
			require.NoError(t, err)
			ac := dv.EquilibriumInputEquationsFromPDFs(pdfs)
			for _, f := range ac.FreeSymbols() {
				assert.Contains(t, pdfs, f)
			}
			vals, err := ac.Evaluate(inputs)
			require.NoError(t, err)
			assert.InDelta(t, rho, vals[Density], 1e-12, label)
			for i, u := range Velocity[:s.Dim()] {
				want := mom[i]
				if compressible {
					want /= rho
				}
				assert.InDelta(t, want, vals[u], 1e-12, "%s %s", label, u)
			}
			if !compressible {
				assert.InDelta(t, rho-1, vals[DeltaRho], 1e-12)
			}
		}
	}
}

func TestDefinedSymbols(t *testing.T) {
	dv, err := NewDensityVelocity(stencils.MustGet("D3Q19"), true, nil)
	require.NoError(t, err)
	assert.Equal(t, []symbolic.Symbol{"rho", "u_0", "u_1", "u_2"}, dv.DefinedSymbols())
	assert.Equal(t, []symbolic.Symbol{"rho"}, dv.DefinedSymbolsOfOrder(0))
	assert.Equal(t, []symbolic.Symbol{"u_0", "u_1", "u_2"}, dv.DefinedSymbolsOfOrder(1))
	assert.Nil(t, dv.DefinedSymbolsOfOrder(2))
	defaults := dv.DefaultValues()
	assert.True(t, defaults[Density].Equal(symbolic.One()))
	assert.True(t, defaults["u_2"].IsZero())
	assert.Equal(t, []symbolic.Symbol{"u_0", "u_1", "u_2"}, dv.Roles()[RoleVelocity])
	assert.True(t, dv.Compressible())
}

func TestVelocityShiftAndCache(t *testing.T) {
	s := stencils.MustGet("D2Q9")
	shift := []symbolic.Expr{symbolic.MustParse("F_0/2"), symbolic.MustParse("F_1/2")}
	dv, err := NewDensityVelocity(s, false, shift)
	require.NoError(t, err)
	pdfs := pdfSymbols(9)
	ac := dv.EquilibriumInputEquationsFromPDFs(pdfs)
	flat := ac.InsertSubexpressions().MainAssignmentMap()
	assert.True(t, flat["u_0"].Equal(symbolic.MustParse("f_4 + f_6 + f_8 - f_3 - f_5 - f_7 + F_0/2")))
	ac.MainAssignments[0].RHS = symbolic.Zero()
	again := dv.EquilibriumInputEquationsFromPDFs(pdfs)
	assert.False(t, again.MainAssignments[0].RHS.IsZero())
	assert.Len(t, dv.cache, 1)
	_, err = NewDensityVelocity(s, false, shift[:1])
	assert.Error(t, err)
	_, err = NewDensityVelocity(stencils.Stencil{{0, 0}, {1}}, false, nil)
	assert.Error(t, err)
}
