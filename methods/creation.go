package methods

import (
	"fmt"

	"github.com/notargets/golbm/conserved"
	"github.com/notargets/golbm/equilibrium"
	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

type Options struct {
	Compressible bool
	// EquilibriumOrder is the velocity truncation order, values below 1 select 2
	EquilibriumOrder int
	// CsSq defaults to 1/3 when zero
	CsSq symbolic.Expr
	// Continuous takes equilibrium moments from the continuous Maxwellian
	Continuous bool
	ForceModel ForceModel
	// Conserved overrides the density and velocity computation
	Conserved conserved.Computation
}

func DefaultOptions() Options {
	return Options{EquilibriumOrder: 2, CsSq: equilibrium.CsSq}
}

func (o Options) order() int {
	if o.EquilibriumOrder < 1 {
		return 2
	}
	return o.EquilibriumOrder
}

func (o Options) csSq() symbolic.Expr {
	if o.CsSq.IsZero() {
		return equilibrium.CsSq
	}
	return o.CsSq
}

func (o Options) conservedComputation(s stencils.Stencil) (cq conserved.Computation, err error) {
	var shift []symbolic.Expr
	if o.ForceModel != nil {
		shift = o.ForceModel.EquilibriumVelocityShift()
	}
	if o.Conserved != nil {
		if shift != nil {
			err = fmt.Errorf("%w: force model %s shifts the equilibrium velocity, which a custom conserved quantity computation cannot take",
				ErrConfiguration, o.ForceModel.Name())
			return
		}
		return o.Conserved, nil
	}
	return conserved.NewDensityVelocity(s, o.Compressible, shift)
}

// CreateWithDiscreteMaxwellianEqMoments takes the equilibrium moments from the
// discrete Maxwellian. Pair order fixes the moment matrix row order.
func CreateWithDiscreteMaxwellianEqMoments(s stencils.Stencil, pairs []MomentRate, opts Options) (*MomentBasedMethod, error) {
	return create(s, pairs, opts, false)
}

// CreateWithContinuousMaxwellianEqMoments integrates the moments against the
// continuous Maxwellian. Incompressible methods divide the velocity dependent
// terms by density.
func CreateWithContinuousMaxwellianEqMoments(s stencils.Stencil, pairs []MomentRate, opts Options) (*MomentBasedMethod, error) {
	return create(s, pairs, opts, true)
}

func create(s stencils.Stencil, pairs []MomentRate, opts Options, continuous bool) (m *MomentBasedMethod, err error) {
	var (
		cq  conserved.Computation
		eq  []symbolic.Expr
		ms  = make([]symbolic.Expr, len(pairs))
		rho symbolic.Symbol
		u   []symbolic.Symbol
	)
	if len(pairs) != len(s) {
		err = fmt.Errorf("%w: %d moments for %d directions", ErrMomentCount, len(pairs), len(s))
		return
	}
	for i, p := range pairs {
		ms[i] = p.Moment
	}
	if err = checkUniqueMoments(ms); err != nil {
		return
	}
	if cq, err = opts.conservedComputation(s); err != nil {
		return
	}
	rho = cq.DefinedSymbolsOfOrder(0)[0]
	u = cq.DefinedSymbolsOfOrder(1)
	uExpr := make([]symbolic.Expr, len(u))
	for i, ui := range u {
		uExpr[i] = ui.Expr()
	}
	if continuous {
		if eq, err = equilibrium.ContinuousMoments(ms, s.Dim(), rho.Expr(), uExpr, opts.order(), opts.csSq()); err != nil {
			return
		}
		if !cq.Compressible() {
			for i := range eq {
				eq[i] = equilibrium.CompressibleToIncompressible(eq[i], rho, u)
			}
		}
	} else {
		eq, err = equilibrium.DiscreteMoments(ms, s, rho.Expr(), uExpr, opts.order(), opts.csSq(), cq.Compressible())
		if err != nil {
			return
		}
	}
	entries := make([]RelaxationEntry, len(pairs))
	for i, p := range pairs {
		entries[i] = RelaxationEntry{
			Moment:         p.Moment,
			RelaxationInfo: RelaxationInfo{EquilibriumValue: eq[i], RelaxationRate: p.Rate},
		}
	}
	return NewMomentBasedMethod(s, entries, cq, opts.ForceModel)
}

func createFromRates(s stencils.Stencil, ms, rates []symbolic.Expr, opts Options) (*MomentBasedMethod, error) {
	if len(rates) != len(ms) {
		return nil, fmt.Errorf("%w: %d relaxation rates for %d moments", ErrMomentCount, len(rates), len(ms))
	}
	pairs := make([]MomentRate, len(ms))
	for i := range ms {
		pairs[i] = MomentRate{Moment: ms[i], Rate: rates[i]}
	}
	return create(s, pairs, opts, opts.Continuous)
}

// CreateSRT relaxes every moment of the default set with the same rate.
func CreateSRT(s stencils.Stencil, rate symbolic.Expr, opts Options) (m *MomentBasedMethod, err error) {
	var ms []symbolic.Expr
	if ms, err = moments.DefaultSet(s); err != nil {
		return
	}
	rates := make([]symbolic.Expr, len(ms))
	for i := range rates {
		rates[i] = rate
	}
	return createFromRates(s, ms, rates, opts)
}

// CreateTRT relaxes even and odd moments with separate rates.
func CreateTRT(s stencils.Stencil, even, odd symbolic.Expr, opts Options) (m *MomentBasedMethod, err error) {
	var ms []symbolic.Expr
	if ms, err = moments.DefaultSet(s); err != nil {
		return
	}
	rates := make([]symbolic.Expr, len(ms))
	for i, mom := range ms {
		if moments.IsEven(mom) {
			rates[i] = even
		} else {
			rates[i] = odd
		}
	}
	return createFromRates(s, ms, rates, opts)
}

// CreateTRTWithMagicNumber derives the odd rate from the even one. A zero
// magic number selects DefaultMagicNumber.
func CreateTRTWithMagicNumber(s stencils.Stencil, rate, magic symbolic.Expr, opts Options) (m *MomentBasedMethod, err error) {
	var odd symbolic.Expr
	if magic.IsZero() {
		magic = DefaultMagicNumber
	}
	if odd, err = RelaxationRateFromMagicNumber(rate, magic); err != nil {
		return
	}
	return CreateTRT(s, rate, odd, opts)
}

// CreateMRTRaw assigns the rates to the default moment set in its sorted order.
func CreateMRTRaw(s stencils.Stencil, rates []symbolic.Expr, opts Options) (m *MomentBasedMethod, err error) {
	var ms []symbolic.Expr
	if ms, err = moments.DefaultSet(s); err != nil {
		return
	}
	return createFromRates(s, ms, rates, opts)
}

// CreateOrthogonalMRT uses the orthogonal basis of the stencil, asking the
// getter for one rate per moment group. A nil getter selects
// NewDefaultRateGetter with the symbol omega.
func CreateOrthogonalMRT(s stencils.Stencil, getter RateGetter, opts Options) (m *MomentBasedMethod, err error) {
	var (
		groups    [][]symbolic.Expr
		ms, rates []symbolic.Expr
	)
	if groups, err = OrthogonalMomentGroups(s); err != nil {
		return
	}
	if getter == nil {
		getter = NewDefaultRateGetter(symbolic.Sym("omega"))
	}
	for _, group := range groups {
		rate := getter.RelaxationRate(group)
		for _, mom := range group {
			ms = append(ms, mom)
			rates = append(rates, rate)
		}
	}
	return createFromRates(s, ms, rates, opts)
}
