package methods

import (
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/notargets/golbm/conserved"
	"github.com/notargets/golbm/moments"
	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
	"github.com/notargets/golbm/utils"
)

// MomentBasedMethod relaxes each moment of the distribution towards its
// equilibrium value with its own rate:
//
//	f_post = f + Minv D (m_eq - M f)
type MomentBasedMethod struct {
	stencil    stencils.Stencil
	moments    []symbolic.Expr
	table      *RelaxationTable
	conserved  conserved.Computation
	forceModel ForceModel
	M, Minv    *symbolic.RatMatrix

	mu          sync.RWMutex // guards relaxation rates in table
	weightsOnce sync.Once
	weights     []symbolic.Expr
	weightsErr  error
}

// NewMomentBasedMethod takes one entry per lattice direction. Equilibrium
// values may only use symbols defined by the conserved quantity computation.
// forceModel may be nil.
func NewMomentBasedMethod(s stencils.Stencil, entries []RelaxationEntry, cq conserved.Computation,
	forceModel ForceModel) (m *MomentBasedMethod, err error) {
	if len(entries) != len(s) {
		err = fmt.Errorf("%w: %d moments for %d directions", ErrMomentCount, len(entries), len(s))
		return
	}
	if cq == nil {
		err = fmt.Errorf("%w: missing conserved quantity computation", ErrConfiguration)
		return
	}
	m = &MomentBasedMethod{
		stencil:    append(stencils.Stencil{}, s...),
		conserved:  cq,
		forceModel: forceModel,
	}
	if m.table, err = NewRelaxationTable(entries); err != nil {
		return nil, err
	}
	if err = checkClosure(entries, cq.DefinedSymbols()); err != nil {
		return nil, err
	}
	m.moments = make([]symbolic.Expr, len(entries))
	for i, e := range entries {
		m.moments[i] = e.Moment
	}
	if m.M, m.Minv, err = moments.InvertibleMatrix(m.moments, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMomentMatrix, err)
	}
	slog.Debug("moment based method", "stencil", stencils.Identify(s).String(), "Q", len(s),
		"compressible", cq.Compressible())
	return
}

func checkClosure(entries []RelaxationEntry, defined []symbolic.Symbol) error {
	var (
		allowed   = make(map[symbolic.Symbol]bool, len(defined))
		undefined = make(map[symbolic.Symbol]bool)
	)
	for _, s := range defined {
		allowed[s] = true
	}
	for _, e := range entries {
		for _, s := range e.EquilibriumValue.FreeSymbols() {
			if !allowed[s] {
				undefined[s] = true
			}
		}
	}
	if len(undefined) == 0 {
		return nil
	}
	syms := make([]symbolic.Symbol, 0, len(undefined))
	for s := range undefined {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return &UndefinedSymbolsError{Symbols: syms}
}

func (m *MomentBasedMethod) Stencil() stencils.Stencil { return append(stencils.Stencil{}, m.stencil...) }

func (m *MomentBasedMethod) Dim() int { return m.stencil.Dim() }

func (m *MomentBasedMethod) Moments() []symbolic.Expr { return append([]symbolic.Expr{}, m.moments...) }

func (m *MomentBasedMethod) MomentEquilibriumValues() (eq []symbolic.Expr) {
	for _, e := range m.table.entries {
		eq = append(eq, e.EquilibriumValue)
	}
	return
}

// RelaxationRates returns the diagonal of the relaxation matrix in moment order.
func (m *MomentBasedMethod) RelaxationRates() (rates []symbolic.Expr) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.table.entries {
		rates = append(rates, e.RelaxationRate)
	}
	return
}

func (m *MomentBasedMethod) RelaxationTable() []RelaxationEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.Entries()
}

func (m *MomentBasedMethod) ConservedQuantityComputation() conserved.Computation { return m.conserved }

func (m *MomentBasedMethod) ForceModel() ForceModel { return m.forceModel }

func (m *MomentBasedMethod) MomentMatrix() *symbolic.RatMatrix { return m.M.Copy() }

func (m *MomentBasedMethod) ZerothOrderEquilibriumMomentSymbol() symbolic.Symbol {
	return m.conserved.DefinedSymbolsOfOrder(0)[0]
}

func (m *MomentBasedMethod) FirstOrderEquilibriumMomentSymbols() []symbolic.Symbol {
	return m.conserved.DefinedSymbolsOfOrder(1)
}

func pdfSymbols(prefix string, n int) (syms []symbolic.Symbol) {
	syms = make([]symbolic.Symbol, n)
	for q := range syms {
		syms[q] = symbolic.Symbol(fmt.Sprintf("%s_%d", prefix, q))
	}
	return
}

func (m *MomentBasedMethod) PreCollisionPDFSymbols() []symbolic.Symbol {
	return pdfSymbols("f", len(m.stencil))
}

func (m *MomentBasedMethod) PostCollisionPDFSymbols() []symbolic.Symbol {
	return pdfSymbols("d", len(m.stencil))
}

// Weights are the equilibrium PDFs at rest with unit density, derived once.
func (m *MomentBasedMethod) Weights() ([]symbolic.Expr, error) {
	m.weightsOnce.Do(func() {
		m.weights, m.weightsErr = m.computeWeights()
	})
	if m.weightsErr != nil {
		return nil, m.weightsErr
	}
	return append([]symbolic.Expr{}, m.weights...), nil
}

func (m *MomentBasedMethod) computeWeights() (w []symbolic.Expr, err error) {
	identity := make([]symbolic.Expr, len(m.stencil))
	for i := range identity {
		identity[i] = symbolic.One()
	}
	defaults := m.conserved.DefaultValues()
	post := m.relax(identity)
	w = make([]symbolic.Expr, len(post))
	for k, rhs := range post {
		w[k] = rhs.Subs(defaults)
		if !w[k].IsConstant() {
			return nil, fmt.Errorf("%w: weight %d depends on %s", ErrWeights, k, joinSymbols(w[k].FreeSymbols()))
		}
	}
	return
}

// relax builds f + Minv D (m_eq - M f) for the diagonal D, one row per goroutine bucket.
func (m *MomentBasedMethod) relax(D []symbolic.Expr) (post []symbolic.Expr) {
	var (
		nq   = len(m.stencil)
		f    = make([]symbolic.Expr, nq)
		diff = make([]symbolic.Expr, nq)
	)
	for q, s := range m.PreCollisionPDFSymbols() {
		f[q] = s.Expr()
	}
	mf := m.M.MulExprVec(f)
	for i, e := range m.table.entries {
		diff[i] = D[i].Mul(e.EquilibriumValue.Sub(mf[i]))
	}
	post = make([]symbolic.Expr, nq)
	pm := utils.NewPartitionMap(min(runtime.NumCPU(), nq), nq)
	pm.Run(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			post[k] = f[k].Add(m.Minv.RowDot(k, diff))
		}
	})
	return
}

// SymbolicRelaxationMatrix returns the relaxation matrix diagonal. With at
// most two distinct rates every non symbol rate is replaced by a fresh symbol
// rr_0, rr_1 whose definitions are returned as substitutions.
func (m *MomentBasedMethod) SymbolicRelaxationMatrix() (D []symbolic.Expr, subs []symbolic.Assignment) {
	var (
		rates   = m.RelaxationRates()
		unique  []symbolic.Expr
		seen    = make(map[string]bool)
		replace = make(map[string]symbolic.Expr)
	)
	for _, r := range rates {
		if key := r.String(); !seen[key] {
			seen[key] = true
			unique = append(unique, r)
		}
	}
	if len(unique) > 2 {
		return rates, nil
	}
	for _, r := range unique {
		if _, isSym := r.AsSymbol(); isSym {
			continue
		}
		sym := symbolic.Symbol(fmt.Sprintf("rr_%d", len(subs)))
		subs = append(subs, symbolic.Assignment{LHS: sym, RHS: r})
		replace[r.String()] = sym.Expr()
	}
	D = make([]symbolic.Expr, len(rates))
	for i, r := range rates {
		if s, ok := replace[r.String()]; ok {
			D[i] = s
		} else {
			D[i] = r
		}
	}
	return
}

// RelaxationRateSubstitutions returns the definitions of the symbols
// introduced by SymbolicRelaxationMatrix.
func (m *MomentBasedMethod) RelaxationRateSubstitutions() []symbolic.Assignment {
	_, subs := m.SymbolicRelaxationMatrix()
	return subs
}

// ShearRelaxationRate is the common rate of all shear moments.
func (m *MomentBasedMethod) ShearRelaxationRate() (rate symbolic.Expr, err error) {
	var (
		rates []symbolic.Expr
		seen  = make(map[string]bool)
	)
	for _, e := range m.RelaxationTable() {
		if !moments.IsShear(e.Moment) {
			continue
		}
		if key := e.RelaxationRate.String(); !seen[key] {
			seen[key] = true
			rates = append(rates, e.RelaxationRate)
		}
	}
	switch len(rates) {
	case 0:
		err = ErrNoShearMoments
	case 1:
		rate = rates[0]
	default:
		err = &ShearRateError{Rates: rates}
	}
	return
}

// SetFirstMomentRelaxationRate relaxes the moments x, y, z with the given
// rate. The method must contain them as plain moments.
func (m *MomentBasedMethod) SetFirstMomentRelaxationRate(rate symbolic.Expr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	first := moments.Symbols[:m.Dim()]
	for _, s := range first {
		if _, ok := m.table.Get(s.Expr()); !ok {
			return ErrFirstMomentsNotRelaxed
		}
	}
	for _, s := range first {
		m.table.setRate(s.Expr(), rate)
	}
	return nil
}

func (m *MomentBasedMethod) String() string {
	var (
		entries = m.RelaxationTable()
		rows    = make([][3]string, 0, len(entries)+1)
		width   [3]int
		b       strings.Builder
	)
	rows = append(rows, [3]string{"Moment", "Eq. Value", "Relaxation Rate"})
	for _, e := range entries {
		rows = append(rows, [3]string{e.Moment.String(), e.EquilibriumValue.String(), e.RelaxationRate.String()})
	}
	for _, row := range rows {
		for c, cell := range row {
			width[c] = max(width[c], len(cell))
		}
	}
	for i, row := range rows {
		fmt.Fprintf(&b, "%-*s | %-*s | %s\n", width[0], row[0], width[1], row[1], row[2])
		if i == 0 {
			fmt.Fprintf(&b, "%s-+-%s-+-%s\n", strings.Repeat("-", width[0]), strings.Repeat("-", width[1]),
				strings.Repeat("-", width[2]))
		}
	}
	return b.String()
}
