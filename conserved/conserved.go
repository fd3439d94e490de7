package conserved

import (
	"fmt"
	"strings"
	"sync"

	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

const (
	Density  symbolic.Symbol = "rho"
	DeltaRho symbolic.Symbol = "delta_rho"
)

// Conserved quantity roles reported in simplification hints
const (
	RoleDensity  = "density"
	RoleVelocity = "velocity"
)

var Velocity = []symbolic.Symbol{"u_0", "u_1", "u_2"}

// Computation defines the macroscopic quantities collisions must preserve.
type Computation interface {
	Compressible() bool
	DefinedSymbols() []symbolic.Symbol
	// DefinedSymbolsOfOrder returns the symbols defined by moments of the
	// given order: density for 0, velocity components for 1.
	DefinedSymbolsOfOrder(order int) []symbolic.Symbol
	DefaultValues() map[symbolic.Symbol]symbolic.Expr
	Roles() map[string][]symbolic.Symbol
	EquilibriumInputEquationsFromPDFs(pdfs []symbolic.Symbol) symbolic.AssignmentCollection
}

// DensityVelocity computes density and velocity as the zeroth and first
// discrete moments of the distribution.
type DensityVelocity struct {
	stencil      stencils.Stencil
	compressible bool
	velocity     []symbolic.Symbol
	shift        []symbolic.Expr

	mu    sync.Mutex
	cache map[string]symbolic.AssignmentCollection
}

// NewDensityVelocity takes an optional velocity shift, one term per
// dimension, added to the computed velocity (divided by density when compressible).
func NewDensityVelocity(s stencils.Stencil, compressible bool, shift []symbolic.Expr) (dv *DensityVelocity, err error) {
	if !stencils.IsValid(s, 0) || s.Dim() < 1 || s.Dim() > len(Velocity) {
		err = fmt.Errorf("conserved: invalid stencil %s", s)
		return
	}
	if shift != nil && len(shift) != s.Dim() {
		err = fmt.Errorf("conserved: velocity shift has %d components for dimension %d", len(shift), s.Dim())
		return
	}
	dv = &DensityVelocity{
		stencil:      s,
		compressible: compressible,
		velocity:     Velocity[:s.Dim()],
		shift:        shift,
		cache:        make(map[string]symbolic.AssignmentCollection),
	}
	return
}

func (dv *DensityVelocity) Compressible() bool { return dv.compressible }

func (dv *DensityVelocity) DefinedSymbols() []symbolic.Symbol {
	return append([]symbolic.Symbol{Density}, dv.velocity...)
}

func (dv *DensityVelocity) DefinedSymbolsOfOrder(order int) []symbolic.Symbol {
	switch order {
	case 0:
		return []symbolic.Symbol{Density}
	case 1:
		return append([]symbolic.Symbol{}, dv.velocity...)
	}
	return nil
}

func (dv *DensityVelocity) DefaultValues() (values map[symbolic.Symbol]symbolic.Expr) {
	values = map[symbolic.Symbol]symbolic.Expr{Density: symbolic.One()}
	for _, u := range dv.velocity {
		values[u] = symbolic.Zero()
	}
	return
}

func (dv *DensityVelocity) Roles() map[string][]symbolic.Symbol {
	return map[string][]symbolic.Symbol{
		RoleDensity:  {Density},
		RoleVelocity: append([]symbolic.Symbol{}, dv.velocity...),
	}
}

func VelocityTermSymbol(i int) symbolic.Symbol { return symbolic.Symbol(fmt.Sprintf("vel%dTerm", i)) }

// EquilibriumInputEquationsFromPDFs is memoized per pdf symbol list.
func (dv *DensityVelocity) EquilibriumInputEquationsFromPDFs(pdfs []symbolic.Symbol) symbolic.AssignmentCollection {
	key := joinSymbols(pdfs)
	dv.mu.Lock()
	defer dv.mu.Unlock()
	ac, ok := dv.cache[key]
	if !ok {
		ac = dv.derive(pdfs)
		dv.cache[key] = ac
	}
	return symbolic.AssignmentCollection{
		MainAssignments: append([]symbolic.Assignment{}, ac.MainAssignments...),
		Subexpressions:  append([]symbolic.Assignment{}, ac.Subexpressions...),
	}
}

func (dv *DensityVelocity) derive(pdfs []symbolic.Symbol) (ac symbolic.AssignmentCollection) {
	var (
		dim       = dv.stencil.Dim()
		used      = make([]bool, len(dv.stencil))
		velTerm   = make([][]int, dim)
		density   symbolic.Expr
		momentums = make([]symbolic.Expr, dim)
	)
	if len(pdfs) != len(dv.stencil) {
		panic(fmt.Errorf("conserved: %d pdf symbols for %d directions", len(pdfs), len(dv.stencil)))
	}
	// Each unit positive direction is summed once, in the first velocity term it belongs to
	for i := 0; i < dim; i++ {
		var sum symbolic.Expr
		for q, d := range dv.stencil {
			if d[i] == 1 && !used[q] {
				used[q] = true
				velTerm[i] = append(velTerm[i], q)
				sum = sum.Add(pdfs[q].Expr())
			}
		}
		ac.Subexpressions = append(ac.Subexpressions, symbolic.Assignment{LHS: VelocityTermSymbol(i), RHS: sum})
		density = density.Add(VelocityTermSymbol(i).Expr())
	}
	for q := range dv.stencil {
		if !used[q] {
			density = density.Add(pdfs[q].Expr())
		}
	}
	for i := 0; i < dim; i++ {
		inTerm := make(map[int]bool, len(velTerm[i]))
		for _, q := range velTerm[i] {
			inTerm[q] = true
		}
		mom := VelocityTermSymbol(i).Expr()
		for q, d := range dv.stencil {
			if d[i] != 0 && !inTerm[q] {
				mom = mom.Add(symbolic.Int(int64(d[i])).Mul(pdfs[q].Expr()))
			}
		}
		momentums[i] = mom
	}
	if dv.compressible {
		ac.MainAssignments = append(ac.MainAssignments, symbolic.Assignment{LHS: Density, RHS: density})
	} else {
		ac.Subexpressions = append(ac.Subexpressions,
			symbolic.Assignment{LHS: DeltaRho, RHS: density.Sub(symbolic.One())})
		ac.MainAssignments = append(ac.MainAssignments,
			symbolic.Assignment{LHS: Density, RHS: symbolic.One().Add(DeltaRho.Expr())})
	}
	for i, u := range dv.velocity {
		rhs := momentums[i]
		if dv.shift != nil {
			rhs = rhs.Add(dv.shift[i])
		}
		if dv.compressible {
			rhs = rhs.Div(Density.Expr())
		}
		ac.MainAssignments = append(ac.MainAssignments, symbolic.Assignment{LHS: u, RHS: rhs})
	}
	return
}

func joinSymbols(syms []symbolic.Symbol) string {
	strs := make([]string, len(syms))
	for i, s := range syms {
		strs[i] = string(s)
	}
	return strings.Join(strs, ",")
}
