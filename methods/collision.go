package methods

import (
	"fmt"
	"sort"

	"github.com/notargets/golbm/symbolic"
)

type SimplificationHints struct {
	// RelaxationRates are the symbols appearing in the relaxation matrix
	RelaxationRates []symbolic.Symbol
	// ConservedQuantities maps roles (density, velocity) to their symbols
	ConservedQuantities map[string][]symbolic.Symbol
	Compressible        bool
}

// CollisionRule maps pre collision PDFs f_i to post collision PDFs d_i.
// Subexpressions hold the relaxation rate substitutions followed by the
// conserved quantity equations.
type CollisionRule struct {
	symbolic.AssignmentCollection
	Method *MomentBasedMethod
	Hints  SimplificationHints
}

// Equilibrium is the collision rule with the identity relaxation matrix,
// assigning the equilibrium PDFs. An optional assignment collection replaces
// the conserved quantity equations.
func (m *MomentBasedMethod) Equilibrium(cqEquations ...symbolic.AssignmentCollection) *CollisionRule {
	D := make([]symbolic.Expr, len(m.stencil))
	for i := range D {
		D[i] = symbolic.One()
	}
	return m.collisionRuleWithRelaxationMatrix(D, nil, cqEquations...)
}

// CollisionRule is the full update including force model terms.
func (m *MomentBasedMethod) CollisionRule(cqEquations ...symbolic.AssignmentCollection) (cr *CollisionRule, err error) {
	D, subs := m.SymbolicRelaxationMatrix()
	cr = m.collisionRuleWithRelaxationMatrix(D, subs, cqEquations...)
	if m.forceModel == nil {
		return
	}
	var terms []symbolic.Expr
	if terms, err = m.forceModel.Terms(m); err != nil {
		return nil, fmt.Errorf("force model %s: %w", m.forceModel.Name(), err)
	}
	for q := range cr.MainAssignments {
		cr.MainAssignments[q].RHS = cr.MainAssignments[q].RHS.Add(terms[q])
	}
	return
}

func (m *MomentBasedMethod) collisionRuleWithRelaxationMatrix(D []symbolic.Expr, subs []symbolic.Assignment,
	cqEquations ...symbolic.AssignmentCollection) (cr *CollisionRule) {
	var cq symbolic.AssignmentCollection
	if len(cqEquations) > 0 {
		cq = cqEquations[0]
	} else {
		cq = m.conserved.EquilibriumInputEquationsFromPDFs(m.PreCollisionPDFSymbols())
	}
	post := m.relax(D)
	cr = &CollisionRule{
		Method: m,
		Hints: SimplificationHints{
			RelaxationRates:     rateSymbols(D),
			ConservedQuantities: m.conserved.Roles(),
			Compressible:        m.conserved.Compressible(),
		},
	}
	cr.Subexpressions = append(cr.Subexpressions, subs...)
	cr.Subexpressions = append(cr.Subexpressions, cq.Subexpressions...)
	cr.Subexpressions = append(cr.Subexpressions, cq.MainAssignments...)
	for q, d := range m.PostCollisionPDFSymbols() {
		cr.MainAssignments = append(cr.MainAssignments, symbolic.Assignment{LHS: d, RHS: post[q]})
	}
	return
}

func rateSymbols(D []symbolic.Expr) (syms []symbolic.Symbol) {
	set := make(map[symbolic.Symbol]bool)
	for _, d := range D {
		for _, s := range d.FreeSymbols() {
			if !set[s] {
				set[s] = true
				syms = append(syms, s)
			}
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return
}
