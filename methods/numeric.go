package methods

import (
	"fmt"

	"github.com/notargets/golbm/symbolic"
	"github.com/notargets/golbm/utils"
)

// NumericOperator performs the collision of a method in float64 arithmetic
// directly in moment space, without building the symbolic rule.
type NumericOperator struct {
	method    *MomentBasedMethod
	transform *utils.MomentTransform
}

func (m *MomentBasedMethod) NumericOperator() (op *NumericOperator, err error) {
	var mt *utils.MomentTransform
	if mt, err = utils.NewMomentTransform(len(m.stencil), m.M.Float64()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMomentMatrix, err)
	}
	return &NumericOperator{method: m, transform: mt}, nil
}

// Collide returns the post collision PDFs for f. params supplies values for
// relaxation rate and force symbols.
func (op *NumericOperator) Collide(f []float64, params map[symbolic.Symbol]float64) (post []float64, err error) {
	var (
		m      = op.method
		nq     = len(m.stencil)
		values = make(map[symbolic.Symbol]float64, len(params)+nq)
		cq     map[symbolic.Symbol]float64
	)
	if len(f) != nq {
		err = fmt.Errorf("%w: %d pdf values for %d directions", ErrConfiguration, len(f), nq)
		return
	}
	for s, v := range params {
		values[s] = v
	}
	for q, s := range m.PreCollisionPDFSymbols() {
		values[s] = f[q]
	}
	eqs := m.conserved.EquilibriumInputEquationsFromPDFs(m.PreCollisionPDFSymbols())
	if cq, err = eqs.Evaluate(values); err != nil {
		return
	}
	for s, v := range cq {
		values[s] = v
	}
	var (
		meq   = make([]float64, nq)
		rates = make([]float64, nq)
	)
	for i, e := range m.RelaxationTable() {
		if meq[i], err = e.EquilibriumValue.Eval(values); err != nil {
			return nil, fmt.Errorf("equilibrium of %s: %w", e.Moment, err)
		}
		if rates[i], err = e.RelaxationRate.Eval(values); err != nil {
			return nil, fmt.Errorf("relaxation rate of %s: %w", e.Moment, err)
		}
	}
	post = op.transform.Collide(f, meq, rates)
	if m.forceModel == nil {
		return
	}
	var terms []symbolic.Expr
	if terms, err = m.forceModel.Terms(m); err != nil {
		return nil, err
	}
	for q, t := range terms {
		var val float64
		if val, err = t.Eval(values); err != nil {
			return nil, fmt.Errorf("force term %d: %w", q, err)
		}
		post[q] += val
	}
	return
}
