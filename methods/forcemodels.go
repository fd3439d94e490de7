package methods

import (
	"fmt"

	"github.com/notargets/golbm/symbolic"
)

// ForceModel adds a body force to the collision rule.
type ForceModel interface {
	Name() string
	Force() []symbolic.Expr
	// Terms returns one additive correction per lattice direction.
	Terms(m *MomentBasedMethod) ([]symbolic.Expr, error)
	// EquilibriumVelocityShift is added to the momentum before it enters the
	// equilibrium, nil if the model does not shift the velocity.
	EquilibriumVelocityShift() []symbolic.Expr
}

type forceBase struct {
	force []symbolic.Expr
}

func (fb forceBase) Force() []symbolic.Expr { return append([]symbolic.Expr{}, fb.force...) }

func (fb forceBase) check(m *MomentBasedMethod) error {
	if len(fb.force) != m.Dim() {
		return fmt.Errorf("%w: force has %d components for dimension %d", ErrConfiguration, len(fb.force), m.Dim())
	}
	return nil
}

// SimpleForce is the first order term 3 w_i F.c_i without velocity shift.
type SimpleForce struct{ forceBase }

func NewSimpleForce(force []symbolic.Expr) *SimpleForce {
	return &SimpleForce{forceBase{force: force}}
}

func (f *SimpleForce) Name() string { return "simple" }

func (f *SimpleForce) EquilibriumVelocityShift() []symbolic.Expr { return nil }

func (f *SimpleForce) Terms(m *MomentBasedMethod) (terms []symbolic.Expr, err error) {
	var w []symbolic.Expr
	if err = f.check(m); err != nil {
		return
	}
	if w, err = m.Weights(); err != nil {
		return
	}
	three := symbolic.Int(3)
	terms = make([]symbolic.Expr, len(w))
	for q, d := range m.Stencil() {
		var fc symbolic.Expr
		for i, c := range d {
			fc = fc.Add(symbolic.Int(int64(c)).Mul(f.force[i]))
		}
		terms[q] = three.Mul(w[q]).Mul(fc)
	}
	return
}

// LuoForce is the second order forcing 3 w_i F.(c_i - u + 3 (c_i.u) c_i).
type LuoForce struct{ forceBase }

func NewLuoForce(force []symbolic.Expr) *LuoForce {
	return &LuoForce{forceBase{force: force}}
}

func (f *LuoForce) Name() string { return "luo" }

func (f *LuoForce) EquilibriumVelocityShift() []symbolic.Expr { return nil }

func (f *LuoForce) Terms(m *MomentBasedMethod) (terms []symbolic.Expr, err error) {
	var w []symbolic.Expr
	if err = f.check(m); err != nil {
		return
	}
	if w, err = m.Weights(); err != nil {
		return
	}
	return luoTerms(f.force, m, w), nil
}

func luoTerms(force []symbolic.Expr, m *MomentBasedMethod, w []symbolic.Expr) (terms []symbolic.Expr) {
	var (
		u     = m.FirstOrderEquilibriumMomentSymbols()
		three = symbolic.Int(3)
	)
	terms = make([]symbolic.Expr, len(w))
	for q, d := range m.Stencil() {
		var cu, sum symbolic.Expr
		for i, c := range d {
			cu = cu.Add(symbolic.Int(int64(c)).Mul(u[i].Expr()))
		}
		for i, c := range d {
			ci := symbolic.Int(int64(c))
			sum = sum.Add(force[i].Mul(ci.Sub(u[i].Expr()).Add(three.Mul(ci).Mul(cu))))
		}
		terms[q] = three.Mul(w[q]).Mul(sum)
	}
	return
}

// GuoForce scales the Luo terms by (1 - omega/2) with the shear relaxation
// rate and shifts the equilibrium velocity by F/2.
type GuoForce struct{ forceBase }

func NewGuoForce(force []symbolic.Expr) *GuoForce {
	return &GuoForce{forceBase{force: force}}
}

func (f *GuoForce) Name() string { return "guo" }

func (f *GuoForce) EquilibriumVelocityShift() (shift []symbolic.Expr) {
	half := symbolic.Rational(1, 2)
	shift = make([]symbolic.Expr, len(f.force))
	for i, fi := range f.force {
		shift[i] = half.Mul(fi)
	}
	return
}

func (f *GuoForce) Terms(m *MomentBasedMethod) (terms []symbolic.Expr, err error) {
	var (
		w     []symbolic.Expr
		omega symbolic.Expr
	)
	if err = f.check(m); err != nil {
		return
	}
	if w, err = m.Weights(); err != nil {
		return
	}
	if omega, err = m.ShearRelaxationRate(); err != nil {
		return
	}
	correction := symbolic.One().Sub(symbolic.Rational(1, 2).Mul(omega))
	terms = luoTerms(f.force, m, w)
	for q := range terms {
		terms[q] = correction.Mul(terms[q])
	}
	return
}

// ForceSymbols returns F_0...F_{dim-1} as expressions.
func ForceSymbols(dim int) (force []symbolic.Expr) {
	force = make([]symbolic.Expr, dim)
	for i := range force {
		force[i] = symbolic.Sym(symbolic.Symbol(fmt.Sprintf("F_%d", i)))
	}
	return
}

// NewForceModel builds a force model by name: simple, luo or guo.
func NewForceModel(name string, force []symbolic.Expr) (fm ForceModel, err error) {
	switch name {
	case "simple":
		fm = NewSimpleForce(force)
	case "luo":
		fm = NewLuoForce(force)
	case "guo":
		fm = NewGuoForce(force)
	default:
		err = fmt.Errorf("%w: unknown force model %q", ErrConfiguration, name)
	}
	return
}
