package moments

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
	"github.com/notargets/golbm/utils"
)

// Matrix has one row per moment and one column per lattice direction.
func Matrix(ms []symbolic.Expr, s stencils.Stencil) (M *symbolic.RatMatrix, err error) {
	M = symbolic.NewRatMatrix(len(ms), len(s))
	for i, m := range ms {
		var vals []*big.Rat
		if vals, err = Values(m, s); err != nil {
			return nil, err
		}
		for j, v := range vals {
			M.Set(i, j, v)
		}
	}
	return
}

// InvertibleMatrix returns the moment matrix with its exact inverse.
func InvertibleMatrix(ms []symbolic.Expr, s stencils.Stencil) (M, Minv *symbolic.RatMatrix, err error) {
	if len(ms) != len(s) {
		err = fmt.Errorf("%w: %d moments for %d directions", ErrNotInvertible, len(ms), len(s))
		return
	}
	if M, err = Matrix(ms, s); err != nil {
		return
	}
	if Minv, err = M.Inverse(); err != nil {
		if errors.Is(err, symbolic.ErrSingular) {
			err = fmt.Errorf("%w: %v", ErrNotInvertible, err)
		}
		return nil, nil, err
	}
	return
}

// ConditionNumber is a floating point diagnostic of the moment matrix.
func ConditionNumber(ms []symbolic.Expr, s stencils.Stencil) (cond float64, err error) {
	var M *symbolic.RatMatrix
	if M, err = Matrix(ms, s); err != nil {
		return
	}
	nr, nc := M.Dims()
	cond = utils.NewMatrix(nr, nc, M.Float64()).ConditionNumber()
	return
}

func innerProduct(a, b, weights []*big.Rat) (sum *big.Rat) {
	var (
		tmp = new(big.Rat)
	)
	sum = new(big.Rat)
	for q := range a {
		tmp.Mul(a[q], b[q])
		if weights != nil {
			tmp.Mul(tmp, weights[q])
		}
		sum.Add(sum, tmp)
	}
	return
}

// InnerProduct is the discrete inner product sum_q w_q a(c_q) b(c_q), with
// unit weights when weights is nil.
func InnerProduct(a, b symbolic.Expr, s stencils.Stencil, weights []*big.Rat) (ip *big.Rat, err error) {
	var va, vb []*big.Rat
	if va, err = Values(a, s); err != nil {
		return
	}
	if vb, err = Values(b, s); err != nil {
		return
	}
	return innerProduct(va, vb, weights), nil
}

// GramSchmidt orthogonalizes the moments in order under the discrete inner product.
func GramSchmidt(ms []symbolic.Expr, s stencils.Stencil, weights []*big.Rat) (ortho []symbolic.Expr, err error) {
	var (
		vecs  = make([][]*big.Rat, 0, len(ms))
		norms = make([]*big.Rat, 0, len(ms))
	)
	ortho = make([]symbolic.Expr, 0, len(ms))
	for i, m := range ms {
		var vals []*big.Rat
		if vals, err = Values(m, s); err != nil {
			return nil, err
		}
		for j, prev := range ortho {
			coeff := innerProduct(vals, vecs[j], weights)
			if coeff.Sign() == 0 {
				continue
			}
			coeff.Quo(coeff, norms[j])
			m = m.Sub(symbolic.FromRat(coeff).Mul(prev))
			for q := range vals {
				vals[q] = new(big.Rat).Sub(vals[q], new(big.Rat).Mul(coeff, vecs[j][q]))
			}
		}
		norm := innerProduct(vals, vals, weights)
		if norm.Sign() == 0 {
			return nil, fmt.Errorf("%w: moment %d (%s) lies in the span of its predecessors",
				ErrDependentMoments, i, ms[i])
		}
		ortho = append(ortho, m)
		vecs = append(vecs, vals)
		norms = append(norms, norm)
	}
	return
}

// DefaultSet picks one monomial per lattice direction such that the moment
// matrix is invertible.
func DefaultSet(s stencils.Stencil) (ms []symbolic.Expr, err error) {
	var (
		exps [][]int
		fam  = stencils.Identify(s)
	)
	switch fam {
	case stencils.D2Q9:
		exps = UpToComponentOrder(2, 2)
	case stencils.D3Q27:
		exps = UpToComponentOrder(2, 3)
	case stencils.D3Q19:
		drop := make(map[string]bool)
		for _, e := range ExtendWithPermutations([][]int{{1, 2, 2}, {1, 1, 2}, {2, 2, 2}, {1, 1, 1}}) {
			drop[fmt.Sprint(e)] = true
		}
		for _, e := range UpToComponentOrder(2, 3) {
			if !drop[fmt.Sprint(e)] {
				exps = append(exps, e)
			}
		}
	case stencils.D3Q15:
		exps = [][]int{
			{0, 0, 0},
			{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			{2, 0, 0}, {0, 2, 0}, {0, 0, 2},
			{1, 1, 0}, {1, 0, 1}, {0, 1, 1},
			{2, 0, 1}, {1, 2, 0}, {0, 1, 2},
			{1, 1, 1}, {2, 2, 0},
		}
	default:
		err = fmt.Errorf("%w: D%dQ%d", ErrNoDefaultSet, s.Dim(), len(s))
		return
	}
	SortExponents(exps)
	ms = make([]symbolic.Expr, len(exps))
	for i, e := range exps {
		ms[i] = FromExponents(e...)
	}
	slog.Debug("default moment set", "stencil", fam.String(), "moments", len(ms))
	return
}
