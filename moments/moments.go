package moments

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/notargets/golbm/stencils"
	"github.com/notargets/golbm/symbolic"
)

// Symbols are the spatial moment symbols, one per dimension.
var Symbols = []symbolic.Symbol{"x", "y", "z"}

var (
	ErrNotInvertible    = errors.New("moments: moment matrix is not invertible")
	ErrDependentMoments = errors.New("moments: moments are linearly dependent")
	ErrNoDefaultSet     = errors.New("moments: no default moment set for stencil")
	ErrBadMoment        = errors.New("moments: moment cannot be evaluated on stencil")
)

func FromExponents(exps ...int) (m symbolic.Expr) {
	m = symbolic.One()
	for i, e := range exps {
		m = m.Mul(symbolic.Sym(Symbols[i]).Pow(e))
	}
	return
}

// Exponents returns the exponent tuple of a unit monomial moment.
func Exponents(m symbolic.Expr, dim int) (exps []int, ok bool) {
	mons := m.Monomials()
	if !m.IsPolynomial() || len(mons) != 1 || mons[0].Coeff.Cmp(big.NewRat(1, 1)) != 0 {
		return
	}
	exps = make([]int, dim)
	total := 0
	for i := 0; i < dim; i++ {
		exps[i] = mons[0].Powers[Symbols[i]]
		total += exps[i]
	}
	for _, e := range mons[0].Powers {
		total -= e
	}
	return exps, total == 0
}

// Order is the total polynomial degree in the spatial symbols.
func Order(m symbolic.Expr) int { return m.Degree(Symbols...) }

func IsEven(m symbolic.Expr) bool { return Order(m)%2 == 0 }

func IsOdd(m symbolic.Expr) bool { return !IsEven(m) }

// IsShear is true for a single second degree term mixing two distinct spatial symbols.
func IsShear(m symbolic.Expr) bool {
	mons := m.Monomials()
	if !m.IsPolynomial() || len(mons) != 1 || len(mons[0].Powers) != 2 {
		return false
	}
	for _, s := range Symbols {
		if e, ok := mons[0].Powers[s]; ok && e != 1 {
			return false
		}
	}
	return Order(m) == 2
}

// IsConserved holds for the density and momentum moments.
func IsConserved(m symbolic.Expr) bool { return Order(m) <= 1 }

// UpToComponentOrder lists all exponent tuples whose components are at most order.
func UpToComponentOrder(order, dim int) (exps [][]int) {
	var rec func(prefix []int)
	rec = func(prefix []int) {
		if len(prefix) == dim {
			exps = append(exps, append([]int{}, prefix...))
			return
		}
		for e := 0; e <= order; e++ {
			rec(append(prefix, e))
		}
	}
	rec(nil)
	return
}

// ExtendWithPermutations adds every permutation of every tuple, without duplicates.
func ExtendWithPermutations(exps [][]int) (R [][]int) {
	seen := make(map[string]bool)
	var permute func(a []int, k int)
	permute = func(a []int, k int) {
		if k == len(a) {
			key := fmt.Sprint(a)
			if !seen[key] {
				seen[key] = true
				R = append(R, append([]int{}, a...))
			}
			return
		}
		for i := k; i < len(a); i++ {
			a[k], a[i] = a[i], a[k]
			permute(a, k+1)
			a[k], a[i] = a[i], a[k]
		}
	}
	for _, e := range exps {
		permute(append([]int{}, e...), 0)
	}
	return
}

// less orders exponent tuples by total order, then by descending largest
// component, then descending lexicographically.
func less(a, b []int) bool {
	var oa, ob, ma, mb int
	for i := range a {
		oa += a[i]
		ob += b[i]
		if a[i] > ma {
			ma = a[i]
		}
		if b[i] > mb {
			mb = b[i]
		}
	}
	if oa != ob {
		return oa < ob
	}
	if ma != mb {
		return ma > mb
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func SortExponents(exps [][]int) {
	sort.SliceStable(exps, func(i, j int) bool { return less(exps[i], exps[j]) })
}

// Sort orders moments by order; unit monomials of equal order follow the exponent ordering.
func Sort(ms []symbolic.Expr, dim int) {
	sort.SliceStable(ms, func(i, j int) bool {
		ei, oki := Exponents(ms[i], dim)
		ej, okj := Exponents(ms[j], dim)
		if oki && okj {
			return less(ei, ej)
		}
		return Order(ms[i]) < Order(ms[j])
	})
}

// GroupByOrder splits moments into groups of equal order, keeping the input
// order inside each group. Groups are returned by increasing order.
func GroupByOrder(ms []symbolic.Expr) (groups [][]symbolic.Expr) {
	byOrder := make(map[int][]symbolic.Expr)
	var orders []int
	for _, m := range ms {
		o := Order(m)
		if _, ok := byOrder[o]; !ok {
			orders = append(orders, o)
		}
		byOrder[o] = append(byOrder[o], m)
	}
	sort.Ints(orders)
	for _, o := range orders {
		groups = append(groups, byOrder[o])
	}
	return
}

// EvaluateAt computes the exact value of a moment at a lattice velocity.
func EvaluateAt(m symbolic.Expr, d stencils.Direction) (val *big.Rat, err error) {
	values := make(map[symbolic.Symbol]*big.Rat, len(d))
	for i, c := range d {
		values[Symbols[i]] = big.NewRat(int64(c), 1)
	}
	if val, err = m.EvalRat(values); err != nil {
		err = fmt.Errorf("%w: %s in %d dimensions: %v", ErrBadMoment, m, len(d), err)
	}
	return
}

// Values evaluates a moment at every stencil direction.
func Values(m symbolic.Expr, s stencils.Stencil) (vals []*big.Rat, err error) {
	vals = make([]*big.Rat, len(s))
	for q, d := range s {
		if vals[q], err = EvaluateAt(m, d); err != nil {
			return nil, err
		}
	}
	return
}

// Discrete forms sum_q m(c_q) f_q.
func Discrete(m symbolic.Expr, s stencils.Stencil, pdfs []symbolic.Expr) (R symbolic.Expr, err error) {
	var vals []*big.Rat
	if vals, err = Values(m, s); err != nil {
		return
	}
	for q, v := range vals {
		if v.Sign() != 0 {
			R = R.Add(symbolic.FromRat(v).Mul(pdfs[q]))
		}
	}
	return
}
