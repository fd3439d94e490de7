package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var ErrSingular = errors.New("symbolic: matrix is singular")

// RatMatrix is a dense row-major matrix of exact rationals.
type RatMatrix struct {
	nr, nc int
	data   []*big.Rat
}

func NewRatMatrix(nr, nc int) (R *RatMatrix) {
	R = &RatMatrix{nr, nc, make([]*big.Rat, nr*nc)}
	for i := range R.data {
		R.data[i] = new(big.Rat)
	}
	return
}

func IdentityRat(n int) (R *RatMatrix) {
	R = NewRatMatrix(n, n)
	for i := 0; i < n; i++ {
		R.data[i*n+i].SetInt64(1)
	}
	return
}

func (m *RatMatrix) Dims() (nr, nc int) { return m.nr, m.nc }

func (m *RatMatrix) At(i, j int) *big.Rat { return new(big.Rat).Set(m.data[i*m.nc+j]) }

func (m *RatMatrix) Set(i, j int, val *big.Rat) {
	m.data[i*m.nc+j] = new(big.Rat).Set(val)
}

func (m *RatMatrix) Row(i int) (row []*big.Rat) {
	row = make([]*big.Rat, m.nc)
	for j := range row {
		row[j] = m.At(i, j)
	}
	return
}

func (m *RatMatrix) Copy() (R *RatMatrix) {
	R = NewRatMatrix(m.nr, m.nc)
	for i, v := range m.data {
		R.data[i].Set(v)
	}
	return
}

func (m *RatMatrix) Mul(A *RatMatrix) (R *RatMatrix) {
	if m.nc != A.nr {
		panic(fmt.Errorf("dimension mismatch: %dx%d times %dx%d", m.nr, m.nc, A.nr, A.nc))
	}
	R = NewRatMatrix(m.nr, A.nc)
	tmp := new(big.Rat)
	for i := 0; i < m.nr; i++ {
		for j := 0; j < A.nc; j++ {
			sum := R.data[i*A.nc+j]
			for k := 0; k < m.nc; k++ {
				sum.Add(sum, tmp.Mul(m.data[i*m.nc+k], A.data[k*A.nc+j]))
			}
		}
	}
	return
}

func (m *RatMatrix) Equal(A *RatMatrix) bool {
	if m.nr != A.nr || m.nc != A.nc {
		return false
	}
	for i, v := range m.data {
		if v.Cmp(A.data[i]) != 0 {
			return false
		}
	}
	return true
}

// Inverse uses Gauss-Jordan elimination with exact pivots.
func (m *RatMatrix) Inverse() (R *RatMatrix, err error) {
	if m.nr != m.nc {
		err = fmt.Errorf("%w: not square (%dx%d)", ErrSingular, m.nr, m.nc)
		return
	}
	var (
		n   = m.nr
		A   = m.Copy()
		tmp = new(big.Rat)
	)
	R = IdentityRat(n)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if A.data[row*n+col].Sign() != 0 {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, fmt.Errorf("%w: rank deficient at column %d", ErrSingular, col)
		}
		if pivot != col {
			A.swapRows(pivot, col)
			R.swapRows(pivot, col)
		}
		inv := new(big.Rat).Inv(A.data[col*n+col])
		for j := 0; j < n; j++ {
			A.data[col*n+j].Mul(A.data[col*n+j], inv)
			R.data[col*n+j].Mul(R.data[col*n+j], inv)
		}
		for row := 0; row < n; row++ {
			if row == col || A.data[row*n+col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(A.data[row*n+col])
			for j := 0; j < n; j++ {
				A.data[row*n+j].Sub(A.data[row*n+j], tmp.Mul(f, A.data[col*n+j]))
				R.data[row*n+j].Sub(R.data[row*n+j], tmp.Mul(f, R.data[col*n+j]))
			}
		}
	}
	return
}

func (m *RatMatrix) swapRows(a, b int) {
	for j := 0; j < m.nc; j++ {
		m.data[a*m.nc+j], m.data[b*m.nc+j] = m.data[b*m.nc+j], m.data[a*m.nc+j]
	}
}

// RowDot computes sum_j m[i][j]*v[j].
func (m *RatMatrix) RowDot(i int, v []Expr) (R Expr) {
	for j := 0; j < m.nc; j++ {
		c := m.data[i*m.nc+j]
		if c.Sign() == 0 || v[j].IsZero() {
			continue
		}
		R = R.Add(FromRat(c).Mul(v[j]))
	}
	return
}

func (m *RatMatrix) MulExprVec(v []Expr) (R []Expr) {
	R = make([]Expr, m.nr)
	for i := range R {
		R[i] = m.RowDot(i, v)
	}
	return
}

// Float64 returns the entries in row-major order.
func (m *RatMatrix) Float64() (data []float64) {
	data = make([]float64, len(m.data))
	for i, v := range m.data {
		data[i], _ = v.Float64()
	}
	return
}

func (m *RatMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.nr; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.nc; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.data[i*m.nc+j].RatString())
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
