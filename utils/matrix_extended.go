package utils

import (
	"fmt"

	"gonum.org/v1/gonum/lapack/lapack64"

	"gonum.org/v1/gonum/blas/blas64"

	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = make([]float64, nr*nc)
	)
	copy(data, m.Data())
	R = NewMatrix(nr, nc, data)
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.Dims()
		_, ncA = A.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

// MulVec computes m*v for a vector given as a slice.
func (m Matrix) MulVec(v []float64) (R []float64) {
	var (
		nr, _ = m.Dims()
		res   = mat.NewVecDense(nr, nil)
	)
	res.MulVec(m.M, mat.NewVecDense(len(v), v))
	return res.RawVector().Data
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

// MaxAbsDiff is the largest entrywise distance between two equally sized matrices.
func (m Matrix) MaxAbsDiff(A Matrix) (diff float64) {
	var (
		a, b = m.Data(), A.Data()
	)
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > diff {
			diff = d
		}
	}
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
