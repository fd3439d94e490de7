package utils

import "fmt"

// MomentTransform holds a square moment matrix in sparse form along with
// its dense inverse.
type MomentTransform struct {
	M    CSR
	Minv Matrix
}

const inverseTolerance = 1e-9

func identity(n int) (I Matrix) {
	I = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		I.Set(i, i, 1)
	}
	return
}

// NewMomentTransform takes the moment matrix as a row-major slice.
func NewMomentTransform(nq int, mData []float64) (mt *MomentTransform, err error) {
	if len(mData) != nq*nq {
		err = fmt.Errorf("moment matrix has %d entries, want %d", len(mData), nq*nq)
		return
	}
	var (
		M     = NewDOKFromDense(nq, nq, mData)
		dense = NewMatrix(nq, nq, append([]float64{}, mData...))
		Minv  Matrix
	)
	if Minv, err = dense.Inverse(); err != nil {
		return
	}
	if diff := dense.Mul(Minv).MaxAbsDiff(identity(nq)); diff > inverseTolerance {
		err = fmt.Errorf("moment matrix inverse is off by %g", diff)
		return
	}
	M.SetReadOnly("M")
	Minv.SetReadOnly("Minv")
	mt = &MomentTransform{M: M.ToCSR(), Minv: Minv}
	return
}

// Collide applies f + Minv diag(rates) (meq - M f).
func (mt *MomentTransform) Collide(f, meq, rates []float64) (post []float64) {
	var (
		m    = mt.M.MulVec(f)
		diff = make([]float64, len(m))
	)
	for i := range m {
		diff[i] = rates[i] * (meq[i] - m[i])
	}
	corr := mt.Minv.MulVec(diff)
	post = make([]float64, len(f))
	for k := range f {
		post[k] = f[k] + corr[k]
	}
	return
}
