package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	A := NewMatrix(3, 3, []float64{
		2, 0, 1,
		0, 1, 0,
		1, 0, 2,
	})
	Ainv, err := A.Inverse()
	require.NoError(t, err)
	I := A.Mul(Ainv)
	assert.InDelta(t, 0, I.MaxAbsDiff(NewMatrix(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})), 1e-14)
	assert.InDeltaSlice(t, []float64{3, 2, 3}, A.MulVec([]float64{1, 2, 1}), 1e-14)
	assert.InDelta(t, 3., A.ConditionNumber(), 1e-12)
	sMin, sMax := A.SingularValues()
	assert.InDelta(t, 1., sMin, 1e-12)
	assert.InDelta(t, 3., sMax, 1e-12)

	_, err = NewMatrix(2, 2, []float64{1, 2, 2, 4}).Inverse()
	assert.Error(t, err)
	assert.Greater(t, NewMatrix(2, 2, []float64{1, 2, 2, 4}).ConditionNumber(), 1e10)

	B := A.Copy()
	B.SetReadOnly("B")
	assert.Panics(t, func() { B.Set(0, 0, 1) })
	assert.NotPanics(t, func() { A.Copy().Set(0, 0, 1) })
	assert.Equal(t, 1., A.T().At(2, 0))
}

func TestSparse(t *testing.T) {
	data := []float64{
		1, 0, 0, 2,
		0, 3, 0, 0,
		0, 0, 0, 0,
		4, 0, 5, 0,
	}
	dok := NewDOKFromDense(4, 4, data)
	assert.Equal(t, 5, dok.NNZ())
	csr := dok.ToCSR()
	assert.Equal(t, 5, csr.NNZ())
	assert.Equal(t, 5., csr.At(3, 2))
	assert.InDeltaSlice(t, []float64{9, 6, 0, 19}, csr.MulVec([]float64{1, 2, 3, 4}), 1e-14)
	dok.SetReadOnly("dok")
	assert.Panics(t, func() { dok.Set(0, 0, 1) })
}

func TestMomentTransform(t *testing.T) {
	// moments 1, x, x^2 on the velocities 0, 1, -1
	M := []float64{
		1, 1, 1,
		0, 1, -1,
		0, 1, 1,
	}
	mt, err := NewMomentTransform(3, M)
	require.NoError(t, err)
	f := []float64{0.6, 0.25, 0.15}
	m := mt.M.MulVec(f)
	assert.InDeltaSlice(t, []float64{1, 0.1, 0.4}, m, 1e-14)
	// relaxing the equilibrium only in the last moment keeps the first two
	post := mt.Collide(f, []float64{1, 0.1, 1. / 3}, []float64{0, 0, 1})
	assert.InDeltaSlice(t, []float64{1, 0.1, 1. / 3}, mt.M.MulVec(post), 1e-14)
	// unit rates land on the equilibrium moments
	post = mt.Collide(f, []float64{1, 0, 1. / 3}, []float64{1, 1, 1})
	assert.InDeltaSlice(t, []float64{2. / 3, 1. / 6, 1. / 6}, post, 1e-14)

	_, err = NewMomentTransform(3, M[:8])
	assert.Error(t, err)
	_, err = NewMomentTransform(2, []float64{1, 1, 1, 1})
	assert.Error(t, err)
}
