package utils

import (
	"gonum.org/v1/gonum/mat"
)

// ConditionNumber is the ratio of the extreme singular values; a failed or
// singular factorization reports 1e16.
func (m Matrix) ConditionNumber() float64 {
	sMin, sMax := m.SingularValues()
	if sMax == 0 || sMin < 1e-16 {
		return 1e16
	}
	return sMax / sMin
}

func (m Matrix) SingularValues() (sMin, sMax float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, 0
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, 0
	}
	// Singular values are in descending order
	return values[len(values)-1], values[0]
}
