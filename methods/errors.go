package methods

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/golbm/symbolic"
)

// Error categories
var (
	ErrConfiguration  = errors.New("methods: configuration error")
	ErrDerivation     = errors.New("methods: derivation error")
	ErrNotImplemented = errors.New("methods: not implemented")
)

var (
	ErrMomentCount            = fmt.Errorf("%w: number of moments does not match the stencil size", ErrConfiguration)
	ErrDuplicateMoment        = fmt.Errorf("%w: duplicate moment", ErrConfiguration)
	ErrUndefinedSymbols       = fmt.Errorf("%w: undefined symbol(s) in equilibrium moment", ErrConfiguration)
	ErrFirstMomentsNotRelaxed = fmt.Errorf("%w: first moments are not relaxed separately by this method", ErrConfiguration)
	ErrMomentMatrix           = fmt.Errorf("%w: moment matrix", ErrDerivation)
	ErrWeights                = fmt.Errorf("%w: failed to compute weights", ErrDerivation)
	ErrAmbiguousShearRate     = fmt.Errorf("%w: shear moments are relaxed with different relaxation times", ErrDerivation)
	ErrNoShearMoments         = fmt.Errorf("%w: shear moments seem to be not relaxed separately, "+
		"can not determine their relaxation rate automatically", ErrNotImplemented)
	ErrNoOrthogonalBasis = fmt.Errorf("%w: no orthogonal moment basis for this stencil, "+
		"use CreateWithDiscreteMaxwellianEqMoments with a custom moment set", ErrNotImplemented)
)

type UndefinedSymbolsError struct {
	Symbols []symbolic.Symbol
}

func (e *UndefinedSymbolsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUndefinedSymbols, joinSymbols(e.Symbols))
}

func (e *UndefinedSymbolsError) Unwrap() error { return ErrUndefinedSymbols }

type ShearRateError struct {
	Rates []symbolic.Expr
}

func (e *ShearRateError) Error() string {
	strs := make([]string, len(e.Rates))
	for i, r := range e.Rates {
		strs[i] = r.String()
	}
	return fmt.Sprintf("%s: {%s}", ErrAmbiguousShearRate, strings.Join(strs, ", "))
}

func (e *ShearRateError) Unwrap() error { return ErrAmbiguousShearRate }

func joinSymbols(syms []symbolic.Symbol) string {
	strs := make([]string, len(syms))
	for i, s := range syms {
		strs[i] = string(s)
	}
	return strings.Join(strs, ", ")
}
