package qprod

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// EulerFactor is the k-th factor of the Euler function (1-q^k), k>=1.
func EulerFactor(k int, variable symtab.ID, baseTrunc int) (fps.FPS, error) {
	return oneMinusQPow(k, variable, baseTrunc)
}

func oneMinusQPow(exp int, variable symtab.ID, baseTrunc int) (fps.FPS, error) {
	if exp >= baseTrunc {
		return fps.Constant(bigrat.QOne, variable, baseTrunc), nil
	}
	return fps.FromCoeffs(map[int]bigrat.Q{0: bigrat.QOne, exp: bigrat.QOne.Neg()}, variable, baseTrunc), nil
}

// NewEulerGenerator builds prod_{k>=1} (1-q^k), the Euler function (q;q)_inf.
func NewEulerGenerator(variable symtab.ID, baseTrunc int) *Generator {
	return New(variable, 1, baseTrunc, EulerFactor)
}

// QPochInfFactorFn returns a FactorFn for prod_{k>=0} (1 - a*q^{offset+k*step}),
// the generic building block behind aqprod(a,q,infinity) and etaq.
func QPochInfFactorFn(a bigrat.Q, offset, step int) FactorFn {
	return func(k int, variable symtab.ID, baseTrunc int) (fps.FPS, error) {
		e := offset + k*step
		if e >= baseTrunc {
			return fps.Constant(bigrat.QOne, variable, baseTrunc), nil
		}
		if e < 0 {
			return fps.FPS{}, fps.ErrNegativeExponent
		}
		if e == 0 {
			return fps.Constant(bigrat.QOne.Add(a.Neg()), variable, baseTrunc), nil
		}
		return fps.FromCoeffs(map[int]bigrat.Q{0: bigrat.QOne, e: a.Neg()}, variable, baseTrunc), nil
	}
}

// NewQPochInfGenerator builds prod_{k>=0} (1 - a*q^{offset+k*step}).
func NewQPochInfGenerator(a bigrat.Q, offset, step int, variable symtab.ID, baseTrunc int) *Generator {
	return New(variable, 0, baseTrunc, QPochInfFactorFn(a, offset, step))
}
