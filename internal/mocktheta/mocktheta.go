// Package mocktheta implements the classical mock-theta functions, the
// Appell-Lerch sum and the Bailey-pair machinery of spec §4.10. The
// universal mock-theta functions g2/g3 are not implemented. Every function here is a
// straightforward double-loop sum over a q-Pochhammer generator --
// there is no algorithmic depth comparable to the analysis or
// telescoping packages, matching how the source describes this layer.
package mocktheta

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/qseries"
	"qkangaroo/internal/symtab"
)

// Mono is coeff*q^pow, pow >= 0.
type Mono = qseries.Mono

// pochFinite computes prod_{j=0}^{count-1} (1 - sign*q^{offset+step*j}),
// the finite Pochhammer building block every mock-theta summand uses
// for its (-q;q)_n / (q;q^2)_n / (-q^3;q^3)_n style denominators and
// numerator multipliers alike.
func pochFinite(sign bigrat.Q, offset, step, count int, variable symtab.ID, order int) (fps.FPS, error) {
	out := fps.Constant(bigrat.QOne, variable, order)
	for j := 0; j < count; j++ {
		e := offset + step*j
		factor := fps.FromCoeffs(map[int]bigrat.Q{0: bigrat.QOne, e: sign.Neg()}, variable, order)
		var err error
		out, err = fps.Mul(out, factor)
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}

// sumUntilExhausted adds term(n) for n = 0, 1, 2, ... until minExp(n)
// (a lower bound on the q-degree term(n) contributes) reaches N, i.e.
// until further terms cannot affect any coefficient below N.
func sumUntilExhausted(variable symtab.ID, N int, minExp func(n int) int, term func(n int) (fps.FPS, error)) (fps.FPS, error) {
	out := fps.Zero(variable, N)
	for n := 0; ; n++ {
		if minExp(n) >= N {
			break
		}
		t, err := term(n)
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Add(out, fps.CapOrder(t, N))
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}

func monomial(e int, variable symtab.ID, order int) (fps.FPS, error) {
	return fps.Monomial(bigrat.QOne, e, variable, order)
}

// F3 is Ramanujan's order-3 f(q) = sum_{n>=0} q^{n^2} / (-q;q)_n^2.
func F3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err = fps.Mul(fps.CapOrder(den, N), fps.CapOrder(den, N))
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Phi3 is Ramanujan's order-3 phi(q) = sum_{n>=0} q^{n^2} / (-q^2;q^2)_n.
func Phi3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 2, 2, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Psi3 is Ramanujan's order-3 psi(q) = sum_{n>=1} q^{n^2} / (q;q^2)_n.
func Psi3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			if n == 0 {
				return fps.Zero(variable, N), nil
			}
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, 1, 2, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Chi3 is Ramanujan's order-3 chi(q) = sum_{n>=0} q^{n^2}(-q;q)_n / (-q^3;q^3)_n.
func Chi3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			mult, err := pochFinite(bigrat.QOne.Neg(), 1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			if num, err = fps.Mul(num, fps.CapOrder(mult, N)); err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 3, 3, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Nu3 is Ramanujan's order-3 nu(q) = sum_{n>=0} q^{n(n+1)} / (-q;q^2)_{n+1}.
func Nu3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 1, 2, n+1, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Rho3 is Ramanujan's order-3
// rho(q) = sum_{n>=0} q^{2n(n+1)} / ((-q;q^3)_{n+1} (-q^2;q^3)_n).
func Rho3(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return 2 * n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(2*n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			d1, err := pochFinite(bigrat.QOne.Neg(), 1, 3, n+1, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			d2, err := pochFinite(bigrat.QOne.Neg(), 2, 3, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := fps.Mul(fps.CapOrder(d1, N), fps.CapOrder(d2, N))
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}
