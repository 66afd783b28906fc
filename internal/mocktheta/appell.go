package mocktheta

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// geometric builds 1/(1 - c*q^m) as a sparse power series truncated at
// order N (m > 0), or the constant 1/(1-c) when m == 0.
func geometric(c bigrat.Q, m int, variable symtab.ID, N int) (fps.FPS, error) {
	if m == 0 {
		denom := bigrat.QOne.Sub(c)
		if denom.IsZero() {
			return fps.FPS{}, bigrat.ErrDivByZero
		}
		inv, err := denom.Recip()
		if err != nil {
			return fps.FPS{}, err
		}
		return fps.Constant(inv, variable, N), nil
	}
	coeffs := map[int]bigrat.Q{0: bigrat.QOne}
	acc := bigrat.QOne
	for k, e := 1, m; e < N; k, e = k+1, m*(k+1) {
		acc = acc.Mul(c)
		coeffs[e] = acc
	}
	return fps.FromCoeffs(coeffs, variable, N), nil
}

// AppellLerchM evaluates the Appell-Lerch sum
//
//	m(x,q,z) = sum_{n in Z} (-1)^n q^{n(n+1)/2} z^n / (1 - q^n x z)
//
// for x and z given as monomials in q (spec's "q is purely a formal
// symbol" rule leaves no slot for a transcendental z off the q-power
// lattice). The full bilateral sum needs Laurent cancellation between
// its positive- and negative-index halves near z = q^n, which this
// nonnegative-exponent FPS core cannot represent directly; this
// implementation sums the n >= 0 half only and documents the rest as
// an Open Question (see the project's design notes).
func AppellLerchM(x, z Mono, variable symtab.ID, N int) (fps.FPS, error) {
	out := fps.Zero(variable, N)
	m := x.Pow + z.Pow
	c := x.Coeff.Mul(z.Coeff)
	for n := 0; ; n++ {
		triangular := n * (n + 1) / 2
		znExp := n * z.Pow
		if triangular+znExp >= N {
			break
		}
		denomExp := n + m
		if denomExp < 0 {
			// q^n*x*z still has a negative-exponent singular part at this
			// n; out of scope for this series core, skip and keep going.
			continue
		}
		zn, err := z.Coeff.PowSigned(n)
		if err != nil {
			return fps.FPS{}, err
		}
		sign := bigrat.QOne
		if n%2 == 1 {
			sign = sign.Neg()
		}
		prefactor, err := fps.Monomial(sign.Mul(zn), triangular+znExp, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		geo, err := geometric(c, denomExp, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		term, err := fps.Mul(prefactor, fps.CapOrder(geo, N))
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Add(out, fps.CapOrder(term, N))
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}
