// Package qseries implements the named q-series of spec §4.5: finite and
// infinite q-Pochhammer products, the q-binomial, generalised eta
// products, the classical theta/triple/quintuple/Winquist products, and
// the partition-theoretic generating functions. Every function returns
// an fps.FPS built from internal/qprod generators, following the
// teacher's style of small value-returning constructors (ntru.NewIntPoly,
// ntru.NewModQPoly) rather than builder objects.
package qseries

import (
	"errors"
	"fmt"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/qprod"
	"qkangaroo/internal/symtab"
)

// ErrNegativeCount guards finite-product arities.
var ErrNegativeCount = errors.New("qseries: count must be nonnegative")

// Infinite marks the n argument of Aqprod as the infinite-product case.
const Infinite = -1

// Mono denotes a monomial coeff*q^pow, the representation spec §3 calls
// a "hypergeometric parameter" (c_num/c_den)*q^p specialised to z-type
// arguments of the classical theta/product identities. pow must be >= 0:
// this univariate core forbids negative exponents (spec §3); a monomial
// needing a negative power belongs to the fractional/bivariate variants
// out of this core's scope.
type Mono struct {
	Coeff bigrat.Q
	Pow   int
}

// Aqprod computes the q-Pochhammer product whose base is a*q:
// (aq;q)_n = prod_{k=1}^{n} (1 - a*q^k), so a = 1 gives (q;q)_n. A base
// with no factor of q, such as (1/2;q)_n, cannot be expressed. n ==
// Infinite requests the infinite product (aq;q)_inf, truncated at N;
// otherwise the result is an exact polynomial (sentinel truncation, spec
// §4.5) regardless of N.
func Aqprod(a bigrat.Q, variable symtab.ID, n, N int) (fps.FPS, error) {
	if n == Infinite {
		g := qprod.NewQPochInfGenerator(a, 1, 1, variable, N)
		return g.Value(N)
	}
	if n < 0 {
		return fps.FPS{}, ErrNegativeCount
	}
	// Finite product: build exactly, then re-wrap with the polynomial
	// sentinel so callers see "no O(.) term" per spec §4.5/§6. The exact
	// degree of prod_{k=1}^{n}(1-a q^k) is 1+2+...+n = n(n+1)/2, so every
	// factor is built at an order above that.
	order := n*(n+1)/2 + 1
	exact := fps.Constant(bigrat.QOne, variable, order)
	for k := 1; k <= n; k++ {
		factor := fps.FromCoeffs(map[int]bigrat.Q{0: bigrat.QOne, k: a.Neg()}, variable, order)
		var err error
		if exact, err = fps.Mul(exact, factor); err != nil {
			return fps.FPS{}, err
		}
	}
	return fps.Truncate(exact, fps.PolynomialOrder), nil
}

// Qbin computes the Gaussian binomial coefficient [n choose k]_q =
// (q;q)_n / ((q;q)_k (q;q)_{n-k}), an exact polynomial of degree k(n-k)
// (spec §4.5); computed at the tight order k(n-k)+1 and re-wrapped with
// the polynomial sentinel.
func Qbin(n, k int, variable symtab.ID) (fps.FPS, error) {
	if k < 0 || n < 0 || k > n {
		return fps.Constant(bigrat.QZero, variable, fps.PolynomialOrder), nil
	}
	order := k*(n-k) + 1
	qOne := bigrat.QOne
	num, err := Aqprod(qOne, variable, n, order)
	if err != nil {
		return fps.FPS{}, err
	}
	den1, err := Aqprod(qOne, variable, k, order)
	if err != nil {
		return fps.FPS{}, err
	}
	den2, err := Aqprod(qOne, variable, n-k, order)
	if err != nil {
		return fps.FPS{}, err
	}
	den, err := fps.Mul(fps.Truncate(den1, order), fps.Truncate(den2, order))
	if err != nil {
		return fps.FPS{}, err
	}
	quot, err := fps.Div(fps.Truncate(num, order), den, order)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Truncate(quot, fps.PolynomialOrder), nil
}

// Etaq computes (q^b; q^t)_inf = prod_{k>=0} (1 - q^{b+k*t}), truncated at N.
func Etaq(b, t int, variable symtab.ID, N int) (fps.FPS, error) {
	if t <= 0 {
		return fps.FPS{}, fmt.Errorf("qseries: etaq requires t > 0, got %d", t)
	}
	g := qprod.NewQPochInfGenerator(bigrat.QOne, b, t, variable, N)
	return g.Value(N)
}

// EtaqList computes prod_i (q^{d_i}; q)_inf for a list of offsets d_i,
// i.e. etaq(q,[d1,d2,...],N); an empty list yields the constant series 1.
func EtaqList(offsets []int, variable symtab.ID, N int) (fps.FPS, error) {
	out := fps.Constant(bigrat.QOne, variable, N)
	for _, d := range offsets {
		f, err := Etaq(d, 1, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Mul(out, f)
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}
