package qseries

import (
	"errors"
	"fmt"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/qprod"
	"qkangaroo/internal/symtab"
)

// ErrZeroParameter is returned when a product identity's parameter would
// require dividing by zero (e.g. jacprod/winquist/quinprod with a=0).
var ErrZeroParameter = errors.New("qseries: parameter must be nonzero")

func pochInfOffset(c bigrat.Q, offset, step int, variable symtab.ID, N int) (fps.FPS, error) {
	return qprod.NewQPochInfGenerator(c, offset, step, variable, N).Value(N)
}

func recip(c bigrat.Q) (bigrat.Q, error) {
	r, err := c.Recip()
	if err != nil {
		return bigrat.Q{}, ErrZeroParameter
	}
	return r, nil
}

// TripleProd computes the Jacobi triple product (z;q)_inf (q/z;q)_inf
// (q;q)_inf for z = Coeff*q^Pow, requiring 0 <= Pow <= 1 so that both
// factors stay within this core's nonnegative-exponent rule (spec §3).
func TripleProd(z Mono, variable symtab.ID, N int) (fps.FPS, error) {
	if z.Pow < 0 || z.Pow > 1 {
		return fps.FPS{}, fmt.Errorf("qseries: tripleprod requires monomial z with 0<=pow<=1, got q^%d", z.Pow)
	}
	invC, err := recip(z.Coeff)
	if err != nil {
		return fps.FPS{}, err
	}
	p1, err := pochInfOffset(z.Coeff, z.Pow, 1, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	p2, err := pochInfOffset(invC, 1-z.Pow, 1, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	p3, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	prod, err := fps.Mul(p1, p2)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Mul(prod, p3)
}

// QuinProd computes the product side of the quintuple product identity
// for z = Coeff*q^0 (a rational constant -- see spec §3's bivariate note):
//
//	(q;q)_inf (zq;q)_inf (z^-1;q)_inf (z^2 q;q^2)_inf (z^-2 q;q^2)_inf
func QuinProd(z bigrat.Q, variable symtab.ID, N int) (fps.FPS, error) {
	invZ, err := recip(z)
	if err != nil {
		return fps.FPS{}, err
	}
	z2 := z.Mul(z)
	invZ2, err := recip(z2)
	if err != nil {
		return fps.FPS{}, err
	}
	factors := []struct {
		coeff          bigrat.Q
		offset, step   int
	}{
		{z, 1, 1},
		{invZ, 0, 1},
		{z2, 1, 2},
		{invZ2, 1, 2},
	}
	out, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	for _, f := range factors {
		p, err := pochInfOffset(f.coeff, f.offset, f.step, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Mul(out, p)
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}

// Winquist computes Winquist's ten-factor product
//
//	(a;q)_inf (q/a;q)_inf (b;q)_inf (q/b;q)_inf (ab;q)_inf (q/(ab);q)_inf
//	(a/b;q)_inf (bq/a;q)_inf (q;q)_inf^2
func Winquist(a, b bigrat.Q, variable symtab.ID, N int) (fps.FPS, error) {
	invA, err := recip(a)
	if err != nil {
		return fps.FPS{}, err
	}
	invB, err := recip(b)
	if err != nil {
		return fps.FPS{}, err
	}
	ab := a.Mul(b)
	invAB, err := recip(ab)
	if err != nil {
		return fps.FPS{}, err
	}
	aOverB := a.Mul(invB)
	bOverA := b.Mul(invA)

	type factor struct {
		coeff        bigrat.Q
		offset, step int
	}
	factors := []factor{
		{a, 0, 1}, {invA, 1, 1},
		{b, 0, 1}, {invB, 1, 1},
		{ab, 0, 1}, {invAB, 1, 1},
		{aOverB, 0, 1}, {bOverA, 1, 1},
	}
	out, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	euler2, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	out, err = fps.Mul(out, euler2)
	if err != nil {
		return fps.FPS{}, err
	}
	for _, f := range factors {
		p, err := pochInfOffset(f.coeff, f.offset, f.step, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Mul(out, p)
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}

// Jac computes Garvan's JAC(a,b) = (q^a;q^b)_inf (q^{b-a};q^b)_inf (q^b;q^b)_inf,
// requiring 0 <= a < b so that b-a stays nonnegative.
func Jac(a, b int, variable symtab.ID, N int) (fps.FPS, error) {
	if a < 0 || b <= 0 || a >= b {
		return fps.FPS{}, fmt.Errorf("qseries: jac requires 0<=a<b, got a=%d b=%d", a, b)
	}
	p1, err := Etaq(a, b, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	p2, err := Etaq(b-a, b, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	p3, err := Etaq(b, b, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	out, err := fps.Mul(p1, p2)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Mul(out, p3)
}

// Jacprod computes Garvan's jacprod(a,b,q,N) = JAC(a,b)/JAC(b,3b), the
// normalised two-parameter Jacobi theta product (spec §4.5).
func Jacprod(a, b int, variable symtab.ID, N int) (fps.FPS, error) {
	num, err := Jac(a, b, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	den, err := Jac(b, 3*b, variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Div(num, den, N)
}

// Theta3 computes sum_{n in Z} q^{n^2} = 1 + 2 sum_{n>=1} q^{n^2}.
func Theta3(variable symtab.ID, N int) (fps.FPS, error) {
	coeffs := map[int]bigrat.Q{0: bigrat.QOne}
	two := bigrat.QFromInt64(2)
	for n := 1; n*n < N; n++ {
		coeffs[n*n] = two
	}
	return fps.FromCoeffs(coeffs, variable, N), nil
}

// Theta4 computes sum_{n in Z} (-1)^n q^{n^2} = 1 + 2 sum_{n>=1} (-1)^n q^{n^2}.
func Theta4(variable symtab.ID, N int) (fps.FPS, error) {
	coeffs := map[int]bigrat.Q{0: bigrat.QOne}
	two := bigrat.QFromInt64(2)
	for n := 1; n*n < N; n++ {
		c := two
		if n%2 != 0 {
			c = two.Neg()
		}
		coeffs[n*n] = c
	}
	return fps.FromCoeffs(coeffs, variable, N), nil
}

// Theta2Core computes the core series 2*sum_{n>=0} q^{n(n+1)} of
// theta2(q) = 2*q^{1/4}*sum_{n>=0} q^{n(n+1)}; the q^{1/4} prefactor is a
// fractional shift applied by the caller/display layer, not part of this
// univariate-in-q core series (spec §4.5's theta2 note).
func Theta2Core(variable symtab.ID, N int) (fps.FPS, error) {
	two := bigrat.QFromInt64(2)
	coeffs := map[int]bigrat.Q{}
	for n := 0; n*(n+1) < N; n++ {
		coeffs[n*(n+1)] = two
	}
	return fps.FromCoeffs(coeffs, variable, N), nil
}
