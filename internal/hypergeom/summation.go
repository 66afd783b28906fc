package hypergeom

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// Param is one hypergeometric parameter: either an ordinary monomial
// c*q^p (p >= 0), or the terminating marker q^{-n}. Only upper
// parameters may terminate; try_summation is the only place this
// package interprets a terminating parameter, since the FPS core has no
// representation for q^{-n} itself (spec §3's nonnegative-exponent
// rule) -- the theorems below are matched and their closed forms
// produced using only ordinary, nonnegative monomials.
type Param struct {
	Mono         Mono
	Terminating  bool
	N            int
}

// Ordinary wraps a plain monomial parameter.
func Ordinary(m Mono) Param { return Param{Mono: m} }

// TermParam marks the upper parameter q^{-n}.
func TermParam(n int) Param { return Param{Terminating: true, N: n} }

func monoEq(a, b Mono) bool { return a.Coeff.Cmp(b.Coeff) == 0 && a.Pow == b.Pow }

func monoMul(a, b Mono) Mono { return Mono{Coeff: a.Coeff.Mul(b.Coeff), Pow: a.Pow + b.Pow} }

func monoDiv(a, b Mono) (Mono, bool) {
	if b.Coeff.IsZero() {
		return Mono{}, false
	}
	inv, err := b.Coeff.Recip()
	if err != nil {
		return Mono{}, false
	}
	pow := a.Pow - b.Pow
	if pow < 0 {
		return Mono{}, false
	}
	return Mono{Coeff: a.Coeff.Mul(inv), Pow: pow}, true
}

func monoPow(a Mono, n int) Mono {
	c, _ := a.Coeff.PowSigned(n)
	return Mono{Coeff: c, Pow: a.Pow * n}
}

// qInf computes (m;q)_inf as an FPS.
func qInf(m Mono, variable symtab.ID, N int) (fps.FPS, error) {
	return qInfProdOffset(m.Coeff, m.Pow, 1, variable, N)
}

// finitePoch computes (m;q)_n as a polynomial.
func finitePoch(m Mono, n int, variable symtab.ID, N int) (fps.FPS, error) {
	return finitePochhammer(m, n, variable, N)
}

// TrySummation attempts, in order, the q-Gauss, q-Vandermonde (two
// forms), q-Saalschütz and q-Kummer matches against (upper, lower, z);
// on a match it returns the closed-form FPS and true, otherwise
// (fps.FPS{}, false, nil) (spec §4.9). The well-poised q-Dixon sum is
// not attempted: its balancing condition couples a square-root-of-a
// parameter this package's plain Mono representation has no slot for,
// so matching it correctly would need a parameter type richer than the
// terminating-marker Param used here.
func TrySummation(upper, lower []Param, z Mono, variable symtab.ID, N int) (fps.FPS, bool, error) {
	if f, ok, err := tryQGauss(upper, lower, z, variable, N); ok || err != nil {
		return f, ok, err
	}
	if f, ok, err := tryQVandermonde(upper, lower, z, variable, N); ok || err != nil {
		return f, ok, err
	}
	if f, ok, err := tryQSaalschutz(upper, lower, z, variable, N); ok || err != nil {
		return f, ok, err
	}
	if f, ok, err := tryQKummer(upper, lower, z, variable, N); ok || err != nil {
		return f, ok, err
	}
	return fps.FPS{}, false, nil
}

// tryQGauss matches 2φ1(a,b;c;q,c/(ab)) = (c/a;q)_∞(c/b;q)_∞ / ((c;q)_∞(c/(ab);q)_∞).
func tryQGauss(upper, lower []Param, z Mono, variable symtab.ID, N int) (fps.FPS, bool, error) {
	if len(upper) != 2 || len(lower) != 1 || upper[0].Terminating || upper[1].Terminating {
		return fps.FPS{}, false, nil
	}
	a, b, c := upper[0].Mono, upper[1].Mono, lower[0].Mono
	ab := monoMul(a, b)
	cOverAB, ok := monoDiv(c, ab)
	if !ok || !monoEq(cOverAB, z) {
		return fps.FPS{}, false, nil
	}
	cOverA, ok1 := monoDiv(c, a)
	cOverB, ok2 := monoDiv(c, b)
	if !ok1 || !ok2 {
		return fps.FPS{}, false, nil
	}
	n1, err := qInf(cOverA, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	n2, err := qInf(cOverB, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	d1, err := qInf(c, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	d2, err := qInf(cOverAB, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	num, err := fps.Mul(n1, n2)
	if err != nil {
		return fps.FPS{}, false, err
	}
	den, err := fps.Mul(d1, d2)
	if err != nil {
		return fps.FPS{}, false, err
	}
	res, err := fps.Div(num, den, N)
	return res, true, err
}

// tryQVandermonde matches the two terminating q-Vandermonde forms:
//
//	2φ1(q^-n,b;c;q,q)          = (c/b;q)_n/(c;q)_n * b^n
//	2φ1(q^-n,b;c;q,c q^n / b)  = (c/b;q)_n/(c;q)_n
func tryQVandermonde(upper, lower []Param, z Mono, variable symtab.ID, N int) (fps.FPS, bool, error) {
	if len(upper) != 2 || len(lower) != 1 || !upper[0].Terminating {
		return fps.FPS{}, false, nil
	}
	n := upper[0].N
	b, c := upper[1].Mono, lower[0].Mono
	cOverB, ok := monoDiv(c, b)
	if !ok {
		return fps.FPS{}, false, nil
	}
	num, err := finitePoch(cOverB, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	den, err := finitePoch(c, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	ratio, err := fps.Div(fps.CapOrder(num, N), fps.CapOrder(den, N), N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	q1 := Mono{Coeff: bigrat.QOne, Pow: 1}
	if monoEq(z, q1) {
		bn := monoPow(b, n)
		mono, err := fps.Monomial(bn.Coeff, bn.Pow, variable, N)
		if err != nil {
			return fps.FPS{}, false, err
		}
		res, err := fps.Mul(ratio, mono)
		return res, true, err
	}
	cqnOverB, ok := monoDiv(monoMul(c, Mono{Coeff: bigrat.QOne, Pow: n}), b)
	if ok && monoEq(z, cqnOverB) {
		return ratio, true, nil
	}
	return fps.FPS{}, false, nil
}

// tryQSaalschutz matches the terminating balanced
//
//	3φ2(q^-n,a,b; c, ab q^{1-n}/c; q,q) = (c/a;q)_n(c/b;q)_n / ((c;q)_n(c/(ab);q)_n)
func tryQSaalschutz(upper, lower []Param, z Mono, variable symtab.ID, N int) (fps.FPS, bool, error) {
	if len(upper) != 3 || len(lower) != 2 || !upper[0].Terminating {
		return fps.FPS{}, false, nil
	}
	n := upper[0].N
	a, b := upper[1].Mono, upper[2].Mono
	c, d := lower[0].Mono, lower[1].Mono
	q1 := Mono{Coeff: bigrat.QOne, Pow: 1}
	if !monoEq(z, q1) {
		return fps.FPS{}, false, nil
	}
	ab := monoMul(a, b)
	expectD := Mono{Coeff: ab.Coeff, Pow: ab.Pow + 1 - n}
	expectD, ok := monoDiv(expectD, c)
	if !ok || !monoEq(d, expectD) {
		return fps.FPS{}, false, nil
	}
	cOverA, ok1 := monoDiv(c, a)
	cOverB, ok2 := monoDiv(c, b)
	cOverAB, ok3 := monoDiv(c, ab)
	if !ok1 || !ok2 || !ok3 {
		return fps.FPS{}, false, nil
	}
	n1, err := finitePoch(cOverA, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	n2, err := finitePoch(cOverB, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	d1, err := finitePoch(c, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	d2, err := finitePoch(cOverAB, n, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	num, err := fps.Mul(fps.CapOrder(n1, N), fps.CapOrder(n2, N))
	if err != nil {
		return fps.FPS{}, false, err
	}
	den, err := fps.Mul(fps.CapOrder(d1, N), fps.CapOrder(d2, N))
	if err != nil {
		return fps.FPS{}, false, err
	}
	res, err := fps.Div(num, den, N)
	return res, true, err
}

// tryQKummer matches the Bailey-Daum q-Kummer sum
//
//	2φ1(a,b;aq/b;q,-q/b) = (aq;q^2)_∞(aq^2/b^2;q^2)_∞(-q;q)_∞ / ((aq/b;q)_∞(-q/b;q)_∞)
func tryQKummer(upper, lower []Param, z Mono, variable symtab.ID, N int) (fps.FPS, bool, error) {
	if len(upper) != 2 || len(lower) != 1 || upper[0].Terminating || upper[1].Terminating {
		return fps.FPS{}, false, nil
	}
	a, b := upper[0].Mono, upper[1].Mono
	q1 := Mono{Coeff: bigrat.QOne, Pow: 1}
	aq := monoMul(a, q1)
	aqOverB, ok := monoDiv(aq, b)
	if !ok || !monoEq(lower[0].Mono, aqOverB) {
		return fps.FPS{}, false, nil
	}
	expectZ, ok := monoDiv(Mono{Coeff: bigrat.QOne.Neg(), Pow: 1}, b)
	if !ok || !monoEq(z, expectZ) {
		return fps.FPS{}, false, nil
	}
	aq2 := Mono{Coeff: a.Coeff, Pow: a.Pow + 2}
	b2 := monoPow(b, 2)
	aq2OverB2, ok := monoDiv(aq2, b2)
	if !ok {
		return fps.FPS{}, false, nil
	}
	n1, err := qInfProdOffset(aq.Coeff, aq.Pow, 2, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	n2, err := qInfProdOffset(aq2OverB2.Coeff, aq2OverB2.Pow, 2, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	n3, err := qInf(Mono{Coeff: bigrat.QOne.Neg(), Pow: 1}, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	den, err := qInf(expectZ, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	dAqOverB, err := qInf(aqOverB, variable, N)
	if err != nil {
		return fps.FPS{}, false, err
	}
	if den, err = fps.Mul(den, dAqOverB); err != nil {
		return fps.FPS{}, false, err
	}
	num, err := fps.Mul(n1, n2)
	if err != nil {
		return fps.FPS{}, false, err
	}
	num, err = fps.Mul(num, n3)
	if err != nil {
		return fps.FPS{}, false, err
	}
	res, err := fps.Div(num, den, N)
	return res, true, err
}
