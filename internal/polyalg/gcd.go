package polyalg

import "qkangaroo/internal/bigrat"

// Gcd computes gcd(p, q) via the fraction-free pseudo-remainder
// sequence, taking the primitive part after every step so coefficients
// never grow beyond the size a plain Euclidean algorithm over Q would
// need. Over a field of fractions this primitive-PRS form is exact and
// simpler than tracking the subresultant scaling factors; it just does
// a little more gcd work on the coefficients themselves. Returns a
// monic result, or the zero polynomial only when both inputs are zero.
func Gcd(p, q Poly) (Poly, error) {
	if p.IsZero() {
		return MakeMonic(PrimitivePart(q))
	}
	if q.IsZero() {
		return MakeMonic(PrimitivePart(p))
	}
	a, b := PrimitivePart(p), PrimitivePart(q)
	if a.Degree() < b.Degree() {
		a, b = b, a
	}
	for !b.IsZero() {
		rem, err := PseudoRem(a, b)
		if err != nil {
			return Poly{}, err
		}
		a, b = b, PrimitivePart(rem)
	}
	return MakeMonic(a)
}

// Resultant computes Res(p, q) via the recursive Euclidean-PRS formula:
// res(p,q) = (-1)^(deg p * deg q) * lc(q)^(deg p - deg r) * res(q, r)
// where r = p mod q, with the usual base cases for degree 0 / zero
// polynomials (spec §4.8).
func Resultant(p, q Poly) (bigrat.Q, error) {
	if p.IsZero() || q.IsZero() {
		return bigrat.QZero, nil
	}
	if q.Degree() == 0 {
		r, err := q.LeadingCoeff().PowSigned(p.Degree())
		if err != nil {
			return bigrat.Q{}, err
		}
		return r, nil
	}
	_, rem, err := DivRem(p, q)
	if err != nil {
		return bigrat.Q{}, err
	}
	sub, err := Resultant(q, rem)
	if err != nil {
		return bigrat.Q{}, err
	}
	lcQ := q.LeadingCoeff()
	degDrop := p.Degree() - rem.Degree()
	if rem.IsZero() {
		degDrop = p.Degree() - q.Degree()
	}
	scale, err := lcQ.PowSigned(degDrop)
	if err != nil {
		return bigrat.Q{}, err
	}
	sign := bigrat.QOne
	if (p.Degree()*q.Degree())%2 != 0 {
		sign = sign.Neg()
	}
	return sign.Mul(scale).Mul(sub), nil
}
