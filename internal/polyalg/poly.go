// Package polyalg implements the dense rational-coefficient polynomial
// algebra of spec §4.8: QRatPoly with Euclidean/pseudo-division,
// content/primitive-part/monic normalisation, a primitive-PRS GCD (there
// is no subresultant-PRS variant), the Euclidean resultant, the q-shift operator, and the auto-reducing
// QRatRationalFunc built on top. This feeds the q-Gosper/q-Zeilberger/
// q-Petkovsek pipeline in internal/telescoping.
package polyalg

import (
	"errors"
	"fmt"
	"strings"

	"qkangaroo/internal/bigrat"
)

// ErrDivisorZero guards division operations against a zero divisor.
var ErrDivisorZero = errors.New("polyalg: division by the zero polynomial")

// Poly is a dense rational-coefficient polynomial in ascending-degree
// order. Canonical form: the empty slice is the zero polynomial; the
// last entry, when present, is always nonzero. Every constructor and
// arithmetic op normalises via trim.
type Poly struct {
	c []bigrat.Q
}

func trim(c []bigrat.Q) []bigrat.Q {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

// New builds a polynomial from ascending-degree coefficients, normalising.
func New(coeffs ...bigrat.Q) Poly {
	cp := make([]bigrat.Q, len(coeffs))
	copy(cp, coeffs)
	return Poly{c: trim(cp)}
}

// Zero is the zero polynomial.
var Zero = Poly{}

// One is the constant polynomial 1.
var One = New(bigrat.QOne)

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Poly) Degree() int { return len(p.c) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.c) == 0 }

// Coeff returns the coefficient of x^i, or zero if i is out of range.
func (p Poly) Coeff(i int) bigrat.Q {
	if i < 0 || i >= len(p.c) {
		return bigrat.QZero
	}
	return p.c[i]
}

// LeadingCoeff returns the coefficient of the highest-degree term, or
// zero for the zero polynomial.
func (p Poly) LeadingCoeff() bigrat.Q {
	if p.IsZero() {
		return bigrat.QZero
	}
	return p.c[len(p.c)-1]
}

// Coeffs returns a defensive copy of the ascending-degree coefficients.
func (p Poly) Coeffs() []bigrat.Q {
	out := make([]bigrat.Q, len(p.c))
	copy(out, p.c)
	return out
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.c) - 1; i >= 0; i-- {
		c := p.c[i]
		if c.IsZero() {
			continue
		}
		if !first {
			if c.Sign() < 0 {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
		} else if c.Sign() < 0 {
			b.WriteString("-")
		}
		abs := c
		if c.Sign() < 0 {
			abs = c.Neg()
		}
		switch {
		case i == 0:
			b.WriteString(abs.String())
		case abs.IsOne():
			fmt.Fprintf(&b, "x^%d", i)
			if i == 1 {
				b.Reset()
				b.WriteString("x")
			}
		default:
			fmt.Fprintf(&b, "%s*x^%d", abs.String(), i)
		}
		first = false
	}
	return b.String()
}

// Add returns p+q.
func Add(p, q Poly) Poly {
	n := len(p.c)
	if len(q.c) > n {
		n = len(q.c)
	}
	out := make([]bigrat.Q, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	return Poly{c: trim(out)}
}

// Sub returns p-q.
func Sub(p, q Poly) Poly { return Add(p, Neg(q)) }

// Neg returns -p.
func Neg(p Poly) Poly {
	out := make([]bigrat.Q, len(p.c))
	for i, c := range p.c {
		out[i] = c.Neg()
	}
	return Poly{c: out}
}

// Mul returns p*q via schoolbook convolution.
func Mul(p, q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Zero
	}
	out := make([]bigrat.Q, len(p.c)+len(q.c)-1)
	for i := range out {
		out[i] = bigrat.QZero
	}
	for i, a := range p.c {
		if a.IsZero() {
			continue
		}
		for j, b := range q.c {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return Poly{c: trim(out)}
}

// ScalarMul returns p scaled by c.
func ScalarMul(p Poly, c bigrat.Q) Poly {
	if c.IsZero() {
		return Zero
	}
	out := make([]bigrat.Q, len(p.c))
	for i, a := range p.c {
		out[i] = a.Mul(c)
	}
	return Poly{c: trim(out)}
}

// ScalarDiv returns p/c; fails if c is zero.
func ScalarDiv(p Poly, c bigrat.Q) (Poly, error) {
	if c.IsZero() {
		return Poly{}, bigrat.ErrDivByZero
	}
	inv, err := c.Recip()
	if err != nil {
		return Poly{}, err
	}
	return ScalarMul(p, inv), nil
}

// Eval evaluates p(x) at x via Horner's method, returning an exact Q.
func Eval(p Poly, x bigrat.Q) bigrat.Q {
	acc := bigrat.QZero
	for i := len(p.c) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.c[i])
	}
	return acc
}

// DivRem performs Euclidean division p = d*quot + rem with deg(rem) <
// deg(d); requires d nonzero.
func DivRem(p, d Poly) (quot, rem Poly, err error) {
	if d.IsZero() {
		return Poly{}, Poly{}, ErrDivisorZero
	}
	rem = Poly{c: append([]bigrat.Q(nil), p.c...)}
	degD := d.Degree()
	lcD := d.LeadingCoeff()
	quotCoeffs := make([]bigrat.Q, 0)
	for rem.Degree() >= degD && !rem.IsZero() {
		shift := rem.Degree() - degD
		factor, err := rem.LeadingCoeff().Div(lcD)
		if err != nil {
			return Poly{}, Poly{}, err
		}
		for len(quotCoeffs) <= shift {
			quotCoeffs = append(quotCoeffs, bigrat.QZero)
		}
		quotCoeffs[shift] = factor
		sub := ScalarMul(shiftUp(d, shift), factor)
		rem = Sub(rem, sub)
	}
	return Poly{c: trim(quotCoeffs)}, rem, nil
}

// ExactDiv performs DivRem and additionally asserts a zero remainder.
func ExactDiv(p, d Poly) (Poly, error) {
	q, r, err := DivRem(p, d)
	if err != nil {
		return Poly{}, err
	}
	if !r.IsZero() {
		return Poly{}, fmt.Errorf("polyalg: exact division left nonzero remainder %s", r.String())
	}
	return q, nil
}

func shiftUp(p Poly, k int) Poly {
	if p.IsZero() || k == 0 {
		return p
	}
	out := make([]bigrat.Q, len(p.c)+k)
	for i := range out[:k] {
		out[i] = bigrat.QZero
	}
	copy(out[k:], p.c)
	return Poly{c: out}
}

// PseudoRem computes the fraction-free pseudo-remainder of p by d:
// lc(d)^(deg(p)-deg(d)+1) * p mod d, used inside Gcd's primitive PRS so
// that intermediate coefficients in a GCD computation stay in Q without
// ever actually needing non-exact division.
func PseudoRem(p, d Poly) (Poly, error) {
	if d.IsZero() {
		return Poly{}, ErrDivisorZero
	}
	if p.Degree() < d.Degree() {
		return p, nil
	}
	delta := p.Degree() - d.Degree() + 1
	lcD := d.LeadingCoeff()
	scale, err := lcD.PowSigned(delta)
	if err != nil {
		return Poly{}, err
	}
	scaled := ScalarMul(p, scale)
	_, rem, err := DivRem(scaled, d)
	if err != nil {
		return Poly{}, err
	}
	return rem, nil
}

// Content returns the gcd of the numerators of p's coefficients over the
// lcm of their denominators -- in effect the largest rational r such that
// p/r has integer, content-1 coefficients. Returns 1 for the zero polynomial.
func Content(p Poly) bigrat.Q {
	if p.IsZero() {
		return bigrat.QOne
	}
	lcmDen := bigrat.ZOne
	for _, c := range p.c {
		if c.IsZero() {
			continue
		}
		d := c.Denom()
		g := lcmDen.Gcd(d)
		q, _, _ := lcmDen.Mul(d).DivMod(g)
		lcmDen = q
	}
	gcdNum := bigrat.ZZero
	for _, c := range p.c {
		if c.IsZero() {
			continue
		}
		scaled := c.Mul(bigrat.QFromZ(lcmDen)).Numer()
		gcdNum = gcdNum.Gcd(scaled)
	}
	if gcdNum.IsZero() {
		gcdNum = bigrat.ZOne
	}
	cont, err := bigrat.QFromZ(gcdNum).Div(bigrat.QFromZ(lcmDen))
	if err != nil {
		return bigrat.QOne
	}
	return cont
}

// PrimitivePart returns p / Content(p), a polynomial with content 1.
func PrimitivePart(p Poly) Poly {
	if p.IsZero() {
		return p
	}
	cont := Content(p)
	out, err := ScalarDiv(p, cont)
	if err != nil {
		return p
	}
	return out
}

// MakeMonic returns p scaled so its leading coefficient is 1.
func MakeMonic(p Poly) (Poly, error) {
	if p.IsZero() {
		return p, nil
	}
	return ScalarDiv(p, p.LeadingCoeff())
}

// QShift returns p(q^j * x): coefficient c_i is scaled by q^(i*j) where q
// is given as a rational value (spec §4.8's q-shift p(x) -> p(q^j x)).
func QShift(p Poly, q bigrat.Q, j int) (Poly, error) {
	out := make([]bigrat.Q, len(p.c))
	for i, c := range p.c {
		scale, err := q.PowSigned(i * j)
		if err != nil {
			return Poly{}, err
		}
		out[i] = c.Mul(scale)
	}
	return Poly{c: trim(out)}, nil
}
