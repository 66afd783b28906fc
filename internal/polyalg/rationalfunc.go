package polyalg

import (
	"errors"
	"fmt"
)

// ErrZeroDenominator guards rational-function construction against a
// zero denominator.
var ErrZeroDenominator = errors.New("polyalg: rational function denominator is zero")

// RationalFunc is num/den in lowest terms: gcd(num,den) is a unit and
// den is monic, mirroring QRatPoly's own canonical-form discipline.
type RationalFunc struct {
	Num, Den Poly
}

// NewRationalFunc builds num/den, reducing by their gcd and normalising
// den to be monic.
func NewRationalFunc(num, den Poly) (RationalFunc, error) {
	if den.IsZero() {
		return RationalFunc{}, ErrZeroDenominator
	}
	if num.IsZero() {
		return RationalFunc{Num: Zero, Den: One}, nil
	}
	g, err := Gcd(num, den)
	if err != nil {
		return RationalFunc{}, err
	}
	if g.IsZero() {
		g = One
	}
	n, err := ExactDiv(num, g)
	if err != nil {
		return RationalFunc{}, err
	}
	d, err := ExactDiv(den, g)
	if err != nil {
		return RationalFunc{}, err
	}
	lc := d.LeadingCoeff()
	n, err = ScalarDiv(n, lc)
	if err != nil {
		return RationalFunc{}, err
	}
	d, err = ScalarDiv(d, lc)
	if err != nil {
		return RationalFunc{}, err
	}
	return RationalFunc{Num: n, Den: d}, nil
}

func (r RationalFunc) String() string {
	if r.Den.Degree() == 0 && r.Den.LeadingCoeff().IsOne() {
		return r.Num.String()
	}
	return fmt.Sprintf("(%s)/(%s)", r.Num.String(), r.Den.String())
}

// AddRF returns r+s in lowest terms.
func AddRF(r, s RationalFunc) (RationalFunc, error) {
	num := Add(Mul(r.Num, s.Den), Mul(s.Num, r.Den))
	den := Mul(r.Den, s.Den)
	return NewRationalFunc(num, den)
}

// SubRF returns r-s in lowest terms.
func SubRF(r, s RationalFunc) (RationalFunc, error) {
	num := Sub(Mul(r.Num, s.Den), Mul(s.Num, r.Den))
	den := Mul(r.Den, s.Den)
	return NewRationalFunc(num, den)
}

// MulRF returns r*s, cross-cancelling against gcd(r.Num,s.Den) and
// gcd(s.Num,r.Den) before the final reduction so intermediate
// coefficients stay as small as possible.
func MulRF(r, s RationalFunc) (RationalFunc, error) {
	g1, err := Gcd(r.Num, s.Den)
	if err != nil {
		return RationalFunc{}, err
	}
	g2, err := Gcd(s.Num, r.Den)
	if err != nil {
		return RationalFunc{}, err
	}
	if g1.IsZero() {
		g1 = One
	}
	if g2.IsZero() {
		g2 = One
	}
	rNum, err := ExactDiv(r.Num, g1)
	if err != nil {
		return RationalFunc{}, err
	}
	sDen, err := ExactDiv(s.Den, g1)
	if err != nil {
		return RationalFunc{}, err
	}
	sNum, err := ExactDiv(s.Num, g2)
	if err != nil {
		return RationalFunc{}, err
	}
	rDen, err := ExactDiv(r.Den, g2)
	if err != nil {
		return RationalFunc{}, err
	}
	return NewRationalFunc(Mul(rNum, sNum), Mul(sDen, rDen))
}

// DivRF returns r/s.
func DivRF(r, s RationalFunc) (RationalFunc, error) {
	if s.Num.IsZero() {
		return RationalFunc{}, ErrZeroDenominator
	}
	return MulRF(r, RationalFunc{Num: s.Den, Den: s.Num})
}
