package analysis

import (
	"sort"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/polyalg"
)

// QProduct is the result of Qfactor: f = Scalar * prod_d (1-q^d)^Factors[d].
type QProduct struct {
	Scalar  bigrat.Q
	Factors map[int]int
	IsExact bool
}

// Sorted returns the divisors d with a nonzero exponent, ascending.
func (p QProduct) Sorted() []int {
	ds := make([]int, 0, len(p.Factors))
	for d := range p.Factors {
		ds = append(ds, d)
	}
	sort.Ints(ds)
	return ds
}

func toPoly(f fps.FPS) (polyalg.Poly, error) {
	deg, ok := fps.QDegree(f)
	if !ok {
		return polyalg.Zero, nil
	}
	coeffs := make([]bigrat.Q, deg+1)
	for i := 0; i <= deg; i++ {
		c, err := f.Coeff(i)
		if err != nil {
			return polyalg.Poly{}, err
		}
		coeffs[i] = c
	}
	return polyalg.New(coeffs...), nil
}

func cyclotomicLike(d int) polyalg.Poly {
	coeffs := make([]bigrat.Q, d+1)
	for i := range coeffs {
		coeffs[i] = bigrat.QZero
	}
	coeffs[0] = bigrat.QOne
	coeffs[d] = bigrat.QOne.Neg()
	return polyalg.New(coeffs...)
}

// Qfactor factors a q-polynomial into s * prod (1-q^d)^e_d by repeated
// exact division against (1-q^d) for d=N,N-1,...,1, largest d first so
// that a product of distinct (1-q^d) is not first broken up by repeated
// division by (1-q) (spec §4.6). IsExact is
// true iff the final residual, once no further (1-q^d) divides evenly
// for any d <= N, is exactly +-1. A nonconstant or non-unit residual
// still yields the factors found so far, with Scalar holding the
// residual's constant term when the residual is in fact constant, or
// its leading coefficient otherwise -- this case is flagged IsExact=false
// ("approximate factorisation", spec §4.6) and is the one Open Question
// the spec leaves for an implementation to decide.
func Qfactor(f fps.FPS, N int) (QProduct, error) {
	p, err := toPoly(f)
	if err != nil {
		return QProduct{}, err
	}
	factors := map[int]int{}
	for d := N; d >= 1; d-- {
		divisor := cyclotomicLike(d)
		for {
			if p.Degree() < d {
				break
			}
			quot, rem, err := polyalg.DivRem(p, divisor)
			if err != nil {
				return QProduct{}, err
			}
			if !rem.IsZero() {
				break
			}
			p = quot
			factors[d]++
		}
	}
	if p.Degree() == 0 {
		s := p.Coeff(0)
		if p.IsZero() {
			s = bigrat.QZero
		}
		exact := s.Cmp(bigrat.QOne) == 0 || s.Cmp(bigrat.QOne.Neg()) == 0
		return QProduct{Scalar: s, Factors: factors, IsExact: exact}, nil
	}
	return QProduct{Scalar: p.LeadingCoeff(), Factors: factors, IsExact: false}, nil
}
