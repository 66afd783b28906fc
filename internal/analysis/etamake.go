package analysis

import (
	"sort"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// EtaQuotient is the result of Etamake/Qetamake: f = q^QShift * prod_d
// eta(d*tau)^Factors[d] (Etamake) or prod_d (q^d;q^d)_inf^Factors[d]
// (Qetamake, QShift always 0).
type EtaQuotient struct {
	Factors map[int]bigrat.Q
	QShift  bigrat.Q
}

// Sorted returns the periods d with a nonzero exponent, ascending.
func (e EtaQuotient) Sorted() []int {
	ds := make([]int, 0, len(e.Factors))
	for d := range e.Factors {
		ds = append(ds, d)
	}
	sort.Ints(ds)
	return ds
}

// divisorDeconvolve solves a_n = sum_{d|n} r_d for r_d given a, via the
// triangular recurrence r_n = a_n - sum_{d|n, d<n} r_d. This is the
// Mobius-style step both Etamake and Qetamake share: prodmake's a_n are
// additive over the divisor lattice, one r_d per period.
func divisorDeconvolve(a map[int]bigrat.Q, N int) map[int]bigrat.Q {
	r := map[int]bigrat.Q{}
	for n := 1; n <= N; n++ {
		acc := a[n]
		for d := 1; d < n; d++ {
			if n%d != 0 {
				continue
			}
			acc = acc.Sub(r[d])
		}
		if !acc.IsZero() {
			r[n] = acc
		}
	}
	return r
}

// Etamake extends Prodmake to eta-quotients: writes f = q^s * prod_d
// eta(d*tau)^{r_d} with eta(d*tau) = q^{d/24} (q^d;q^d)_inf, so the
// q^{1/24} prefactors are absorbed into s = sum_d r_d*d/24 (spec §4.6).
func Etamake(f fps.FPS, N int) (EtaQuotient, error) {
	prod, err := Prodmake(f, N)
	if err != nil {
		return EtaQuotient{}, err
	}
	r := divisorDeconvolve(prod.Exponents, N)
	s := bigrat.QZero
	twentyFour := bigrat.QFromInt64(24)
	for d, rd := range r {
		term := rd.Mul(bigrat.QFromInt64(int64(d)))
		term, err := term.Div(twentyFour)
		if err != nil {
			return EtaQuotient{}, err
		}
		s = s.Add(term)
	}
	return EtaQuotient{Factors: r, QShift: s}, nil
}

// Qetamake is Etamake without the eta prefactor: f = prod_d
// (q^d;q^d)_inf^{r_d} directly, so QShift is always 0.
func Qetamake(f fps.FPS, N int) (EtaQuotient, error) {
	prod, err := Prodmake(f, N)
	if err != nil {
		return EtaQuotient{}, err
	}
	r := divisorDeconvolve(prod.Exponents, N)
	return EtaQuotient{Factors: r, QShift: bigrat.QZero}, nil
}
