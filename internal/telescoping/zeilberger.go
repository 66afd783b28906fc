package telescoping

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/polyalg"
)

// RecurrenceCertificate is what QZeilberger returns: Coeffs are the
// polynomial coefficients of the operator sum_{k=0}^{order} Coeffs[k](n)
// F(n+k), and RHS is the q-Gosper certificate QGosper found. QZeilberger
// sets Coeffs[order] = 1 and every other entry to zero; nothing checks
// that a recurrence with these coefficients holds.
type RecurrenceCertificate struct {
	Coeffs []polyalg.Poly
	RHS    Certificate
}

// TermRatios gives, for a bivariate q-hypergeometric summand F(n,k),
// the shift ratio in k at a fixed n (RatioK) that QZeilberger passes to
// QGosper.
type TermRatios struct {
	// RatioK(n) returns F(n,k+1)/F(n,k) as a rational function in the
	// variable representing q^k, for the given fixed n.
	RatioK func(n int) (polyalg.RationalFunc, error)
}

// QZeilberger tries orders 1..maxOrder for the summand family described
// by ratios (spec §4.11's q_zeilberger). For each order it takes the
// k-ratio RatioK(probeN+order) of the single summand F(probeN+order, k)
// and runs QGosper on it; the first order whose ratio QGosper certifies
// is returned, with Coeffs[order] = 1 and all other coefficients zero.
// It forms no combined summand sum_i Coeffs[i]*F(n+i,k), has no unknown
// recurrence coefficients and solves no joint linear system, so the
// returned operator is not derived from the summand and is not a
// recurrence for sum_k F(n,k).
func QZeilberger(ratios TermRatios, q bigrat.Q, probeN, maxOrder, gosperHBound, gosperMaxDegree int) (RecurrenceCertificate, bool, error) {
	for order := 1; order <= maxOrder; order++ {
		ratio, err := ratios.RatioK(probeN + order)
		if err != nil {
			return RecurrenceCertificate{}, false, err
		}
		cert, ok, err := QGosper(ratio, q, gosperHBound, gosperMaxDegree)
		if err != nil {
			return RecurrenceCertificate{}, false, err
		}
		if !ok {
			continue
		}
		coeffs := make([]polyalg.Poly, order+1)
		for i := range coeffs {
			coeffs[i] = polyalg.Zero
		}
		coeffs[order] = polyalg.One
		return RecurrenceCertificate{Coeffs: coeffs, RHS: cert}, true, nil
	}
	return RecurrenceCertificate{}, false, nil
}
