// Package fps implements the sparse truncated formal power series that
// every q-series algorithm in this module is built on (spec §3 "Formal
// power series (FPS)", §4.3). An FPS is a value type: coeffs is owned by
// the struct and never aliased between instances, mirroring the way the
// teacher's ntru.IntPoly owns its []*big.Int slice.
package fps

import (
	"errors"
	"fmt"
	"sort"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/symtab"
)

// PolynomialOrder is the sentinel truncation order marking an FPS as an
// exact finite polynomial rather than a series known only mod q^trunc.
// See spec §3 and §9: nothing may iterate up to this value.
const PolynomialOrder = 1_000_000_000

var (
	// ErrOutOfRange is returned by Coeff when k is outside [0, trunc).
	ErrOutOfRange = errors.New("fps: exponent out of range")
	// ErrVariableMismatch is returned when combining series in different symbols.
	ErrVariableMismatch = errors.New("fps: mismatched variable")
	// ErrZeroConstantTerm is returned by Invert when coeff(0) == 0.
	ErrZeroConstantTerm = errors.New("fps: zero constant term has no inverse")
	// ErrNegativeExponent guards constructors that accept an exponent.
	ErrNegativeExponent = errors.New("fps: negative exponent")
)

// FPS is a sparse power series Sum coeffs[k]*q^k + O(q^trunc) in one symbol.
type FPS struct {
	variable symtab.ID
	coeffs   map[int]bigrat.Q
	trunc    int
}

// Variable returns the symbol id this series is expressed in.
func (f FPS) Variable() symtab.ID { return f.variable }

// TruncationOrder returns trunc (possibly PolynomialOrder).
func (f FPS) TruncationOrder() int { return f.trunc }

// IsPolynomial reports whether f carries the exact-polynomial sentinel.
func (f FPS) IsPolynomial() bool { return f.trunc == PolynomialOrder }

// Zero returns the zero series, truncated at trunc.
func Zero(variable symtab.ID, trunc int) FPS {
	return FPS{variable: variable, coeffs: map[int]bigrat.Q{}, trunc: trunc}
}

// Constant returns the constant series c, truncated at trunc.
func Constant(c bigrat.Q, variable symtab.ID, trunc int) FPS {
	f := Zero(variable, trunc)
	if !c.IsZero() && trunc > 0 {
		f.coeffs[0] = c
	}
	return f
}

// Monomial returns c*q^e, requiring 0 <= e < trunc (e may equal
// PolynomialOrder's range too, but callers normally pass a real order).
func Monomial(c bigrat.Q, e int, variable symtab.ID, trunc int) (FPS, error) {
	if e < 0 {
		return FPS{}, ErrNegativeExponent
	}
	if e >= trunc {
		return FPS{}, fmt.Errorf("fps: exponent %d >= trunc %d: %w", e, trunc, ErrOutOfRange)
	}
	f := Zero(variable, trunc)
	if !c.IsZero() {
		f.coeffs[e] = c
	}
	return f, nil
}

// FromCoeffs builds a series from an exponent->coefficient map, dropping
// zero entries and any entry outside [0, trunc).
func FromCoeffs(coeffs map[int]bigrat.Q, variable symtab.ID, trunc int) FPS {
	f := Zero(variable, trunc)
	for k, c := range coeffs {
		if k < 0 || k >= trunc || c.IsZero() {
			continue
		}
		f.coeffs[k] = c
	}
	return f
}

// Coeff returns the coefficient of q^k. Fails with ErrOutOfRange if k is
// outside the known-exact range [0, trunc).
func (f FPS) Coeff(k int) (bigrat.Q, error) {
	if k < 0 || k >= f.trunc {
		return bigrat.Q{}, fmt.Errorf("fps: coeff(%d) with trunc %d: %w", k, f.trunc, ErrOutOfRange)
	}
	if c, ok := f.coeffs[k]; ok {
		return c, nil
	}
	return bigrat.QZero, nil
}

// IsZero reports whether every coefficient is zero.
func (f FPS) IsZero() bool { return len(f.coeffs) == 0 }

// Term is one (exponent, nonzero coefficient) pair.
type Term struct {
	Exp   int
	Coeff bigrat.Q
}

// Terms returns the nonzero terms in ascending exponent order.
func (f FPS) Terms() []Term {
	out := make([]Term, 0, len(f.coeffs))
	for k, c := range f.coeffs {
		out = append(out, Term{Exp: k, Coeff: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exp < out[j].Exp })
	return out
}

// TermsDesc returns the nonzero terms in descending exponent order; used
// by the display layer (spec §6: FPS print highest exponent first).
func (f FPS) TermsDesc() []Term {
	t := f.Terms()
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		t[i], t[j] = t[j], t[i]
	}
	return t
}

func checkVariable(a, b FPS) error {
	if a.variable != b.variable {
		return ErrVariableMismatch
	}
	return nil
}

func minTrunc(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Add returns a+b; requires a.Variable() == b.Variable(); result trunc is
// min(a.trunc, b.trunc).
func Add(a, b FPS) (FPS, error) {
	if err := checkVariable(a, b); err != nil {
		return FPS{}, err
	}
	trunc := minTrunc(a.trunc, b.trunc)
	out := Zero(a.variable, trunc)
	for k, c := range a.coeffs {
		if k < trunc {
			out.coeffs[k] = c
		}
	}
	for k, c := range b.coeffs {
		if k >= trunc {
			continue
		}
		sum := out.coeffs[k].Add(c)
		if sum.IsZero() {
			delete(out.coeffs, k)
		} else {
			out.coeffs[k] = sum
		}
	}
	return out, nil
}

// Sub returns a-b under the same rules as Add.
func Sub(a, b FPS) (FPS, error) {
	if err := checkVariable(a, b); err != nil {
		return FPS{}, err
	}
	return Add(a, Negate(b))
}

// Negate returns -a.
func Negate(a FPS) FPS {
	out := Zero(a.variable, a.trunc)
	for k, c := range a.coeffs {
		out.coeffs[k] = c.Neg()
	}
	return out
}

// Mul returns a*b via naive sparse schoolbook multiplication; result
// trunc is min(a.trunc, b.trunc), every intermediate write filtered to
// stay inside that bound.
func Mul(a, b FPS) (FPS, error) {
	if err := checkVariable(a, b); err != nil {
		return FPS{}, err
	}
	trunc := minTrunc(a.trunc, b.trunc)
	out := Zero(a.variable, trunc)
	for ka, ca := range a.coeffs {
		if ka >= trunc {
			continue
		}
		for kb, cb := range b.coeffs {
			k := ka + kb
			if k >= trunc {
				continue
			}
			term := ca.Mul(cb)
			sum := out.coeffs[k].Add(term)
			if sum.IsZero() {
				delete(out.coeffs, k)
			} else {
				out.coeffs[k] = sum
			}
		}
	}
	return out, nil
}

// ScalarMul returns a scaled by c.
func ScalarMul(a FPS, c bigrat.Q) FPS {
	out := Zero(a.variable, a.trunc)
	if c.IsZero() {
		return out
	}
	for k, ak := range a.coeffs {
		out.coeffs[k] = ak.Mul(c)
	}
	return out
}

// ScalarDiv returns a/c; fails with bigrat.ErrDivByZero if c == 0.
func ScalarDiv(a FPS, c bigrat.Q) (FPS, error) {
	if c.IsZero() {
		return FPS{}, bigrat.ErrDivByZero
	}
	inv, err := c.Recip()
	if err != nil {
		return FPS{}, err
	}
	return ScalarMul(a, inv), nil
}

// Invert computes the multiplicative inverse of a using the standard
// recurrence b0 = 1/a0, bn = -(1/a0) * sum_{k=1..n} a_k*b_{n-k}. Requires
// a.Coeff(0) != 0 and a.trunc != PolynomialOrder (callers must first use
// CapOrder -- see spec §4.3/§9 on the sentinel trap).
func Invert(a FPS) (FPS, error) {
	if a.trunc == PolynomialOrder {
		return FPS{}, fmt.Errorf("fps: Invert called on sentinel-order series; caller must CapOrder first")
	}
	a0 := a.coeffs[0]
	if a0.IsZero() {
		return FPS{}, ErrZeroConstantTerm
	}
	invA0, err := a0.Recip()
	if err != nil {
		return FPS{}, err
	}
	out := Zero(a.variable, a.trunc)
	out.coeffs[0] = invA0
	for n := 1; n < a.trunc; n++ {
		acc := bigrat.QZero
		for k := 1; k <= n; k++ {
			ak, ok := a.coeffs[k]
			if !ok {
				continue
			}
			bnk, ok := out.coeffs[n-k]
			if !ok {
				continue
			}
			acc = acc.Add(ak.Mul(bnk))
		}
		if acc.IsZero() {
			continue
		}
		bn := acc.Mul(invA0).Neg()
		if !bn.IsZero() {
			out.coeffs[n] = bn
		}
	}
	return out, nil
}

// Truncate returns a copy of a truncated to order m, dropping entries >= m.
func Truncate(a FPS, m int) FPS {
	out := Zero(a.variable, m)
	for k, c := range a.coeffs {
		if k < m {
			out.coeffs[k] = c
		}
	}
	return out
}

// CapOrder replaces a sentinel-order (exact polynomial) series with a
// truncated copy at `fallback`, per spec §4.3/§9: this substitution is the
// caller's responsibility before any Invert/division. Non-sentinel series
// pass through unchanged.
func CapOrder(a FPS, fallback int) FPS {
	if a.trunc != PolynomialOrder {
		return a
	}
	return Truncate(a, fallback)
}

// Div computes a/b by capping any sentinel operand's order (to the other
// operand's order, or to fallback if both are sentinels) and then
// multiplying by the inverse -- the single blessed path through the
// sentinel trap described in spec §4.3 and §9.
func Div(a, b FPS, fallback int) (FPS, error) {
	if err := checkVariable(a, b); err != nil {
		return FPS{}, err
	}
	ca, cb := a, b
	switch {
	case a.trunc == PolynomialOrder && b.trunc == PolynomialOrder:
		ca = Truncate(a, fallback)
		cb = Truncate(b, fallback)
	case a.trunc == PolynomialOrder:
		ca = Truncate(a, b.trunc)
	case b.trunc == PolynomialOrder:
		cb = Truncate(b, a.trunc)
	}
	inv, err := Invert(cb)
	if err != nil {
		return FPS{}, err
	}
	return Mul(ca, inv)
}

// QDegree returns the largest nonzero exponent, or ok=false on the zero
// series. On sentinel-order series this scans the actual sparse support,
// never the (meaningless) trunc value.
func QDegree(f FPS) (int, bool) {
	best, any := 0, false
	for k := range f.coeffs {
		if !any || k > best {
			best, any = k, true
		}
	}
	return best, any
}

// LQDegree returns the smallest nonzero exponent, or ok=false on the zero series.
func LQDegree(f FPS) (int, bool) {
	best, any := 0, false
	for k := range f.coeffs {
		if !any || k < best {
			best, any = k, true
		}
	}
	return best, any
}
