package telescoping

import (
	"qkangaroo/internal/bigrat"
)

// Ratio is a q-hypergeometric shift ratio candidate z = coeff * q^exp,
// the q-analogue of Petkovsek's "ratio of consecutive terms is
// rational in the shift variable" ansatz restricted to the monomial
// case the source's q-series layer already represents exactly
// (internal/qseries.Mono): term(n+1)/term(n) = coeff * q^(exp*n + shift).
type Ratio struct {
	Coeff bigrat.Q
	QExp  int // per-step exponent multiplier on n
	Shift int // constant exponent offset
}

// eval returns coeff * q^(exp*n + shift), the ratio at step n.
func (r Ratio) eval(q bigrat.Q, n int) (bigrat.Q, error) {
	p, err := q.PowSigned(r.QExp*n + r.Shift)
	if err != nil {
		return bigrat.Q{}, err
	}
	return r.Coeff.Mul(p), nil
}

// Attempt records one candidate ratio QPetkovsekWithTrace tried and
// whether it reproduced the target sequence.
type Attempt struct {
	Candidate Ratio
	Matched   bool
}

// QPetkovsek searches for a closed q-hypergeometric form of the
// sequence target (target[n], n=0..len(target)-1, target[0]!=0) by
// testing candidate shift ratios coeff*q^(qExp*n+shift) over the
// bounded window coeff in candidateCoeffs, qExp in
// [-qExpBound,qExpBound], shift in [-shiftBound,shiftBound] (spec
// §4.11's q_petkovsek). This is a deliberate simplification of
// Petkovsek's algorithm: the general method factors the term ratio's
// rational-function structure via Gosper-Petkovsek normal form and
// solves for the polynomial factors directly (as Decompose already
// does for QGosper); here the unknown is restricted up front to a
// single q-monomial ratio, so the search degenerates to checking a
// finite candidate list rather than solving for one. This mirrors the
// brute-force small-integer-combination search internal/relations uses
// for FindProd, and is honest about being bounded rather than
// universal.
func QPetkovsek(target []bigrat.Q, q bigrat.Q, candidateCoeffs []bigrat.Q, qExpBound, shiftBound int) (Ratio, bool, error) {
	ratio, _, ok, err := QPetkovsekWithTrace(target, q, candidateCoeffs, qExpBound, shiftBound)
	return ratio, ok, err
}

// QPetkovsekWithTrace behaves like QPetkovsek but also returns every
// candidate it tried, in search order, each tagged with whether it
// matched -- useful for diagnosing why a closed form was not found
// within the bounded search window.
func QPetkovsekWithTrace(target []bigrat.Q, q bigrat.Q, candidateCoeffs []bigrat.Q, qExpBound, shiftBound int) (Ratio, []Attempt, bool, error) {
	if len(target) == 0 || target[0].IsZero() {
		return Ratio{}, nil, false, nil
	}
	var trace []Attempt
	for _, coeff := range candidateCoeffs {
		for qExp := -qExpBound; qExp <= qExpBound; qExp++ {
			for shift := -shiftBound; shift <= shiftBound; shift++ {
				cand := Ratio{Coeff: coeff, QExp: qExp, Shift: shift}
				matched, err := matchesSequence(cand, target, q)
				if err != nil {
					return Ratio{}, nil, false, err
				}
				trace = append(trace, Attempt{Candidate: cand, Matched: matched})
				if matched {
					return cand, trace, true, nil
				}
			}
		}
	}
	return Ratio{}, trace, false, nil
}

// matchesSequence checks whether target[n+1] == target[n]*ratio.eval(q,n)
// for every consecutive pair in target.
func matchesSequence(r Ratio, target []bigrat.Q, q bigrat.Q) (bool, error) {
	for n := 0; n+1 < len(target); n++ {
		step, err := r.eval(q, n)
		if err != nil {
			return false, err
		}
		if target[n].Mul(step).Cmp(target[n+1]) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// ClosedForm evaluates the sequence term(n) = term0 * prod_{i=0}^{n-1}
// ratio.eval(q,i) implied by a QPetkovsek solution, for n=0..count-1.
func ClosedForm(term0 bigrat.Q, ratio Ratio, q bigrat.Q, count int) ([]bigrat.Q, error) {
	out := make([]bigrat.Q, count)
	if count == 0 {
		return out, nil
	}
	out[0] = term0
	for n := 0; n+1 < count; n++ {
		step, err := ratio.eval(q, n)
		if err != nil {
			return nil, err
		}
		out[n+1] = out[n].Mul(step)
	}
	return out, nil
}
