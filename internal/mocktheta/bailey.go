package mocktheta

import (
	"errors"

	"qkangaroo/internal/bigrat"
)

// ErrUnknownPair is returned for a database index outside [0,2].
var ErrUnknownPair = errors.New("mocktheta: unknown bailey pair index")

// Bailey pair database indices, per spec §4.10.
const (
	PairUnit            = 0
	PairRogersRamanujan = 1
	PairQBinomial       = 2
)

// Pair is a Bailey pair (alpha_n, beta_n): two sequences of rational
// numbers indexed 0..size-1 satisfying beta_n = sum_{r=0}^n
// alpha_r / ((q;q)_{n-r} (aq;q)_{n+r}).
type Pair struct {
	A     bigrat.Q // the parameter a
	Alpha []bigrat.Q
	Beta  []bigrat.Q
}

// finitePochQ computes prod_{j=0}^{count-1} (1 - x*q^j).
func finitePochQ(x, q bigrat.Q, count int) bigrat.Q {
	acc := bigrat.QOne
	for j := 0; j < count; j++ {
		p, _ := q.PowSigned(j)
		acc = acc.Mul(bigrat.QOne.Sub(x.Mul(p)))
	}
	return acc
}

// LoadPair builds a named Bailey pair from the spec's integer-coded
// database, expanded out to `size` terms at the numeric parameter q (a
// genuine rational -- LoadPair evaluates the pair's closed forms
// directly, it does not build a series in a formal q).
func LoadPair(index int, a, q bigrat.Q, size int) (Pair, error) {
	switch index {
	case PairUnit:
		return unitPair(a, q, size), nil
	case PairRogersRamanujan:
		return rogersRamanujanPair(a, q, size), nil
	case PairQBinomial:
		return qBinomialPair(a, size), nil
	default:
		return Pair{}, ErrUnknownPair
	}
}

// unitPair is Bailey's trivial pair U: alpha_0=1,
// alpha_n = (-1)^n q^{C(n,2)} (1-a q^{2n}) (a;q)_n / ((1-a)(q;q)_n) for
// n>=1, beta_n = delta_{n,0}.
func unitPair(a, q bigrat.Q, size int) Pair {
	alpha := make([]bigrat.Q, size)
	beta := make([]bigrat.Q, size)
	oneMinusA := bigrat.QOne.Sub(a)
	for n := 0; n < size; n++ {
		if n == 0 {
			alpha[n] = bigrat.QOne
			beta[n] = bigrat.QOne
			continue
		}
		beta[n] = bigrat.QZero
		if oneMinusA.IsZero() {
			alpha[n] = bigrat.QZero
			continue
		}
		sign := bigrat.QOne
		if n%2 == 1 {
			sign = sign.Neg()
		}
		triangular, _ := q.PowSigned(n * (n - 1) / 2)
		aq2n, _ := q.PowSigned(2 * n)
		bracket := bigrat.QOne.Sub(a.Mul(aq2n))
		an := finitePochQ(a, q, n)
		qn := finitePochQ(q, q, n)
		invDen, err := oneMinusA.Mul(qn).Recip()
		if err != nil || qn.IsZero() {
			alpha[n] = bigrat.QZero
			continue
		}
		alpha[n] = sign.Mul(triangular).Mul(bracket).Mul(an).Mul(invDen)
	}
	return Pair{A: a, Alpha: alpha, Beta: beta}
}

// rogersRamanujanPair is the Rogers-Ramanujan Bailey pair:
// alpha_n = (-1)^n q^{n(5n+1)/2}, beta_n = 1/(q;q)_n.
func rogersRamanujanPair(a, q bigrat.Q, size int) Pair {
	alpha := make([]bigrat.Q, size)
	beta := make([]bigrat.Q, size)
	for n := 0; n < size; n++ {
		sign := bigrat.QOne
		if n%2 == 1 {
			sign = sign.Neg()
		}
		qexp, _ := q.PowSigned(n * (5*n + 1) / 2)
		alpha[n] = sign.Mul(qexp)
		qn := finitePochQ(q, q, n)
		if qn.IsZero() {
			beta[n] = bigrat.QZero
			continue
		}
		inv, err := qn.Recip()
		if err != nil {
			beta[n] = bigrat.QZero
			continue
		}
		beta[n] = inv
	}
	return Pair{A: a, Alpha: alpha, Beta: beta}
}

// qBinomialPair is the trivial q-binomial pair: alpha_0=1, alpha_n=0
// (n>=1), beta_n=1 for all n.
func qBinomialPair(a bigrat.Q, size int) Pair {
	alpha := make([]bigrat.Q, size)
	beta := make([]bigrat.Q, size)
	for n := 0; n < size; n++ {
		if n == 0 {
			alpha[n] = bigrat.QOne
		} else {
			alpha[n] = bigrat.QZero
		}
		beta[n] = bigrat.QOne
	}
	return Pair{A: a, Alpha: alpha, Beta: beta}
}

// WeakLemma forms both sides of Bailey's weak lemma for pair at
// parameter a: LHS = sum_n alpha_n/(q;q)_n, RHS = sum_n (aq;q)_n *
// beta_n (spec §4.10); the caller compares them for equality.
func WeakLemma(p Pair, q bigrat.Q) (lhs, rhs bigrat.Q, err error) {
	lhs, rhs = bigrat.QZero, bigrat.QZero
	for n := 0; n < len(p.Alpha); n++ {
		qn := finitePochQ(q, q, n)
		if !qn.IsZero() {
			inv, e := qn.Recip()
			if e != nil {
				return bigrat.Q{}, bigrat.Q{}, e
			}
			lhs = lhs.Add(p.Alpha[n].Mul(inv))
		}
		aqn := finitePochQ(p.A.Mul(q), q, n)
		rhs = rhs.Add(aqn.Mul(p.Beta[n]))
	}
	return lhs, rhs, nil
}

// ApplyLemma transforms (alpha,beta) into (alpha',beta') under Bailey's
// lemma with free parameters b,c (spec §4.10):
//
//	alpha'_n = (b;q)_n (c;q)_n (aq/bc)^n alpha_n
//	beta'_n  = sum_{r=0}^n (b;q)_{n-r} (c;q)_{n-r} (aq/bc)^r / (q;q)_{n-r} * beta_r
func ApplyLemma(p Pair, b, c, q bigrat.Q, size int) (Pair, error) {
	bc := b.Mul(c)
	if bc.IsZero() {
		return Pair{}, errors.New("mocktheta: apply_lemma requires nonzero b*c")
	}
	invBC, err := bc.Recip()
	if err != nil {
		return Pair{}, err
	}
	aqOverBC := p.A.Mul(q).Mul(invBC)

	alphaP := make([]bigrat.Q, size)
	betaP := make([]bigrat.Q, size)
	for n := 0; n < size; n++ {
		bn := finitePochQ(b, q, n)
		cn := finitePochQ(c, q, n)
		ratioN, perr := aqOverBC.PowSigned(n)
		if perr != nil {
			return Pair{}, perr
		}
		var alphaN bigrat.Q
		if n < len(p.Alpha) {
			alphaN = p.Alpha[n]
		}
		alphaP[n] = bn.Mul(cn).Mul(ratioN).Mul(alphaN)

		sum := bigrat.QZero
		for r := 0; r <= n; r++ {
			bnr := finitePochQ(b, q, n-r)
			cnr := finitePochQ(c, q, n-r)
			qnr := finitePochQ(q, q, n-r)
			if qnr.IsZero() {
				continue
			}
			invQnr, e := qnr.Recip()
			if e != nil {
				return Pair{}, e
			}
			ratioR, e := aqOverBC.PowSigned(r)
			if e != nil {
				return Pair{}, e
			}
			var betaR bigrat.Q
			if r < len(p.Beta) {
				betaR = p.Beta[r]
			}
			sum = sum.Add(bnr.Mul(cnr).Mul(invQnr).Mul(ratioR).Mul(betaR))
		}
		betaP[n] = sum
	}
	return Pair{A: p.A, Alpha: alphaP, Beta: betaP}, nil
}

// ChainStep is one iteration of Bailey's lemma: Pair after the step,
// and the identity it implies (LHS/RHS of the weak lemma at that step).
type ChainStep struct {
	Pair     Pair
	LHS, RHS bigrat.Q
}

// Chain iterates ApplyLemma `depth` times starting from pair, recording
// the implied identity at each step (spec §4.10's bailey_chain).
func Chain(p Pair, b, c, q bigrat.Q, depth, size int) ([]ChainStep, error) {
	steps := make([]ChainStep, 0, depth)
	cur := p
	for i := 0; i < depth; i++ {
		next, err := ApplyLemma(cur, b, c, q, size)
		if err != nil {
			return nil, err
		}
		lhs, rhs, err := WeakLemma(next, q)
		if err != nil {
			return nil, err
		}
		steps = append(steps, ChainStep{Pair: next, LHS: lhs, RHS: rhs})
		cur = next
	}
	return steps, nil
}

// Discover searches the named-pair database for a pair that, after
// some chain of length <= maxDepth (each step applying ApplyLemma with
// b=c=a), makes the weak lemma's two sides equal lhsTarget/rhsTarget
// exactly, returning the winning (index, chain) or ok=false (spec
// §4.10's bailey_discover).
func Discover(lhsTarget, rhsTarget, a, q bigrat.Q, maxDepth, size int) (index int, chain []ChainStep, ok bool, err error) {
	for idx := 0; idx <= PairQBinomial; idx++ {
		p, lerr := LoadPair(idx, a, q, size)
		if lerr != nil {
			continue
		}
		lhs0, rhs0, werr := WeakLemma(p, q)
		if werr == nil && lhs0.Cmp(lhsTarget) == 0 && rhs0.Cmp(rhsTarget) == 0 {
			return idx, nil, true, nil
		}
		for d := 1; d <= maxDepth; d++ {
			steps, cerr := Chain(p, a, a, q, d, size)
			if cerr != nil {
				break
			}
			last := steps[len(steps)-1]
			if last.LHS.Cmp(lhsTarget) == 0 && last.RHS.Cmp(rhsTarget) == 0 {
				return idx, steps, true, nil
			}
		}
	}
	return 0, nil, false, nil
}
