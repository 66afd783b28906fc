// Package qprod implements the lazy infinite-product generator (spec
// §3 "Infinite-product generator", §4.4) that every q-Pochhammer-style
// named series in internal/qseries is built from. It resembles the
// coroutine-like incremental generators the source language used;
// per the Design Notes (§9) that is re-architected here as ordinary
// state (partial, next_k) advanced by a ensure_order method, no async
// machinery required.
package qprod

import (
	"errors"
	"fmt"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// ErrIterationLimit is returned when a generator cannot determine, within
// a bounded number of factors, that further factors stop contributing
// below the requested order (spec §5: iteration ceiling, not time/signal
// based preemption).
var ErrIterationLimit = errors.New("qprod: iteration limit exceeded while extending product")

// IterationCeiling bounds how many factors EnsureOrder will multiply in
// while searching for a factor whose lowest differing exponent reaches
// the requested order.
const IterationCeiling = 1_000_000

// FactorFn builds the k-th factor of the product. It must be a pure
// function of its arguments and must always be evaluated at the
// generator's initial baseTrunc (spec §4.4's critical invariant) so that
// incremental EnsureOrder calls never silently shrink the accumulated
// partial product's precision through fps.Mul's min-truncation rule.
type FactorFn func(k int, variable symtab.ID, baseTrunc int) (fps.FPS, error)

// Generator lazily builds partial = prod_{k=k0..next_k-1} factorFn(k),
// extending on demand. It is not safe for concurrent use; per spec §5
// each session owns its own generator instances.
type Generator struct {
	variable  symtab.ID
	baseTrunc int
	k0        int
	nextK     int
	partial   fps.FPS
	factorFn  FactorFn
}

// New creates a generator starting at partial=1, next_k=k0, pinned to
// baseTrunc: every factor this generator ever builds is built at this
// order, per the critical invariant in spec §4.4.
func New(variable symtab.ID, k0, baseTrunc int, factorFn FactorFn) *Generator {
	return &Generator{
		variable:  variable,
		baseTrunc: baseTrunc,
		k0:        k0,
		nextK:     k0,
		partial:   fps.Constant(bigrat.QOne, variable, baseTrunc),
		factorFn:  factorFn,
	}
}

// BaseTruncationOrder returns the fixed order every factor is built at.
func (g *Generator) BaseTruncationOrder() int { return g.baseTrunc }

func lowestDifferingExponent(f fps.FPS) (int, bool) {
	one := fps.Constant(bigrat.QOne, f.Variable(), f.TruncationOrder())
	diff, err := fps.Sub(f, one)
	if err != nil {
		return 0, false
	}
	return fps.LQDegree(diff)
}

// EnsureOrder guarantees partial == prod_{k<next_k} factorFn(k) (mod q^M)
// with next_k advanced only as far as needed: it multiplies in factors
// k=previous_next.. until the newest factor's lowest differing exponent
// is >= M (the standard "offset grows with k" termination rule for
// q-Pochhammer-like products), or until no further factor differs from 1
// at all. A prior call's next_k is never rewound: only the index range
// previous_next..new_next is multiplied in (spec §4.4 re-entrancy rule).
func (g *Generator) EnsureOrder(M int) error {
	if M > g.baseTrunc {
		return fmt.Errorf("qprod: requested order %d exceeds generator base truncation %d", M, g.baseTrunc)
	}
	if M <= 0 {
		return nil
	}
	for steps := 0; ; steps++ {
		if steps > IterationCeiling {
			return ErrIterationLimit
		}
		f, err := g.factorFn(g.nextK, g.variable, g.baseTrunc)
		if err != nil {
			return fmt.Errorf("qprod: factor %d: %w", g.nextK, err)
		}
		merged, err := fps.Mul(g.partial, f)
		if err != nil {
			return err
		}
		g.partial = merged
		g.nextK++
		d, differs := lowestDifferingExponent(f)
		if !differs || d >= M {
			return nil
		}
	}
}

// Partial returns the current partial product (the product of all
// factors consumed by EnsureOrder so far, not necessarily truncated to
// the last requested M -- it is exact at BaseTruncationOrder()).
func (g *Generator) Partial() fps.FPS { return g.partial }

// NextK returns the index of the next unconsumed factor.
func (g *Generator) NextK() int { return g.nextK }

// Value extends to at least order M and returns the result truncated to M.
func (g *Generator) Value(M int) (fps.FPS, error) {
	if err := g.EnsureOrder(M); err != nil {
		return fps.FPS{}, err
	}
	return fps.Truncate(g.partial, M), nil
}
