package relations

import (
	"testing"

	"qkangaroo/internal/bigrat"
)

func qs(vals ...int64) []bigrat.Q {
	out := make([]bigrat.Q, len(vals))
	for i, v := range vals {
		out[i] = bigrat.QFromInt64(v)
	}
	return out
}

func TestSolveUniqueConsistent(t *testing.T) {
	a := [][]bigrat.Q{qs(1, 1), qs(1, -1)}
	b := qs(5, 1)
	x, ok := SolveUnique(a, b)
	if !ok {
		t.Fatalf("expected consistent system")
	}
	if x[0].Cmp(bigrat.QFromInt64(3)) != 0 || x[1].Cmp(bigrat.QFromInt64(2)) != 0 {
		t.Fatalf("want (3,2), got (%s,%s)", x[0].String(), x[1].String())
	}
}

func TestSolveUniqueUnderdetermined(t *testing.T) {
	a := [][]bigrat.Q{qs(1, 1)}
	b := qs(2)
	if _, ok := SolveUnique(a, b); ok {
		t.Fatalf("expected underdetermined system to report not-ok")
	}
}

func TestFindLinCombo(t *testing.T) {
	c1 := qs(1, 2, 3, 4, 5)
	c2 := qs(1, 1, 1, 1, 1)
	target := make([]bigrat.Q, 5)
	for i := range target {
		target[i] = c1[i].Mul(bigrat.QFromInt64(2)).Add(c2[i].Mul(bigrat.QFromInt64(-1)))
	}
	lambda, ok := FindLinCombo(target, [][]bigrat.Q{c1, c2}, 0)
	if !ok {
		t.Fatalf("expected findlincombo to succeed")
	}
	if lambda[0].Cmp(bigrat.QFromInt64(2)) != 0 || lambda[1].Cmp(bigrat.QFromInt64(-1)) != 0 {
		t.Fatalf("want (2,-1), got (%s,%s)", lambda[0].String(), lambda[1].String())
	}
}

func TestFindHomDetectsSquareRelation(t *testing.T) {
	// s0 = s1^2 term-wise: s0[n] = n^2, s1[n] = n, for n=1..5; with the
	// constant series c = 1 this is the degree-2 relation s0*c = s1^2.
	s1 := qs(1, 2, 3, 4, 5)
	s0 := qs(1, 4, 9, 16, 25)
	rels := FindHom([][]bigrat.Q{s0, s1, qs(1, 1, 1, 1, 1)}, 2, 0)
	if len(rels) == 0 {
		t.Fatalf("expected at least one degree-2 relation among s0,s1")
	}
}

func TestFindMaxIndDropsDependent(t *testing.T) {
	s1 := qs(1, 2, 3, 4)
	s2 := qs(2, 4, 6, 8) // = 2*s1, dependent
	s3 := qs(1, 0, 1, 0)
	kept := FindMaxInd([][]bigrat.Q{s1, s2, s3}, 0)
	if len(kept) != 2 {
		t.Fatalf("want 2 independent series kept, got %d (%v)", len(kept), kept)
	}
}
