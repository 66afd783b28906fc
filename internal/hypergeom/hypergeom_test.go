package hypergeom

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/qseries"
	"qkangaroo/internal/symtab"
)

func setup() symtab.ID {
	reg := symtab.New()
	return reg.MustIntern("q")
}

// 1φ0(a;-;q,z) = (az;q)_∞/(z;q)_∞, the q-binomial theorem; checked here
// against the a=0 case with z=q, where both sides reduce to 1/(q;q)_∞.
func TestPhiQBinomialTrivialCase(t *testing.T) {
	v := setup()
	N := 12
	a := Mono{Coeff: bigrat.QZero, Pow: 0} // a = 0, collapses (a;q)_k to 1
	z := Mono{Coeff: bigrat.QOne, Pow: 1}
	got, err := Phi([]Mono{a}, nil, z, v, N)
	if err != nil {
		t.Fatalf("Phi: %v", err)
	}
	want, err := qseries.Aqprod(bigrat.QOne, v, qseries.Infinite, N)
	if err != nil {
		t.Fatalf("aqprod: %v", err)
	}
	invWant, err := fps.Div(fps.Constant(bigrat.QOne, v, N), fps.CapOrder(want, N), N)
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	for k := 0; k < N; k++ {
		g, _ := got.Coeff(k)
		w, _ := invWant.Coeff(k)
		if g.Cmp(w) != 0 {
			t.Fatalf("coeff %d: got %s want %s", k, g.String(), w.String())
		}
	}
}

func TestTrySummationQVandermonde(t *testing.T) {
	v := setup()
	N := 10
	n := 3
	b := Mono{Coeff: bigrat.QFromInt64(2), Pow: 0}
	c := Mono{Coeff: bigrat.QFromInt64(5), Pow: 1}
	q1 := Mono{Coeff: bigrat.QOne, Pow: 1}
	res, ok, err := TrySummation(
		[]Param{TermParam(n), Ordinary(b)},
		[]Param{Ordinary(c)},
		q1, v, N,
	)
	if err != nil {
		t.Fatalf("TrySummation: %v", err)
	}
	if !ok {
		t.Fatalf("expected q-Vandermonde match")
	}
	if res.IsZero() {
		t.Fatalf("expected nonzero closed form")
	}
}

func TestTrySummationNoMatchReturnsFalse(t *testing.T) {
	v := setup()
	N := 8
	a := Ordinary(Mono{Coeff: bigrat.QFromInt64(3), Pow: 0})
	b := Ordinary(Mono{Coeff: bigrat.QFromInt64(7), Pow: 0})
	c := Ordinary(Mono{Coeff: bigrat.QFromInt64(11), Pow: 0})
	z := Mono{Coeff: bigrat.QFromInt64(13), Pow: 1}
	_, ok, err := TrySummation([]Param{a, b}, []Param{c}, z, v, N)
	if err != nil {
		t.Fatalf("TrySummation: %v", err)
	}
	if ok {
		t.Fatalf("expected no classical match for arbitrary parameters")
	}
}

func TestHeine1RoundTripsParameters(t *testing.T) {
	v := setup()
	N := 6
	a := Mono{Coeff: bigrat.QFromInt64(2), Pow: 0}
	b := Mono{Coeff: bigrat.QFromInt64(3), Pow: 0}
	c := Mono{Coeff: bigrat.QFromInt64(5), Pow: 1}
	z := Mono{Coeff: bigrat.QFromInt64(7), Pow: 1}
	tr, err := Heine1(a, b, c, z, v, N)
	if err != nil {
		t.Fatalf("Heine1: %v", err)
	}
	if tr.Prefactor.IsZero() {
		t.Fatalf("expected nonzero prefactor")
	}
	if tr.Z.Pow != b.Pow || tr.Z.Coeff.Cmp(b.Coeff) != 0 {
		t.Fatalf("heine1 should move z to b, got %+v", tr.Z)
	}
}

func TestFindTransformationChainTrivialWhenEqual(t *testing.T) {
	v := setup()
	q := [4]Mono{
		{Coeff: bigrat.QFromInt64(2), Pow: 0},
		{Coeff: bigrat.QFromInt64(3), Pow: 0},
		{Coeff: bigrat.QFromInt64(5), Pow: 1},
		{Coeff: bigrat.QFromInt64(7), Pow: 1},
	}
	path, ok, err := FindTransformationChain(q, q, v, 10, 3)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if !ok || len(path) != 0 {
		t.Fatalf("expected trivial empty chain for identical source/target")
	}
}

func TestFindTransformationChainFindsHeineStep(t *testing.T) {
	v := setup()
	N := 6
	a := Mono{Coeff: bigrat.QFromInt64(2), Pow: 0}
	b := Mono{Coeff: bigrat.QFromInt64(3), Pow: 0}
	c := Mono{Coeff: bigrat.QFromInt64(5), Pow: 1}
	z := Mono{Coeff: bigrat.QFromInt64(7), Pow: 1}
	tr, err := Heine1(a, b, c, z, v, N)
	if err != nil {
		t.Fatalf("heine1: %v", err)
	}
	target := [4]Mono{tr.Upper[0], tr.Upper[1], tr.Lower, tr.Z}
	path, ok, err := FindTransformationChain([4]Mono{a, b, c, z}, target, v, N, 2)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if !ok || len(path) == 0 {
		t.Fatalf("expected a nonempty chain connecting source to its heine1 image")
	}
}
