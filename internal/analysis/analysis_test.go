package analysis

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/qseries"
	"qkangaroo/internal/symtab"
)

func TestSiftRamanujanCongruence(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	gf, err := qseries.PartitionGF(q, 50)
	if err != nil {
		t.Fatalf("PartitionGF: %v", err)
	}
	sifted, err := Sift(gf, 5, 4, 50)
	if err != nil {
		t.Fatalf("Sift: %v", err)
	}
	five := bigrat.QFromInt64(5)
	for i := 0; i < sifted.TruncationOrder(); i++ {
		c, err := sifted.Coeff(i)
		if err != nil {
			t.Fatalf("Coeff(%d): %v", i, err)
		}
		if c.IsZero() {
			continue
		}
		_, r, err := c.Numer().DivMod(five.Numer())
		if err != nil {
			t.Fatalf("DivMod: %v", err)
		}
		if !r.IsZero() {
			t.Fatalf("p(5*%d+4)=%s is not divisible by 5", i, c.String())
		}
	}
	c0, err := sifted.Coeff(0)
	if err != nil {
		t.Fatalf("Coeff(0): %v", err)
	}
	if c0.Cmp(bigrat.QFromInt64(5)) != 0 {
		t.Fatalf("sift(partition_gf,5,4)[0]: want 5 (p(4)), got %s", c0.String())
	}
}

func TestQfactorAqprodExample(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := qseries.Aqprod(bigrat.QOne, q, 5, 16)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	result, err := Qfactor(f, 6)
	if err != nil {
		t.Fatalf("Qfactor: %v", err)
	}
	if !result.IsExact {
		t.Fatalf("expected exact factorisation, got residual scalar %s", result.Scalar.String())
	}
	if result.Scalar.Cmp(bigrat.QOne) != 0 {
		t.Fatalf("expected scalar 1, got %s", result.Scalar.String())
	}
	want := map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}
	if len(result.Factors) != len(want) {
		t.Fatalf("factor count mismatch: want %v got %v", want, result.Factors)
	}
	for d, e := range want {
		if result.Factors[d] != e {
			t.Fatalf("factor (1-q^%d): want exponent %d, got %d", d, e, result.Factors[d])
		}
	}
}

func TestProdmakeRoundTrip(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := qseries.Euler(q, 20)
	if err != nil {
		t.Fatalf("Euler: %v", err)
	}
	result, err := Prodmake(f, 15)
	if err != nil {
		t.Fatalf("Prodmake: %v", err)
	}
	for n := 1; n <= 15; n++ {
		want := bigrat.QOne
		got, ok := result.Exponents[n]
		if !ok {
			t.Fatalf("a_%d missing, want 1", n)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("a_%d: want 1, got %s", n, got.String())
		}
	}
}

func TestEtamakePartitionGF(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	gf, err := qseries.PartitionGF(q, 30)
	if err != nil {
		t.Fatalf("PartitionGF: %v", err)
	}
	eq, err := Etamake(gf, 20)
	if err != nil {
		t.Fatalf("Etamake: %v", err)
	}
	r1, ok := eq.Factors[1]
	if !ok || r1.Cmp(bigrat.QOne.Neg()) != 0 {
		t.Fatalf("expected factors{1:-1}, got %v", eq.Factors)
	}
	wantShift, err := bigrat.QOne.Neg().Div(bigrat.QFromInt64(24))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if eq.QShift.Cmp(wantShift) != 0 {
		t.Fatalf("q_shift: want %s, got %s", wantShift.String(), eq.QShift.String())
	}
}

func TestDegreeWrappers(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := qseries.Qbin(4, 2, q)
	if err != nil {
		t.Fatalf("Qbin: %v", err)
	}
	hi, err := QDegree(f)
	if err != nil {
		t.Fatalf("QDegree: %v", err)
	}
	if hi != 4 {
		t.Fatalf("qdegree: want 4, got %d", hi)
	}
	lo, err := LQDegree(f)
	if err != nil {
		t.Fatalf("LQDegree: %v", err)
	}
	if lo != 0 {
		t.Fatalf("lqdegree: want 0, got %d", lo)
	}
}
