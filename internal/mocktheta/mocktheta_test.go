package mocktheta

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/symtab"
)

func setupVar() symtab.ID {
	reg := symtab.New()
	return reg.MustIntern("q")
}

func TestF3StartsWithOne(t *testing.T) {
	v := setupVar()
	f, err := F3(v, 10)
	if err != nil {
		t.Fatalf("F3: %v", err)
	}
	c0, err := f.Coeff(0)
	if err != nil {
		t.Fatalf("coeff: %v", err)
	}
	if c0.Cmp(bigrat.QOne) != 0 {
		t.Fatalf("want f(q) = 1 + ..., got constant term %s", c0.String())
	}
}

func TestOrder5And7Nonzero(t *testing.T) {
	v := setupVar()
	f0, err := F50(v, 10)
	if err != nil {
		t.Fatalf("F50: %v", err)
	}
	if f0.IsZero() {
		t.Fatalf("expected F50 nonzero")
	}
	F70series, err := F70(v, 10)
	if err != nil {
		t.Fatalf("F70: %v", err)
	}
	if F70series.IsZero() {
		t.Fatalf("expected F70 nonzero")
	}
}

func TestAppellLerchMConstantTerm(t *testing.T) {
	v := setupVar()
	x := Mono{Coeff: bigrat.QFromInt64(2), Pow: 1}
	z := Mono{Coeff: bigrat.QFromInt64(1), Pow: 0}
	f, err := AppellLerchM(x, z, v, 8)
	if err != nil {
		t.Fatalf("AppellLerchM: %v", err)
	}
	if f.IsZero() {
		t.Fatalf("expected nonzero appell-lerch truncation")
	}
}

func TestBaileyWeakLemmaUnitPair(t *testing.T) {
	q, _ := bigrat.QFromFrac(1, 5)
	a, _ := bigrat.QFromFrac(1, 3)
	p, err := LoadPair(PairUnit, a, q, 6)
	if err != nil {
		t.Fatalf("LoadPair: %v", err)
	}
	lhs, rhs, err := WeakLemma(p, q)
	if err != nil {
		t.Fatalf("WeakLemma: %v", err)
	}
	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("unit pair weak lemma should balance exactly, got lhs=%s rhs=%s", lhs.String(), rhs.String())
	}
}

func TestBaileyChainProducesSteps(t *testing.T) {
	q, _ := bigrat.QFromFrac(1, 7)
	a, _ := bigrat.QFromFrac(1, 4)
	p, err := LoadPair(PairRogersRamanujan, a, q, 5)
	if err != nil {
		t.Fatalf("LoadPair: %v", err)
	}
	steps, err := Chain(p, a, a, q, 2, 5)
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("want 2 chain steps, got %d", len(steps))
	}
}
