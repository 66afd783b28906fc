package qseries

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/symtab"
)

func TestPartitionCountKnownValues(t *testing.T) {
	cases := map[int]int64{0: 1, 4: 5, 50: 204226, 100: 190569292}
	for n, want := range cases {
		got := PartitionCount(n)
		if got.Cmp(bigrat.ZFromInt64(want)) != 0 {
			t.Fatalf("p(%d): want %d, got %s", n, want, got.String())
		}
	}
}

func TestPartitionCountMatchesGF(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	gf, err := PartitionGF(q, 60)
	if err != nil {
		t.Fatalf("PartitionGF: %v", err)
	}
	for n := 0; n < 60; n++ {
		c, err := gf.Coeff(n)
		if err != nil {
			t.Fatalf("Coeff(%d): %v", n, err)
		}
		want := PartitionCount(n)
		if c.Numer().Cmp(want) != 0 || !c.IsInteger() {
			t.Fatalf("[q^%d] partition_gf = %s, want integer %s", n, c.String(), want.String())
		}
	}
}

func TestAqprodFiniteIsExactPolynomial(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := Aqprod(bigrat.QOne, q, 5, 16)
	if err != nil {
		t.Fatalf("Aqprod: %v", err)
	}
	want := []int64{1, -1, -1, 0, 0, 1, 0, 1, 0, 0, 0, 0, -1, 0, 0, -1}
	for n, w := range want {
		c, err := f.Coeff(n)
		if err != nil {
			t.Fatalf("Coeff(%d): %v", n, err)
		}
		if c.Cmp(bigrat.QFromInt64(w)) != 0 {
			t.Fatalf("coeff q^%d: want %d, got %s", n, w, c.String())
		}
	}
}

func TestQbinBoundary(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	for _, n := range []int{0, 1, 5} {
		one, err := Qbin(n, 0, q)
		if err != nil {
			t.Fatalf("Qbin(%d,0): %v", n, err)
		}
		c, _ := one.Coeff(0)
		if c.Cmp(bigrat.QOne) != 0 {
			t.Fatalf("qbin(%d,0) constant term must be 1, got %s", n, c.String())
		}
	}
}

func TestQbinExample(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := Qbin(4, 2, q)
	if err != nil {
		t.Fatalf("Qbin: %v", err)
	}
	want := []int64{1, 1, 2, 1, 1}
	for n, w := range want {
		c, err := f.Coeff(n)
		if err != nil {
			t.Fatalf("Coeff(%d): %v", n, err)
		}
		if c.Cmp(bigrat.QFromInt64(w)) != 0 {
			t.Fatalf("coeff q^%d: want %d, got %s", n, w, c.String())
		}
	}
}

func TestEtaqEmptyListIsOne(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	f, err := EtaqList(nil, q, 10)
	if err != nil {
		t.Fatalf("EtaqList: %v", err)
	}
	if !f.IsZero() {
		c, _ := f.Coeff(0)
		if c.Cmp(bigrat.QOne) != 0 {
			t.Fatalf("etaq([]) must be the constant series 1")
		}
		for n := 1; n < 10; n++ {
			c, _ := f.Coeff(n)
			if !c.IsZero() {
				t.Fatalf("etaq([]) must be constant, found nonzero at %d", n)
			}
		}
	}
}
