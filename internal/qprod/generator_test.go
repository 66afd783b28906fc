package qprod

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/symtab"
)

func TestEulerGeneratorMatchesPentagonalTheorem(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	g := NewEulerGenerator(q, 20)
	f, err := g.Value(16)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	// Euler's pentagonal number theorem: (q;q)_inf = sum (-1)^n q^{n(3n-1)/2}.
	want := map[int]int64{0: 1, 1: -1, 2: -1, 5: 1, 7: 1, 12: -1, 15: -1}
	for exp := 0; exp < 16; exp++ {
		c, err := f.Coeff(exp)
		if err != nil {
			t.Fatalf("Coeff(%d): %v", exp, err)
		}
		w, ok := want[exp]
		if !ok {
			w = 0
		}
		if c.Sign() == 0 && w == 0 {
			continue
		}
		if c.Cmp(bigrat.QFromInt64(w)) != 0 {
			t.Fatalf("coeff q^%d: want %d, got %s", exp, w, c.String())
		}
	}
}

func TestReentrantEnsureOrderOnlyAdvancesForward(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	g := NewEulerGenerator(q, 30)
	if err := g.EnsureOrder(5); err != nil {
		t.Fatalf("EnsureOrder(5): %v", err)
	}
	firstNext := g.NextK()
	if err := g.EnsureOrder(10); err != nil {
		t.Fatalf("EnsureOrder(10): %v", err)
	}
	if g.NextK() < firstNext {
		t.Fatalf("next_k must never move backwards: %d -> %d", firstNext, g.NextK())
	}
}
