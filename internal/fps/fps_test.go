package fps

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/symtab"
)

func mustQ(num, den int64) bigrat.Q {
	q, err := bigrat.QFromFrac(num, den)
	if err != nil {
		panic(err)
	}
	return q
}

func TestInvariantsHoldAfterConstructors(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	m := map[int]bigrat.Q{0: bigrat.QZero, 1: mustQ(2, 1), -1: mustQ(1, 1), 10: mustQ(3, 1)}
	f := FromCoeffs(m, q, 5)
	for _, term := range f.Terms() {
		if term.Coeff.IsZero() {
			t.Fatalf("zero coefficient leaked into support at exponent %d", term.Exp)
		}
		if term.Exp < 0 || term.Exp >= f.TruncationOrder() {
			t.Fatalf("exponent %d outside [0,%d)", term.Exp, f.TruncationOrder())
		}
	}
	if _, err := f.Coeff(1); err != nil {
		t.Fatalf("Coeff(1): %v", err)
	}
}

func TestMulCommutes(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := FromCoeffs(map[int]bigrat.Q{0: mustQ(1, 1), 1: mustQ(2, 1), 2: mustQ(3, 1)}, q, 6)
	b := FromCoeffs(map[int]bigrat.Q{0: mustQ(1, 1), 1: mustQ(-1, 1)}, q, 6)
	ab, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	ba, err := Mul(b, a)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	diff, err := Sub(ab, ba)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.IsZero() {
		t.Fatalf("multiplication is not commutative: %v", diff.Terms())
	}
}

func TestInvertRoundTrip(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := FromCoeffs(map[int]bigrat.Q{0: mustQ(1, 1), 1: mustQ(1, 1)}, q, 8)
	inv, err := Invert(a)
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	prod, err := Mul(a, inv)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	one := Constant(bigrat.QOne, q, 8)
	diff, err := Sub(prod, one)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.IsZero() {
		t.Fatalf("a * a^-1 != 1: %v", prod.Terms())
	}
}

func TestInvertZeroConstantTerm(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := FromCoeffs(map[int]bigrat.Q{1: mustQ(1, 1)}, q, 8)
	if _, err := Invert(a); err != ErrZeroConstantTerm {
		t.Fatalf("want ErrZeroConstantTerm, got %v", err)
	}
}

func TestInvertRejectsSentinelDirectly(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := Constant(bigrat.QOne, q, PolynomialOrder)
	if _, err := Invert(a); err == nil {
		t.Fatalf("Invert on sentinel-order series must fail fast, not loop to 1e9 terms")
	}
	capped := CapOrder(a, 10)
	if capped.TruncationOrder() != 10 {
		t.Fatalf("CapOrder must replace the sentinel with the fallback order")
	}
	if _, err := Invert(capped); err != nil {
		t.Fatalf("Invert after CapOrder: %v", err)
	}
}

func TestTruncateIdempotent(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := FromCoeffs(map[int]bigrat.Q{0: mustQ(1, 1), 4: mustQ(1, 1), 9: mustQ(1, 1)}, q, 20)
	once := Truncate(a, 5)
	twice := Truncate(once, 5)
	diff, err := Sub(once, twice)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.IsZero() || once.TruncationOrder() != twice.TruncationOrder() {
		t.Fatalf("truncate is not idempotent")
	}
}

func TestDescendingOrder(t *testing.T) {
	reg := symtab.New()
	q := reg.MustIntern("q")
	a := FromCoeffs(map[int]bigrat.Q{0: mustQ(1, 1), 3: mustQ(1, 1), 1: mustQ(1, 1)}, q, 10)
	desc := a.TermsDesc()
	for i := 1; i < len(desc); i++ {
		if desc[i].Exp >= desc[i-1].Exp {
			t.Fatalf("TermsDesc not descending: %v", desc)
		}
	}
}
