package value

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

func TestIntegerDisplay(t *testing.T) {
	v := Integer(bigrat.ZFromInt64(42))
	if v.String() != "42" {
		t.Fatalf("want 42, got %s", v.String())
	}
}

func TestRationalAsRationalReducesFraction(t *testing.T) {
	q, err := bigrat.QFromFrac(6, 3)
	if err != nil {
		t.Fatalf("QFromFrac: %v", err)
	}
	v := Rational(q)
	if got, ok := v.AsRational(); !ok || got.Cmp(bigrat.QFromInt64(2)) != 0 {
		t.Fatalf("want 2, got %v", got)
	}
}

func TestAsSeriesPromotesInteger(t *testing.T) {
	reg := symtab.New()
	variable := reg.MustIntern("q")
	fallback := fps.Constant(bigrat.QOne, variable, 10)
	v := Integer(bigrat.ZFromInt64(5))
	s, ok := v.AsSeries(fallback)
	if !ok {
		t.Fatal("AsSeries should succeed for Integer")
	}
	c, err := s.Coeff(0)
	if err != nil {
		t.Fatalf("Coeff: %v", err)
	}
	if c.Cmp(bigrat.QFromInt64(5)) != 0 {
		t.Fatalf("want constant term 5, got %s", c.String())
	}
}

func TestSeriesStringDescendingOrderWithTruncation(t *testing.T) {
	reg := symtab.New()
	variable := reg.MustIntern("q")
	a, err := fps.Monomial(bigrat.QOne, 2, variable, 5)
	if err != nil {
		t.Fatalf("Monomial: %v", err)
	}
	b, err := fps.Monomial(bigrat.QOne, 0, variable, 5)
	if err != nil {
		t.Fatalf("Monomial: %v", err)
	}
	sum, err := fps.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	s := Series(sum).String()
	if s != "q^2 + 1 + O(q^5)" {
		t.Fatalf("unexpected series display: %q", s)
	}
}

func TestListDisplay(t *testing.T) {
	v := List([]Value{Integer(bigrat.ZFromInt64(1)), Integer(bigrat.ZFromInt64(2))})
	if v.String() != "[1, 2]" {
		t.Fatalf("want [1, 2], got %s", v.String())
	}
}

func TestSortListOrdersNumerically(t *testing.T) {
	vs := []Value{Integer(bigrat.ZFromInt64(3)), Integer(bigrat.ZFromInt64(1)), Integer(bigrat.ZFromInt64(2))}
	sorted, ok := SortList(vs)
	if !ok {
		t.Fatal("SortList should succeed on integers")
	}
	if sorted[0].String() != "1" || sorted[1].String() != "2" || sorted[2].String() != "3" {
		t.Fatalf("unexpected order: %v", sorted)
	}
}

func TestCmpRejectsMismatchedKinds(t *testing.T) {
	_, ok := Cmp(Integer(bigrat.ZFromInt64(1)), String("x"))
	if ok {
		t.Fatal("Cmp should reject Integer vs String")
	}
}
