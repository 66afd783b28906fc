package polyalg

import (
	"testing"

	"qkangaroo/internal/bigrat"
)

func q(n int64) bigrat.Q { return bigrat.QFromInt64(n) }

func TestDivRemIdentity(t *testing.T) {
	// p = x^3 + 1, d = x + 1 -> quot = x^2 - x + 1, rem = 0
	p := New(q(1), q(0), q(0), q(1))
	d := New(q(1), q(1))
	quot, rem, err := DivRem(p, d)
	if err != nil {
		t.Fatalf("DivRem: %v", err)
	}
	if !rem.IsZero() {
		t.Fatalf("expected zero remainder, got %s", rem.String())
	}
	want := New(q(1), q(-1), q(1))
	for i := 0; i <= 2; i++ {
		if quot.Coeff(i).Cmp(want.Coeff(i)) != 0 {
			t.Fatalf("quot coeff %d: want %s got %s", i, want.Coeff(i).String(), quot.Coeff(i).String())
		}
	}
}

func TestDivRemReconstructs(t *testing.T) {
	p := New(q(5), q(2), q(7), q(1))
	d := New(q(3), q(1))
	quot, rem, err := DivRem(p, d)
	if err != nil {
		t.Fatalf("DivRem: %v", err)
	}
	reconstructed := Add(Mul(quot, d), rem)
	for i := 0; i <= p.Degree(); i++ {
		if reconstructed.Coeff(i).Cmp(p.Coeff(i)) != 0 {
			t.Fatalf("reconstruction mismatch at %d: want %s got %s", i, p.Coeff(i).String(), reconstructed.Coeff(i).String())
		}
	}
}

func TestGcdOfCoprimeIsOne(t *testing.T) {
	p := New(q(1), q(1)) // x+1
	d := New(q(-1), q(1)) // x-1
	g, err := Gcd(p, d)
	if err != nil {
		t.Fatalf("Gcd: %v", err)
	}
	if g.Degree() != 0 || !g.LeadingCoeff().IsOne() {
		t.Fatalf("expected gcd 1, got %s", g.String())
	}
}

func TestGcdSharedFactor(t *testing.T) {
	shared := New(q(-1), q(1)) // x-1
	other1 := New(q(2), q(1))  // x+2
	other2 := New(q(3), q(1))  // x+3
	p := Mul(shared, other1)
	d := Mul(shared, other2)
	g, err := Gcd(p, d)
	if err != nil {
		t.Fatalf("Gcd: %v", err)
	}
	if g.Degree() != 1 {
		t.Fatalf("expected degree-1 gcd, got %s", g.String())
	}
	monicShared, _ := MakeMonic(shared)
	for i := 0; i <= 1; i++ {
		if g.Coeff(i).Cmp(monicShared.Coeff(i)) != 0 {
			t.Fatalf("gcd coeff %d mismatch: want %s got %s", i, monicShared.Coeff(i).String(), g.Coeff(i).String())
		}
	}
}

func TestResultantOfSharedRootIsZero(t *testing.T) {
	shared := New(q(-2), q(1)) // x-2
	p := Mul(shared, New(q(1), q(1)))
	d := Mul(shared, New(q(5), q(1)))
	r, err := Resultant(p, d)
	if err != nil {
		t.Fatalf("Resultant: %v", err)
	}
	if !r.IsZero() {
		t.Fatalf("expected zero resultant for polynomials sharing a root, got %s", r.String())
	}
}

func TestContentAndPrimitivePart(t *testing.T) {
	p := New(q(4), q(6), q(2)) // 2(2 + 3x + x^2)
	cont := Content(p)
	if cont.Cmp(q(2)) != 0 {
		t.Fatalf("content: want 2, got %s", cont.String())
	}
	pp := PrimitivePart(p)
	want := New(q(2), q(3), q(1))
	for i := 0; i <= 2; i++ {
		if pp.Coeff(i).Cmp(want.Coeff(i)) != 0 {
			t.Fatalf("primitive part coeff %d: want %s got %s", i, want.Coeff(i).String(), pp.Coeff(i).String())
		}
	}
}

func TestRationalFuncReduces(t *testing.T) {
	shared := New(q(-1), q(1))
	num := Mul(shared, New(q(1), q(1)))
	den := Mul(shared, New(q(2), q(1)))
	rf, err := NewRationalFunc(num, den)
	if err != nil {
		t.Fatalf("NewRationalFunc: %v", err)
	}
	wantNum := New(q(1), q(1))
	wantDen := New(q(2), q(1))
	if rf.Num.Degree() != 1 || rf.Den.Degree() != 1 {
		t.Fatalf("expected fully-reduced (x + 1)/(x + 2), got %s", rf.String())
	}
	for i := 0; i <= 1; i++ {
		if rf.Num.Coeff(i).Cmp(wantNum.Coeff(i)) != 0 || rf.Den.Coeff(i).Cmp(wantDen.Coeff(i)) != 0 {
			t.Fatalf("expected fully-reduced (x + 1)/(x + 2), got %s", rf.String())
		}
	}
}

func TestQShiftScalesByPower(t *testing.T) {
	p := New(q(1), q(1), q(1)) // 1 + x + x^2
	shifted, err := QShift(p, q(2), 1)
	if err != nil {
		t.Fatalf("QShift: %v", err)
	}
	want := []int64{1, 2, 4}
	for i, w := range want {
		if shifted.Coeff(i).Cmp(q(w)) != 0 {
			t.Fatalf("coeff %d: want %d got %s", i, w, shifted.Coeff(i).String())
		}
	}
}
