package bigrat

import "testing"

func TestQCanonicalForm(t *testing.T) {
	q, err := QFromFrac(6, -4)
	if err != nil {
		t.Fatalf("QFromFrac: %v", err)
	}
	if q.String() != "-3/2" {
		t.Fatalf("want -3/2, got %s", q.String())
	}
	if q.Denom().Sign() <= 0 {
		t.Fatalf("denominator must be positive, got %s", q.Denom().String())
	}
}

func TestQDivByZero(t *testing.T) {
	a := QFromInt64(1)
	if _, err := a.Div(QZero); err != ErrDivByZero {
		t.Fatalf("want ErrDivByZero, got %v", err)
	}
	if _, err := QZero.Recip(); err != ErrDivByZero {
		t.Fatalf("want ErrDivByZero on Recip(0), got %v", err)
	}
}

func TestQArithmetic(t *testing.T) {
	a := QFromInt64(1)
	b, _ := QFromFrac(1, 2)
	sum := a.Add(b)
	if sum.String() != "3/2" {
		t.Fatalf("want 3/2, got %s", sum.String())
	}
	prod := a.Mul(b)
	if prod.String() != "1/2" {
		t.Fatalf("want 1/2, got %s", prod.String())
	}
}

func TestQPowSigned(t *testing.T) {
	half, _ := QFromFrac(1, 2)
	p, err := half.PowSigned(-3)
	if err != nil {
		t.Fatalf("PowSigned: %v", err)
	}
	if p.String() != "8" {
		t.Fatalf("want 8, got %s", p.String())
	}
}

func TestZGcd(t *testing.T) {
	a := ZFromInt64(-12)
	b := ZFromInt64(18)
	if g := a.Gcd(b); g.Int64() != 6 {
		t.Fatalf("want gcd 6, got %s", g.String())
	}
}
