package telescoping

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/polyalg"
	"qkangaroo/internal/symtab"
)

func TestDecomposeTrivialRatio(t *testing.T) {
	q := bigrat.QFromInt64(2)
	one := polyalg.RationalFunc{Num: polyalg.One, Den: polyalg.One}
	dec, err := Decompose(one, q, 3)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if dec.A.Degree() != 0 || dec.B.Degree() != 0 {
		t.Fatalf("expected trivial normal form for ratio 1, got A=%s B=%s", dec.A, dec.B)
	}
}

// TestQGosperConstantRatio certifies the classic geometric-term
// telescoping case: term(n) = q^n has shift ratio t(qX)/t(X) = q
// (constant), whose certificate is x(X) = 1/(q-1) (a constant),
// satisfying A(X) x(qX) - B(X/q) x(X) = C(X) with A=q, B=1, C=1.
func TestQGosperConstantRatio(t *testing.T) {
	q := bigrat.QFromInt64(2)
	num := polyalg.New(q)    // A = q (constant polynomial)
	den := polyalg.One       // B = 1
	ratio := polyalg.RationalFunc{Num: num, Den: den}
	cert, ok, err := QGosper(ratio, q, 2, 2)
	if err != nil {
		t.Fatalf("QGosper: %v", err)
	}
	if !ok {
		t.Fatalf("expected a certificate for the constant-ratio term")
	}
	if cert.X.Degree() > 0 {
		t.Fatalf("expected a constant solution, got degree %d", cert.X.Degree())
	}
}

func TestQPetkovsekFindsGeometricRatio(t *testing.T) {
	q, _ := bigrat.QFromFrac(1, 3)
	if err := qPetkovsekTestErr(q); err != nil {
		t.Fatalf("setup: %v", err)
	}
	target := make([]bigrat.Q, 5)
	target[0] = bigrat.QOne
	for n := 1; n < len(target); n++ {
		target[n] = target[n-1].Mul(q)
	}
	candidates := []bigrat.Q{bigrat.QOne, bigrat.QFromInt64(-1)}
	ratio, trace, ok, err := QPetkovsekWithTrace(target, q, candidates, 2, 2)
	if err != nil {
		t.Fatalf("QPetkovsekWithTrace: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find q^n ratio, trace had %d attempts", len(trace))
	}
	if ratio.Coeff.Cmp(bigrat.QOne) != 0 || ratio.QExp != 0 || ratio.Shift != 1 {
		t.Fatalf("unexpected ratio: %+v", ratio)
	}
	if len(trace) == 0 {
		t.Fatalf("expected a nonempty attempt trace")
	}
}

func qPetkovsekTestErr(q bigrat.Q) error {
	if q.IsZero() {
		_, err := bigrat.QZero.Recip()
		return err
	}
	return nil
}

func TestQPetkovsekNoMatch(t *testing.T) {
	q := bigrat.QFromInt64(2)
	target := []bigrat.Q{bigrat.QOne, bigrat.QFromInt64(3), bigrat.QFromInt64(7)}
	candidates := []bigrat.Q{bigrat.QOne}
	_, ok, err := QPetkovsek(target, q, candidates, 1, 1)
	if err != nil {
		t.Fatalf("QPetkovsek: %v", err)
	}
	if ok {
		t.Fatalf("expected no match for a non-q-hypergeometric target")
	}
}

func TestClosedFormRoundTrips(t *testing.T) {
	q := bigrat.QFromInt64(2)
	ratio := Ratio{Coeff: bigrat.QOne, QExp: 0, Shift: 1}
	seq, err := ClosedForm(bigrat.QOne, ratio, q, 4)
	if err != nil {
		t.Fatalf("ClosedForm: %v", err)
	}
	want := []int64{1, 2, 4, 8}
	for i, w := range want {
		if seq[i].Cmp(bigrat.QFromInt64(w)) != 0 {
			t.Fatalf("ClosedForm[%d] = %s, want %d", i, seq[i].String(), w)
		}
	}
}

func TestVerifyWZAcceptsTrivialPair(t *testing.T) {
	cert := WZCertificate{
		F: func(n, k int) (bigrat.Q, error) { return bigrat.QZero, nil },
		G: func(n, k int) (bigrat.Q, error) { return bigrat.QZero, nil },
	}
	ok, err := VerifyWZ(cert, 3, 3)
	if err != nil {
		t.Fatalf("VerifyWZ: %v", err)
	}
	if !ok {
		t.Fatalf("expected the zero pair to verify")
	}
}

func TestVerifyWZRejectsBrokenPair(t *testing.T) {
	cert := WZCertificate{
		F: func(n, k int) (bigrat.Q, error) { return bigrat.QFromInt64(int64(n)), nil },
		G: func(n, k int) (bigrat.Q, error) { return bigrat.QZero, nil },
	}
	ok, err := VerifyWZ(cert, 3, 3)
	if err != nil {
		t.Fatalf("VerifyWZ: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch to be rejected")
	}
}

func TestProveNonterminatingIdenticalSides(t *testing.T) {
	reg := symtab.New()
	v := reg.MustIntern("q")
	same := func(N int, variable symtab.ID, order int) (fps.FPS, error) {
		return fps.Monomial(bigrat.QOne, N, variable, order)
	}
	ok, err := ProveNonterminating(same, same, v, 10, 4)
	if err != nil {
		t.Fatalf("ProveNonterminating: %v", err)
	}
	if !ok {
		t.Fatalf("expected identical specializations to agree")
	}
}

func TestProveNonterminatingDetectsMismatch(t *testing.T) {
	reg := symtab.New()
	v := reg.MustIntern("q")
	lhs := func(N int, variable symtab.ID, order int) (fps.FPS, error) {
		return fps.Monomial(bigrat.QOne, N, variable, order)
	}
	rhs := func(N int, variable symtab.ID, order int) (fps.FPS, error) {
		return fps.Monomial(bigrat.QFromInt64(2), N, variable, order)
	}
	ok, err := ProveNonterminating(lhs, rhs, v, 10, 4)
	if err != nil {
		t.Fatalf("ProveNonterminating: %v", err)
	}
	if ok {
		t.Fatalf("expected a coefficient mismatch to be detected")
	}
}

func TestEtaQuotientDedekindEtaItself(t *testing.T) {
	// eta(tau) itself: N=1, r_1=1. Weight 1/2, doubled weight 1.
	e := EtaQuotient{N: 1, Exponents: map[int]int{1: 1}}
	if e.DoubledWeight() != 1 {
		t.Fatalf("want doubled weight 1, got %d", e.DoubledWeight())
	}
}

func TestEtaQuotientDiscriminantIsHolomorphic(t *testing.T) {
	// Delta(tau) = eta(tau)^24: N=1, r_1=24, the weight-12 cusp form.
	e := EtaQuotient{N: 1, Exponents: map[int]int{1: 24}}
	if !e.SatisfiesLigozat() {
		t.Fatalf("expected Delta's exponent to satisfy the mod-24 congruences")
	}
	if !e.IsHolomorphic() {
		t.Fatalf("expected Delta to be holomorphic at every cusp of level 1")
	}
	if e.DoubledWeight() != 24 {
		t.Fatalf("want doubled weight 24 (weight 12), got %d", e.DoubledWeight())
	}
}

func TestProveEtaIdentitySelfIdentity(t *testing.T) {
	e := EtaQuotient{N: 1, Exponents: map[int]int{1: 24}}
	if !ProveEtaIdentity(e, e) {
		t.Fatalf("expected an eta quotient to certify an identity against itself")
	}
}

func TestProveEtaIdentityRejectsDifferentWeight(t *testing.T) {
	a := EtaQuotient{N: 1, Exponents: map[int]int{1: 24}}
	b := EtaQuotient{N: 1, Exponents: map[int]int{1: 1}}
	if ProveEtaIdentity(a, b) {
		t.Fatalf("expected different-weight eta quotients to fail")
	}
}
