package eval

import (
	"testing"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/value"
)

func newEnv() *Environment { return New(30) }

func TestArithmeticPromotion(t *testing.T) {
	env := newEnv()
	v, err := Parse("1/2 + 1/3", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want, _ := bigrat.QFromFrac(5, 6)
	q, ok := v.AsRational()
	if !ok || q.Cmp(want) != 0 {
		t.Fatalf("want 5/6, got %s", v.String())
	}
}

func TestIntegerDivisionProducesRational(t *testing.T) {
	env := newEnv()
	v, err := Parse("1/2", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind != value.KindRational {
		t.Fatalf("want Rational, got %s", v.Kind)
	}
}

func TestAssignmentAndLookup(t *testing.T) {
	env := newEnv()
	if _, err := Parse("x := 42", env); err != nil {
		t.Fatalf("Parse assign: %v", err)
	}
	v, err := Parse("x", env)
	if err != nil {
		t.Fatalf("Parse lookup: %v", err)
	}
	if v.String() != "42" {
		t.Fatalf("want 42, got %s", v.String())
	}
}

func TestUndefinedNameFallsBackToSymbol(t *testing.T) {
	env := newEnv()
	v, err := Parse("undefined_name", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind != value.KindSymbol || v.Str != "undefined_name" {
		t.Fatalf("want Symbol(undefined_name), got %+v", v)
	}
}

func TestNumbpartDispatch(t *testing.T) {
	env := newEnv()
	v, err := Parse("numbpart(50)", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "204226" {
		t.Fatalf("want partition_count(50) = 204226, got %s", v.String())
	}
}

func TestPartitionCountAlias(t *testing.T) {
	env := newEnv()
	v, err := Parse("partition_count(50)", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "204226" {
		t.Fatalf("alias produced wrong result: %s", v.String())
	}
}

func TestUnknownFunctionSuggestsNearMiss(t *testing.T) {
	env := newEnv()
	_, err := Parse("numbprt(5)", env)
	if err == nil {
		t.Fatalf("expected unknown-function error")
	}
	evalErr, ok := err.(*Error)
	if !ok || evalErr.Kind != KindUnknownFunction {
		t.Fatalf("expected UnknownFunction, got %v", err)
	}
	found := false
	for _, s := range evalErr.Suggestions {
		if s == "numbpart" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected numbpart suggestion, got %v", evalErr.Suggestions)
	}
}

func TestQbinBoundaryValues(t *testing.T) {
	env := newEnv()
	v, err := Parse("qbin(5,0)", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "1" {
		t.Fatalf("qbin(n,0) should be 1, got %s", v.String())
	}
}

func TestSeriesArithmeticViaDispatch(t *testing.T) {
	env := newEnv()
	v, err := Parse("etaq(1,1,10)", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind != value.KindSeries {
		t.Fatalf("want Series, got %s", v.Kind)
	}
}

func TestDivByZeroError(t *testing.T) {
	env := newEnv()
	_, err := Parse("1/0", env)
	if err == nil {
		t.Fatalf("expected division-by-zero error")
	}
	evalErr, ok := err.(*Error)
	if !ok || evalErr.Kind != KindDivByZero {
		t.Fatalf("expected DivByZero, got %v", err)
	}
}

func TestListLiteralAndSort(t *testing.T) {
	env := newEnv()
	v, err := Parse("sort([3,1,2])", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "[1, 2, 3]" {
		t.Fatalf("want [1, 2, 3], got %s", v.String())
	}
}

func TestUnicodeLookalikeNormalisation(t *testing.T) {
	env := newEnv()
	v, err := Parse("2 × 3", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "6" {
		t.Fatalf("want 6, got %s", v.String())
	}
}

func TestDittoRefersToLastResult(t *testing.T) {
	env := newEnv()
	if _, err := Parse("41 + 1", env); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, err := Parse("ditto", env)
	if err != nil {
		t.Fatalf("Parse ditto: %v", err)
	}
	if v.String() != "42" {
		t.Fatalf("want 42, got %s", v.String())
	}
}

func TestProveEtaIdentityDispatch(t *testing.T) {
	env := newEnv()
	v, err := Parse("prove_eta_id([[1,24]],[[1,24]],1)", env)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Kind != value.KindBool || !v.Bool {
		t.Fatalf("want true, got %s", v.String())
	}
}
