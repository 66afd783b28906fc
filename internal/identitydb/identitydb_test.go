package identitydb

import "testing"

const sampleTOML = `
[[identity]]
name = "euler"
tags = ["partition", "pentagonal"]
lhs = "(q;q)_inf"
rhs = "sum((-1)^k*q^(k*(3k-1)/2))"
level = 1
reference = "Euler"

[[identity]]
name = "jacobi-triple"
tags = ["theta"]
lhs = "theta3(q)"
rhs = "prod((1-q^(2n))*(1+q^(2n-1))^2)"
level = 1
`

func TestLoadIndexesByNameAndTag(t *testing.T) {
	db := New()
	dupes, err := db.Load([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(dupes) != 0 {
		t.Fatalf("unexpected dupes: %v", dupes)
	}
	if db.Len() != 2 {
		t.Fatalf("want 2 identities, got %d", db.Len())
	}
	id, err := db.ByName("euler")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if id.Level != 1 || id.Reference != "Euler" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	partition := db.ByTag("partition")
	if len(partition) != 1 || partition[0].Name != "euler" {
		t.Fatalf("ByTag(partition) = %+v", partition)
	}
}

func TestLoadSkipsDuplicateFingerprint(t *testing.T) {
	db := New()
	if _, err := db.Load([]byte(sampleTOML)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	dupes, err := db.Load([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(dupes) != 2 {
		t.Fatalf("want 2 dupes reported, got %v", dupes)
	}
	if db.Len() != 2 {
		t.Fatalf("reloading duplicates should not grow the arena, got len %d", db.Len())
	}
}

func TestByNameMissReturnsErrNotFound(t *testing.T) {
	db := New()
	if _, err := db.ByName("nonexistent"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFingerprintStable(t *testing.T) {
	db := New()
	if _, err := db.Load([]byte(sampleTOML)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	fp1, err := db.Fingerprint("euler")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fp2, err := db.Fingerprint("euler")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp1.String() != fp2.String() {
		t.Fatalf("fingerprint not stable across calls: %s vs %s", fp1, fp2)
	}
}
