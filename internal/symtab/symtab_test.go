package symtab

import "testing"

func TestInternIdempotent(t *testing.T) {
	r := New()
	a, err := r.Intern("q")
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	b, err := r.Intern("q")
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if a != b {
		t.Fatalf("want same id for repeated intern, got %d != %d", a, b)
	}
	if r.Name(a) != "q" {
		t.Fatalf("want name q, got %q", r.Name(a))
	}
}

func TestInternDistinct(t *testing.T) {
	r := New()
	q, _ := r.Intern("q")
	tt, _ := r.Intern("t")
	if q == tt {
		t.Fatalf("distinct names must get distinct ids")
	}
}

func TestInvalidName(t *testing.T) {
	r := New()
	for _, bad := range []string{"", "1x", "has space", "q!"} {
		if _, err := r.Intern(bad); err != ErrInvalidName {
			t.Fatalf("name %q: want ErrInvalidName, got %v", bad, err)
		}
	}
}
