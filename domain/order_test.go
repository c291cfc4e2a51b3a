package domain

import (
	"errors"
	"testing"
)

func TestParseOrder(t *testing.T) {
	for _, s := range []string{"newest", "oldest", "likes_desc", "likes_asc"} {
		o, err := ParseOrder(s)
		if err != nil || string(o) != s {
			t.Fatalf("expected %q to parse, got %q %v", s, o, err)
		}
	}
	if _, err := ParseOrder("bogus"); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if _, err := ParseOrder(""); err == nil {
		t.Fatalf("empty order must be rejected")
	}
}

func TestOrderNextCycles(t *testing.T) {
	o := DefaultOrder
	seen := map[Order]bool{}
	for range Orders() {
		seen[o] = true
		o = o.Next()
	}
	if o != DefaultOrder || len(seen) != 4 {
		t.Fatalf("expected full cycle back to default, got %q after %d", o, len(seen))
	}
	if Order("bogus").Next() != DefaultOrder {
		t.Fatalf("unknown order should reset to default")
	}
}
