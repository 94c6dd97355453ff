package utils

import "testing"

func TestNewID(t *testing.T) {
	first := NewID()
	second := NewID()

	if first == "" || second == "" {
		t.Fatal("expected non-empty ids")
	}
	if first == second {
		t.Fatalf("expected unique ids, got %q twice", first)
	}
	if len(first) != 36 {
		t.Fatalf("expected canonical 36-char uuid, got %q (len %d)", first, len(first))
	}
	if second < first {
		t.Fatalf("expected time-ordered ids, got %q before %q", first, second)
	}
}
