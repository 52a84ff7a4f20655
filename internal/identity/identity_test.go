package identity

import (
	"crypto/md5"
	"encoding/hex"
	"testing"
)

func TestAssignDeterministic(t *testing.T) {
	first := Assign("@I1@")
	second := Assign("@I1@")
	if first != second {
		t.Fatalf("Assign not deterministic: %q vs %q", first, second)
	}
	if len(first) != Length {
		t.Fatalf("expected length %d, got %d", Length, len(first))
	}
	for _, r := range first {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			t.Fatalf("unexpected character %q in %q", r, first)
		}
	}
}

func TestAssignStripsDelimiters(t *testing.T) {
	sum := md5.Sum([]byte("I1"))
	want := ID(hex.EncodeToString(sum[:])[:Length])
	if got := Assign("@I1@"); got != want {
		t.Fatalf("Assign(@I1@) = %q, want %q", got, want)
	}
	if Assign("@I1@") != Assign("I1") {
		t.Fatal("expected delimiters to be ignored")
	}
	if Assign("@I1@") == Assign("@I2@") {
		t.Fatal("expected distinct pointers to produce distinct IDs")
	}
}

func TestPrefix(t *testing.T) {
	id := Assign("@I7@")
	if got := id.Prefix(8); got != string(id)[:8] {
		t.Fatalf("Prefix(8) = %q", got)
	}
	if got := id.Prefix(0); got != string(id) {
		t.Fatalf("Prefix(0) = %q", got)
	}
	if got := id.Prefix(99); got != string(id) {
		t.Fatalf("Prefix(99) = %q", got)
	}
}
