package rules

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPairOrdersLexicographically(t *testing.T) {
	a := uuid.MustParse("0b7d3c52-1a45-4c1e-9a0e-5b0c2f7a9e11")
	b := uuid.MustParse("f3c1a9d0-77e2-4b8b-8d1f-2e5a6c9b0d22")

	low, high := CanonicalPair(b, a)
	if low != a || high != b {
		t.Fatalf("unexpected order: got (%s, %s) want (%s, %s)", low, high, a, b)
	}

	low, high = CanonicalPair(a, b)
	if low != a || high != b {
		t.Fatalf("order must not depend on argument order: got (%s, %s)", low, high)
	}
}

func TestCanonicalPairMatchesByteOrder(t *testing.T) {
	for i := 0; i < 200; i++ {
		a, b := uuid.New(), uuid.New()
		low, high := CanonicalPair(a, b)
		if string(low[:]) > string(high[:]) {
			t.Fatalf("string order disagrees with byte order for %s and %s", a, b)
		}
	}
}

func TestSamePairIgnoresDirection(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	if !SamePair(a, b, b, a) {
		t.Fatalf("reversed pair must be the same pair")
	}
	if SamePair(a, b, a, c) {
		t.Fatalf("different pairs must not compare equal")
	}
}
