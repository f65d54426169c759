package rules

import "github.com/google/uuid"

// CanonicalPair orders two ids so that the first is lexicographically
// smaller. Any symmetric relation keyed by an unordered pair must pass its
// key through here before a write.
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

func SamePair(a1, b1, a2, b2 uuid.UUID) bool {
	l1, h1 := CanonicalPair(a1, b1)
	l2, h2 := CanonicalPair(a2, b2)
	return l1 == l2 && h1 == h2
}
