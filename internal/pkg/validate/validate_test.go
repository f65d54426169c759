package validate

import "testing"

func TestRequired(t *testing.T) {
	if Required("   ") {
		t.Fatalf("blank value must not satisfy Required")
	}
	if !Required(" Rex ") {
		t.Fatalf("non-blank value must satisfy Required")
	}
}

func TestMaxRunesCountsCharacters(t *testing.T) {
	if !MaxRunes("  Барсик  ", 6) {
		t.Fatalf("expected 6 cyrillic runes to fit")
	}
	if MaxRunes("Барсик", 5) {
		t.Fatalf("expected 6 runes to exceed limit 5")
	}
}
