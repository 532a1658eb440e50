package engine

import (
	"testing"
)

// TestBuildStandardDeckComposition verifies 53 unique cards with
// exactly one joker.
func TestBuildStandardDeckComposition(t *testing.T) {
	deck := BuildStandardDeck(nil)
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}

	seen := make(map[string]bool, len(deck))
	jokers := 0
	for _, c := range deck {
		if seen[c.ID] {
			t.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
		if c.IsJoker() {
			jokers++
		}
		if c.FaceUp {
			t.Errorf("card %q built face up", c.ID)
		}
	}
	if jokers != 1 {
		t.Errorf("expected exactly 1 joker, got %d", jokers)
	}
}

// TestBuildStandardDeckValues spot-checks snapshotted values.
func TestBuildStandardDeckValues(t *testing.T) {
	deck := BuildStandardDeck(nil)
	want := map[string]int{
		CardID(SuitSpades, RankAce):  1,
		CardID(SuitHearts, RankTen):  10,
		CardID(SuitClubs, RankKing):  13,
		CardID(SuitJoker, RankJoker): 0,
	}
	for _, c := range deck {
		if v, ok := want[c.ID]; ok && c.Value != v {
			t.Errorf("card %q: value %d, want %d", c.ID, c.Value, v)
		}
	}
}

// TestShuffleDeterministic: the same seeded source yields the same
// permutation.
func TestShuffleDeterministic(t *testing.T) {
	deck := BuildStandardDeck(nil)
	a := Shuffle(deck, SeededSource(7))
	b := Shuffle(deck, SeededSource(7))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("permutations diverge at %d: %q vs %q", i, a[i].ID, b[i].ID)
		}
	}
}

// TestShuffleConstantZeroReverses documents the exact Fisher–Yates
// direction: a source returning constant 0 swaps every card to the
// front, reversing the input order.
func TestShuffleConstantZeroReverses(t *testing.T) {
	deck := BuildStandardDeck(nil)
	out := Shuffle(deck, func() float64 { return 0 })
	n := len(deck)
	for i := range out {
		if out[i].ID != deck[n-1-i].ID {
			t.Fatalf("index %d: got %q, want %q", i, out[i].ID, deck[n-1-i].ID)
		}
	}
}

// TestShuffleDoesNotMutateInput verifies the copy semantics.
func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := BuildStandardDeck(nil)
	first := deck[0].ID
	_ = Shuffle(deck, func() float64 { return 0 })
	if deck[0].ID != first {
		t.Fatalf("input deck mutated: %q became %q", first, deck[0].ID)
	}
}
