package engine

import (
	"fmt"
	"math/rand"
)

// DeckSize is the full composition: 52 natural cards plus one joker.
const DeckSize = 53

// RandSource yields uniform values in [0, 1). It is the injection
// point that makes shuffles deterministic under test and is the hook
// the standby screen's seed lock feeds.
type RandSource func() float64

// SeededSource returns a RandSource driven by a deterministic
// math/rand generator for the given seed.
func SeededSource(seed int64) RandSource {
	r := rand.New(rand.NewSource(seed))
	return r.Float64
}

// BuildStandardDeck produces all 52 rank×suit combinations plus one
// joker, face down, with values snapshotted from the given rules
// (nil rules means the standard valuation). A duplicate id here is a
// programmer error in the composition tables, not a runtime
// condition, so it panics.
func BuildStandardDeck(rules *Rules) []Card {
	resolve := StandardValue
	if rules != nil {
		resolve = rules.Resolve
	}

	deck := make([]Card, 0, DeckSize)
	seen := make(map[string]struct{}, DeckSize)
	add := func(suit Suit, rank Rank) {
		id := CardID(suit, rank)
		if _, dup := seen[id]; dup {
			panic(fmt.Sprintf("engine: duplicate card id %q in standard deck", id))
		}
		seen[id] = struct{}{}
		deck = append(deck, Card{
			ID:    id,
			Suit:  suit,
			Rank:  rank,
			Value: resolve(rank),
		})
	}

	for _, suit := range NaturalSuits {
		for _, rank := range NaturalRanks {
			add(suit, rank)
		}
	}
	add(SuitJoker, RankJoker)
	return deck
}

// Shuffle returns a Fisher–Yates permutation of cards, iterating from
// the last index down to 1 and swapping with a uniformly chosen
// earlier-or-equal index. The input is not mutated. A nil src uses
// the shared math/rand source.
func Shuffle(cards []Card, src RandSource) []Card {
	if src == nil {
		src = rand.Float64
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := int(src() * float64(i+1))
		if j > i { // src returning exactly 1.0 would index out of range
			j = i
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}
