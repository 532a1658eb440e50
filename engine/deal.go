package engine

import (
	"errors"
	"fmt"
)

// Standard match composition: 13 set cards + two hands of 20 consume
// the 53-card deck exactly.
const (
	DefaultSetSize  = 13
	DefaultHandSize = 20
)

var (
	// ErrSetShort indicates the set pile could not be filled to the
	// required size.
	ErrSetShort = errors.New("not enough cards to fill set pile")
	// ErrHandShort indicates a hand could not be filled to the
	// required size. The deal must abort, never partially proceed.
	ErrHandShort = errors.New("not enough cards to fill hand")
	// ErrCardsLeftOver indicates cards remained unassigned after
	// distribution, meaning the composition options are inconsistent.
	ErrCardsLeftOver = errors.New("cards left over after deal")
)

// SetCardEntry is one slot of the face-down set pile.
type SetCardEntry struct {
	ID       int  `json:"id"`
	Card     Card `json:"card"`
	Position int  `json:"position"`
}

// DealResult is the exact partition of a shuffled deck.
type DealResult struct {
	Deck  []Card            `json:"deck"`
	Set   []SetCardEntry    `json:"set"`
	Hands map[string][]Card `json:"hands"`
}

// DealOptions configures DealInitialSetup. Zero values select the
// standard composition and player order.
type DealOptions struct {
	SetSize     int
	HandSize    int
	PlayerOrder []string
	Rules       *Rules
	Rand        RandSource
}

// DealInitialSetup shuffles a fresh standard deck, slices the first
// SetSize cards into the set pile with sequential ids/positions, then
// slices consecutive equal-size blocks into each player's hand in
// fixed player order. Both failure modes are configuration errors and
// abort the deal; the invariant |set| + Σ|hand| = |deck| holds on
// success.
func DealInitialSetup(opts DealOptions) (DealResult, error) {
	setSize := opts.SetSize
	if setSize == 0 {
		setSize = DefaultSetSize
	}
	handSize := opts.HandSize
	if handSize == 0 {
		handSize = DefaultHandSize
	}
	order := opts.PlayerOrder
	if len(order) == 0 {
		order = []string{PlayerLumina, PlayerNox}
	}

	deck := Shuffle(BuildStandardDeck(opts.Rules), opts.Rand)

	if setSize > len(deck) {
		return DealResult{}, fmt.Errorf("set of %d from %d cards: %w", setSize, len(deck), ErrSetShort)
	}
	set := make([]SetCardEntry, setSize)
	for i := 0; i < setSize; i++ {
		set[i] = SetCardEntry{ID: i + 1, Card: deck[i], Position: i}
	}

	hands := make(map[string][]Card, len(order))
	next := setSize
	for _, player := range order {
		if next+handSize > len(deck) {
			return DealResult{}, fmt.Errorf("hand for %q needs %d cards, %d remain: %w",
				player, handSize, len(deck)-next, ErrHandShort)
		}
		hand := make([]Card, handSize)
		copy(hand, deck[next:next+handSize])
		hands[player] = hand
		next += handSize
	}

	if next != len(deck) {
		return DealResult{}, fmt.Errorf("%d of %d cards assigned: %w", next, len(deck), ErrCardsLeftOver)
	}

	return DealResult{Deck: deck, Set: set, Hands: hands}, nil
}
